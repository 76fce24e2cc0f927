package api

import (
	"encoding/json"
)

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии/игрока. Обязателен только для первого сообщения.
	Token string `json:"token,omitempty"`

	// Action название действия: KEYS, MOVE, INTERACT, USE, WAIT.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия.
	Payload json.RawMessage `json:"payload"`
}

// KeysPayload - снимок зажатых логических клавиш клиента (действие KEYS).
// Сервер опрашивает его как фасад ввода; сырых событий клавиатуры
// ядро не видит.
type KeysPayload struct {
	Keys []string `json:"keys"`
}

// DirectionPayload используется для действий с направлением (MOVE)
type DirectionPayload struct {
	Direction string `json:"direction"` // north/east/south/west
}

// ItemPayload используется для действий с предметами (USE)
type ItemPayload struct {
	ItemID string `json:"itemId"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse - полный снимок мира для рендера на клиенте.
// Ядро в рендеринг не звонит: клиент читает это состояние сам (pull).
type ServerResponse struct {
	Type string `json:"type"` // UPDATE | INIT

	// Tick - номер кадра, Clock - часы сессии (сек)
	Tick  uint64  `json:"tick"`
	Clock float64 `json:"clock"`

	PlayerID string `json:"playerId,omitempty"`

	Zone     *ZoneMeta    `json:"zone,omitempty"`
	Tiles    []TileView   `json:"tiles,omitempty"`
	Entities []EntityView `json:"entities,omitempty"`
	Dialog   *DialogView  `json:"dialog,omitempty"`
	Logs     []LogEntry   `json:"logs,omitempty"`
}

// ZoneMeta - метаданные активной зоны для подготовки сетки рендера
type ZoneMeta struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Width    int    `json:"w"`
	Height   int    `json:"h"`
	TileSize int    `json:"tileSize"`
}

// TileView это DTO одного тайла карты
type TileView struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Type  string   `json:"type"`
	Color string   `json:"color"`
	Tags  []string `json:"tags,omitempty"`
}

// EntityView это DTO игровой сущности
type EntityView struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`

	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`

	Shape string  `json:"shape,omitempty"`
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// DialogView - активный диалог (если открыт)
type DialogView struct {
	Content string `json:"content"`
	Speaker string `json:"speaker,omitempty"`
}

// LogEntry представляет одну запись в игровом логе
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"` // INFO, SPEECH, ERROR
	Timestamp int64  `json:"timestamp"`
}
