package domain

// Имена событий, которые излучает ядро. Это закрытый контракт
// для слушателей (UI, контроллер мира); кастомные типы из
// Interaction и use-эффектов добавляются поверх него данными.
const (
	EventPlayerMove     = "player_move"
	EventPlayerInteract = "player_interact"
	EventDialogStart    = "dialog_start"
	EventDialogEnd      = "dialog_end"
	EventItemPickup     = "item_pickup"
	EventZoneChange     = "zone_change"
)

// EventPublisher - минимальный контракт шины событий, видимый домену.
// Полная реализация живет в internal/eventbus.
type EventPublisher interface {
	Emit(eventType string, data map[string]any)
}

// ZoneChangeRequest - явный запрос контроллеру мира на смену зоны.
// Телепортер и teleport-эффект предмета не переключают зону сами —
// они публикуют запрос, контроллер исполняет его в фазе тика.
type ZoneChangeRequest struct {
	TargetZone string `json:"targetZone"`
	TargetX    int    `json:"targetX"`
	TargetY    int    `json:"targetY"`
}
