package domain

// --- КОМПОНЕНТЫ ---
//
// Вариант сущности задается ровно одним непустым компонентом:
// Player | NPC | Item. Базовая сущность (мебель, декорации) не несет
// ни одного. Диспетчеризация поведения — switch по заполненному
// компоненту с явной default-веткой, а не виртуальный вызов.

// PlayerComponent - инвентарь и троттлинг движения.
// Кулдауны — настенные часы (секунды, накапливаемые через delta time),
// а не счетчики ходов.
type PlayerComponent struct {
	Inventory []*Entity `json:"inventory"`

	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`

	// MoveCooldown - минимальный интервал между принятыми шагами (сек)
	MoveCooldown      float64 `json:"moveCooldown"`
	CooldownRemaining float64 `json:"-"`
}

// NPCBehavior - политика автономного движения
type NPCBehavior string

const (
	NPCBehaviorStatic NPCBehavior = "static"
	NPCBehaviorPatrol NPCBehavior = "patrol"
	NPCBehaviorRandom NPCBehavior = "random"
)

// DialogSpec - фиксированная реплика NPC (или пара "кто+что")
type DialogSpec struct {
	Content string `json:"content"`
	Speaker string `json:"speaker,omitempty"`
}

// NPCComponent - поведение и расписание NPC.
// NextActionAt - абсолютная отметка на часах сессии, когда NPC должен
// действовать в следующий раз. Отмена движения = обнуление отметки.
type NPCComponent struct {
	Behavior NPCBehavior `json:"behavior"`
	Dialog   *DialogSpec `json:"dialog,omitempty"`

	// Патруль: фиксированный циклический список направлений
	PatrolRoute []Direction `json:"patrolRoute,omitempty"`
	PatrolIndex int         `json:"-"`

	// Interval - базовый период между действиями (сек).
	// Для random-политики интервал каждый раз рандомизируется.
	Interval     float64 `json:"interval,omitempty"`
	NextActionAt float64 `json:"-"`
}

// Типы use-эффектов предметов. Закрытый набор плюс "лазейка":
// любая другая строка переизлучается как одноименное событие
// для внешних обработчиков — никогда не глотается молча.
const (
	UseEffectHeal     = "heal"
	UseEffectTeleport = "teleport"
	UseEffectDialog   = "dialog"
)

// UseEffect - декларативное описание эффекта использования предмета
type UseEffect struct {
	Type  string `json:"type"`
	Value int    `json:"value,omitempty"` // heal

	TargetZone string `json:"targetZone,omitempty"` // teleport
	TargetX    int    `json:"targetX,omitempty"`
	TargetY    int    `json:"targetY,omitempty"`

	Content string `json:"content,omitempty"` // dialog
	Speaker string `json:"speaker,omitempty"`

	Properties map[string]any `json:"properties,omitempty"` // payload кастомного события
}

// ItemComponent - данные предмета.
// DefinitionID - идентичность определения: стакуются только предметы
// с одинаковым DefinitionID (и оба stackable).
type ItemComponent struct {
	DefinitionID string `json:"definitionId,omitempty"`

	Pickupable bool       `json:"pickupable"`
	UseEffect  *UseEffect `json:"useEffect,omitempty"`

	Stackable bool `json:"stackable,omitempty"`
	Quantity  int  `json:"quantity"`
}
