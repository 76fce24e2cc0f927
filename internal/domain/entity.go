package domain

// EntityType - объявленный тип сущности
type EntityType string

const (
	EntityTypePlayer    EntityType = "player"
	EntityTypeNPC       EntityType = "npc"
	EntityTypeItem      EntityType = "item"
	EntityTypeFurniture EntityType = "furniture"
	EntityTypeGeneric   EntityType = "generic"
)

// Теги, выводимые из типа сущности при создании
var defaultEntityTags = map[EntityType][]string{
	EntityTypePlayer:    {TagPlayer, TagCharacter, TagBlocking},
	EntityTypeNPC:       {TagNPC, TagCharacter, TagBlocking},
	EntityTypeItem:      {TagItem},
	EntityTypeFurniture: {TagFurniture, TagBlocking},
}

// PassRule - переопределяемая политика проходимости тайла.
// nil означает дефолт: "тайл несет тег passable". Хук оставлен для
// вариантов вроде летающих сущностей, игнорирующих воду.
type PassRule func(e *Entity, tile *Tile) bool

// Entity - позиционированный, тегированный, направленный актор.
// Вариант (Player/NPC/Item) задается непустым компонентом, см. components.go.
type Entity struct {
	ID   string     `json:"id"`
	Type EntityType `json:"type"`
	Name string     `json:"name"`

	Pos    Position  `json:"pos"`
	Facing Direction `json:"facing"`

	// Презентация (ядро это не интерпретирует)
	Shape string  `json:"shape,omitempty"`
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"` // доля тайла, 0..1

	Tags       TagSet         `json:"tags"`
	Properties map[string]any `json:"properties,omitempty"`

	// Interactable + набор направлений, с которых разрешено взаимодействие
	Interactable bool               `json:"interactable"`
	InteractDirs map[Direction]bool `json:"interactDirs,omitempty"`

	PassRule PassRule `json:"-"`

	// Компоненты (nil = вариант отсутствует)
	Player *PlayerComponent `json:"player,omitempty"`
	NPC    *NPCComponent    `json:"npc,omitempty"`
	Item   *ItemComponent   `json:"item,omitempty"`
}

// NewEntity создает базовую сущность с тегами, выведенными из типа
func NewEntity(id string, t EntityType, name string, pos Position) *Entity {
	tags, ok := defaultEntityTags[t]
	if !ok {
		tags = nil
	}
	return &Entity{
		ID:     id,
		Type:   t,
		Name:   name,
		Pos:    pos,
		Facing: DirectionSouth,
		Size:   1.0,
		Tags:   NewTagSet(tags...),
	}
}

func (e *Entity) HasTag(tag string) bool { return e.Tags.Has(tag) }
func (e *Entity) AddTag(tag string)      { e.Tags.Add(tag) }
func (e *Entity) RemoveTag(tag string)   { e.Tags.Remove(tag) }

// IsBlocking - занимает ли сущность клетку для чужого движения
func (e *Entity) IsBlocking() bool { return e.Tags.Has(TagBlocking) }

// CanPassTile - политика проходимости. Дефолт: тайл помечен passable.
// PassRule (если задан) полностью замещает дефолт.
func (e *Entity) CanPassTile(tile *Tile) bool {
	if tile == nil {
		return false
	}
	if e.PassRule != nil {
		return e.PassRule(e, tile)
	}
	return tile.IsPassable()
}

// CanInteractFrom - можно ли взаимодействовать с этой сущностью,
// подойдя с направления d. Пустой набор InteractDirs у интерактивной
// сущности означает "с любой стороны".
func (e *Entity) CanInteractFrom(d Direction) bool {
	if !e.Interactable {
		return false
	}
	if len(e.InteractDirs) == 0 {
		return true
	}
	return e.InteractDirs[d]
}

// FrontPos возвращает клетку прямо по направлению взгляда
func (e *Entity) FrontPos() Position {
	return e.Pos.Step(e.Facing)
}
