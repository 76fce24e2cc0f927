package domain

import (
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
	"github.com/Tanno-Finn/pockethero-3/pkg/utils"
)

// Zone - самодостаточный экземпляр карты: ровно одна сетка плюс
// сущности, находящиеся в ней. Сетка никогда не разделяется между зонами.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Grid *Grid `json:"grid"`

	// Порядок вставки сохраняется; он же — неспецифицированный
	// tie-break для GetEntityAt при нескольких сущностях на клетке.
	Entities []*Entity `json:"entities"`
}

func NewZone(id, name string, width, height, tileSize int, defaultType TileType) *Zone {
	return &Zone{
		ID:   id,
		Name: name,
		Grid: NewGrid(width, height, tileSize, defaultType),
	}
}

// AddEntity добавляет сущность в конец списка зоны
func (z *Zone) AddEntity(e *Entity) {
	z.Entities = append(z.Entities, e)
}

// RemoveEntity удаляет сущность по ID и возвращает её.
// Порядок остальных сохраняется (он значим для tie-break'а).
func (z *Zone) RemoveEntity(id string) *Entity {
	for i, e := range z.Entities {
		if e.ID == id {
			z.Entities = append(z.Entities[:i], z.Entities[i+1:]...)
			return e
		}
	}
	return nil
}

// GetEntity ищет сущность по ID
func (z *Zone) GetEntity(id string) *Entity {
	for _, e := range z.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// GetEntitiesAt возвращает все сущности на клетке (полный скан)
func (z *Zone) GetEntitiesAt(x, y int) []*Entity {
	var out []*Entity
	for _, e := range z.Entities {
		if e.Pos.X == x && e.Pos.Y == y {
			out = append(out, e)
		}
	}
	return out
}

// GetEntityAt возвращает первую сущность на клетке в порядке вставки
func (z *Zone) GetEntityAt(x, y int) *Entity {
	for _, e := range z.Entities {
		if e.Pos.X == x && e.Pos.Y == y {
			return e
		}
	}
	return nil
}

// BlockingEntityAt возвращает первую блокирующую сущность на клетке,
// исключая сущность с ID == excludeID (саму движущуюся)
func (z *Zone) BlockingEntityAt(x, y int, excludeID string) *Entity {
	for _, e := range z.Entities {
		if e.ID == excludeID {
			continue
		}
		if e.Pos.X == x && e.Pos.Y == y && e.IsBlocking() {
			return e
		}
	}
	return nil
}

// IsInZone делегирует проверку границ сетке
func (z *Zone) IsInZone(x, y int) bool {
	return z.Grid.IsInBounds(x, y)
}

// PlaceTeleporter записывает тайл телепортера в сетку зоны
func (z *Zone) PlaceTeleporter(t *Teleporter) bool {
	return t.Place(z.Grid)
}

// EntityDescriptor - декларация сущности из данных зоны.
// X/Y — указатели, чтобы отличать "не задано" от нуля при валидации.
type EntityDescriptor struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`

	X *int `json:"x"`
	Y *int `json:"y"`

	Shape string  `json:"shape,omitempty"`
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`

	Tags       []string       `json:"tags,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`

	Interactable *bool    `json:"interactable,omitempty"`
	InteractDirs []string `json:"interactDirs,omitempty"`

	// NPC
	Dialog      *DialogSpec `json:"dialog,omitempty"`
	Behavior    string      `json:"behavior,omitempty"`
	PatrolRoute []string    `json:"patrolRoute,omitempty"`
	Interval    float64     `json:"interval,omitempty"`

	// Item
	Pickupable   *bool      `json:"pickupable,omitempty"`
	UseEffect    *UseEffect `json:"useEffect,omitempty"`
	Stackable    bool       `json:"stackable,omitempty"`
	Quantity     int        `json:"quantity,omitempty"`
	DefinitionID string     `json:"definitionId,omitempty"`
}

// LoadEntities строит сущности зоны из списка деклараций.
// Политика ошибок: битая декларация (нет x/y/type) пропускается с warn'ом
// и не прерывает загрузку остальных; player-декларации отвергаются —
// игрока создает только контроллер мира; неизвестный тип деградирует
// до базовой сущности.
func (z *Zone) LoadEntities(list []EntityDescriptor) {
	for idx, desc := range list {
		if desc.Type == "" || desc.X == nil || desc.Y == nil {
			logger.Log.WithField("zone", z.ID).WithField("index", idx).
				Warn("Skipping malformed entity descriptor (missing type/x/y)")
			continue
		}
		if EntityType(desc.Type) == EntityTypePlayer {
			logger.Log.WithField("zone", z.ID).WithField("index", idx).
				Warn("Rejecting player entity in zone data: players are spawned by the world controller")
			continue
		}
		z.AddEntity(BuildEntity(desc))
	}
}

// BuildEntity собирает конкретный вариант сущности из декларации.
// Явная default-ветка: неизвестный тип — базовая сущность без компонентов.
func BuildEntity(desc EntityDescriptor) *Entity {
	id := desc.ID
	if id == "" {
		id = utils.GenerateID()
	}

	e := NewEntity(id, EntityType(desc.Type), desc.Name, Position{X: *desc.X, Y: *desc.Y})

	if desc.Shape != "" {
		e.Shape = desc.Shape
	}
	if desc.Color != "" {
		e.Color = desc.Color
	}
	if desc.Size > 0 {
		e.Size = desc.Size
	}
	for _, tag := range desc.Tags {
		e.AddTag(tag)
	}
	for k, v := range desc.Properties {
		if e.Properties == nil {
			e.Properties = make(map[string]any)
		}
		e.Properties[k] = v
	}
	if desc.Interactable != nil {
		e.Interactable = *desc.Interactable
	}
	for _, s := range desc.InteractDirs {
		if d := ParseDirection(s); d != DirectionNone {
			if e.InteractDirs == nil {
				e.InteractDirs = make(map[Direction]bool, 4)
			}
			e.InteractDirs[d] = true
		}
	}

	switch e.Type {
	case EntityTypeNPC:
		npc := &NPCComponent{
			Behavior: NPCBehaviorStatic,
			Dialog:   desc.Dialog,
			Interval: desc.Interval,
		}
		if b := NPCBehavior(desc.Behavior); b == NPCBehaviorPatrol || b == NPCBehaviorRandom {
			npc.Behavior = b
		}
		for _, s := range desc.PatrolRoute {
			if d := ParseDirection(s); d != DirectionNone {
				npc.PatrolRoute = append(npc.PatrolRoute, d)
			}
		}
		e.NPC = npc
		// NPC интерактивен по умолчанию, если декларация не сказала иного
		if desc.Interactable == nil {
			e.Interactable = true
		}

	case EntityTypeItem:
		item := &ItemComponent{
			DefinitionID: desc.DefinitionID,
			Pickupable:   true,
			UseEffect:    desc.UseEffect,
			Stackable:    desc.Stackable,
			Quantity:     desc.Quantity,
		}
		if desc.Pickupable != nil {
			item.Pickupable = *desc.Pickupable
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		e.Item = item
		if desc.Interactable == nil {
			e.Interactable = true
		}

	case EntityTypeFurniture:
		// Базовая сущность; теги уже выведены из типа

	default:
		// Неизвестный тип — generic без компонентов
	}

	return e
}
