package data

import (
	"errors"
	"fmt"

	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

// Конфигурационные документы (JSON). Каждый обязан нести id;
// документ без обязательных полей отвергается валидацией ДО
// конструирования доменных объектов — и не прерывает загрузку остальных.

// TileDocument объявляет data-defined тип тайла (расширение
// закрытого базового набора)
type TileDocument struct {
	ID         string         `json:"id"` // имя типа
	Tags       []string       `json:"tags"`
	Color      string         `json:"color,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

func (d TileDocument) Validate() error {
	if d.ID == "" {
		return errors.New("tile document: id is required")
	}
	if len(d.Tags) == 0 {
		return fmt.Errorf("tile document %q: tags are required", d.ID)
	}
	return nil
}

// Объявленные типы сущностей. Player намеренно отсутствует:
// игрока создает только контроллер мира.
var knownEntityTypes = map[string]bool{
	string(domain.EntityTypeNPC):       true,
	string(domain.EntityTypeItem):      true,
	string(domain.EntityTypeFurniture): true,
	string(domain.EntityTypeGeneric):   true,
}

// EntityDocument - отдельное (переиспользуемое) определение сущности.
// В отличие от inline-деклараций внутри зоны, документ валидируется
// строго: неизвестный enumerated type отвергается.
type EntityDocument struct {
	domain.EntityDescriptor
}

func (d EntityDocument) Validate() error {
	if d.ID == "" {
		return errors.New("entity document: id is required")
	}
	if d.Type == "" {
		return fmt.Errorf("entity document %q: type is required", d.ID)
	}
	if !knownEntityTypes[d.Type] {
		return fmt.Errorf("entity document %q: unknown type %q", d.ID, d.Type)
	}
	if d.X == nil || d.Y == nil {
		return fmt.Errorf("entity document %q: x and y are required", d.ID)
	}
	return nil
}

// TeleporterDocument - односторонее объявление перехода.
// Bidirectional=true порождает связанную пару (обратный телепортер
// в целевой зоне).
type TeleporterDocument struct {
	X          int            `json:"x"`
	Y          int            `json:"y"`
	TargetZone string         `json:"targetZone"`
	TargetX    int            `json:"targetX"`
	TargetY    int            `json:"targetY"`
	Two        bool           `json:"bidirectional,omitempty"`
	Active     *bool          `json:"active,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

func (d TeleporterDocument) Validate() error {
	if d.TargetZone == "" {
		return errors.New("teleporter: targetZone is required")
	}
	return nil
}

// ZoneDocument - документ зоны: сетка плюс вложенные сущности
// и телепортеры
type ZoneDocument struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	domain.GridData // width, height, tileSize, defaultTile, tiles[]

	Entities    []domain.EntityDescriptor `json:"entities,omitempty"`
	Teleporters []TeleporterDocument      `json:"teleporters,omitempty"`
}

func (d ZoneDocument) Validate() error {
	if d.ID == "" {
		return errors.New("zone document: id is required")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("zone document %q: width and height must be positive", d.ID)
	}
	if d.DefaultTile == "" {
		return fmt.Errorf("zone document %q: defaultTile is required", d.ID)
	}
	for i, t := range d.Teleporters {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("zone document %q: teleporter %d: %w", d.ID, i, err)
		}
	}
	return nil
}

// InteractionDocument - документ правила взаимодействия
type InteractionDocument struct {
	ID           string         `json:"id"`
	Name         string         `json:"name,omitempty"`
	RequiredTags []string       `json:"requiredTags,omitempty"`
	Directions   []string       `json:"directions,omitempty"`
	EventType    string         `json:"eventType"`
	Key          string         `json:"key"`
	Properties   map[string]any `json:"properties,omitempty"`
}

func (d InteractionDocument) Validate() error {
	if d.ID == "" {
		return errors.New("interaction document: id is required")
	}
	if d.EventType == "" {
		return fmt.Errorf("interaction document %q: eventType is required", d.ID)
	}
	if d.Key == "" {
		return fmt.Errorf("interaction document %q: key is required", d.ID)
	}
	return nil
}

// Build превращает документ в доменное правило
func (d InteractionDocument) Build() *domain.Interaction {
	inter := &domain.Interaction{
		ID:           d.ID,
		Name:         d.Name,
		RequiredTags: domain.NewTagSet(d.RequiredTags...),
		EventType:    d.EventType,
		Key:          d.Key,
		Properties:   d.Properties,
	}
	for _, s := range d.Directions {
		if dir := domain.ParseDirection(s); dir != domain.DirectionNone {
			if inter.Directions == nil {
				inter.Directions = make(map[domain.Direction]bool, 4)
			}
			inter.Directions[dir] = true
		}
	}
	return inter
}
