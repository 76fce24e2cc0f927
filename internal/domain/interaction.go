package domain

// Interaction - конфигурируемое правило: (требуемые теги x направления
// x клавиша) -> именованное событие. Объект без состояния, переиспользуется
// для любого числа попыток и сам никогда не мутирует участников —
// все побочные эффекты происходят в слушателях шины.
type Interaction struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	RequiredTags TagSet             `json:"requiredTags"`
	Directions   map[Direction]bool `json:"directions"`

	EventType string `json:"eventType"`
	Key       string `json:"key"`

	Properties map[string]any `json:"properties,omitempty"`
}

// CanInteractWith - теги сущности являются надмножеством требуемых.
// Пустой требуемый набор подходит всем.
func (i *Interaction) CanInteractWith(e *Entity) bool {
	if e == nil {
		return false
	}
	return e.Tags.HasAll(i.RequiredTags)
}

// IsValidDirection - проверка принадлежности направления.
// Пустой набор направлений означает "любое".
func (i *Interaction) IsValidDirection(d Direction) bool {
	if len(i.Directions) == 0 {
		return true
	}
	return i.Directions[d]
}

// Execute публикует настроенное событие, если обе проверки прошли.
// Возвращает false без каких-либо эффектов при провале любой из них.
func (i *Interaction) Execute(bus EventPublisher, source, target *Entity, d Direction) bool {
	if !i.CanInteractWith(target) {
		return false
	}
	if !i.IsValidDirection(d) {
		return false
	}

	bus.Emit(i.EventType, map[string]any{
		"source":      source,
		"target":      target,
		"direction":   d.String(),
		"interaction": i.ID,
	})
	return true
}
