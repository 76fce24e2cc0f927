package domain

// TileType - тип тайла. Базовый набор закрытый, но данные зон
// могут объявлять собственные типы (с явными тегами и цветом).
type TileType string

const (
	TileGrass      TileType = "grass"
	TileForest     TileType = "forest"
	TileWater      TileType = "water"
	TileRock       TileType = "rock"
	TileTeleporter TileType = "teleporter"
)

// Ключи свойств тайла-телепортера
const (
	PropTargetZone = "targetZone"
	PropTargetX    = "targetX"
	PropTargetY    = "targetY"
)

// Теги, выводимые из типа при создании тайла.
// После создания теги можно мутировать — это снимок по умолчанию.
var defaultTileTags = map[TileType][]string{
	TileGrass:      {TagPassable, TagNatural},
	TileForest:     {TagPassable, TagNatural},
	TileWater:      {TagBlocking, TagNatural},
	TileRock:       {TagBlocking, TagNatural},
	TileTeleporter: {TagPassable, TagTeleporter},
}

var defaultTileColors = map[TileType]string{
	TileGrass:      "#4caf50",
	TileForest:     "#2e7d32",
	TileWater:      "#2196f3",
	TileRock:       "#757575",
	TileTeleporter: "#9c27b0",
}

// Tile - одна клетка сетки: тип, теги, произвольные свойства и цвет.
// Форма неизменна (координаты и тип), свойства мутабельны.
type Tile struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Type TileType `json:"type"`

	Tags       TagSet         `json:"tags"`
	Properties map[string]any `json:"properties,omitempty"`
	Color      string         `json:"color"`
}

// NewTile создает тайл и детерминированно выводит теги и цвет из типа.
// Неизвестный тип получает только тег passable (безопасный пол);
// слой данных перекрывает это явными тегами из документа.
func NewTile(x, y int, t TileType) *Tile {
	tags, ok := defaultTileTags[t]
	if !ok {
		tags = []string{TagPassable}
	}
	return &Tile{
		X:     x,
		Y:     y,
		Type:  t,
		Tags:  NewTagSet(tags...),
		Color: defaultTileColors[t],
	}
}

func (t *Tile) HasTag(tag string) bool { return t.Tags.Has(tag) }
func (t *Tile) AddTag(tag string)      { t.Tags.Add(tag) }
func (t *Tile) RemoveTag(tag string)   { t.Tags.Remove(tag) }

// IsPassable - сокращение для самой частой проверки
func (t *Tile) IsPassable() bool { return t.Tags.Has(TagPassable) }

// Property возвращает свойство и флаг наличия
func (t *Tile) Property(key string) (any, bool) {
	if t.Properties == nil {
		return nil, false
	}
	v, ok := t.Properties[key]
	return v, ok
}

// SetProperty записывает свойство (ленивая инициализация карты)
func (t *Tile) SetProperty(key string, value any) {
	if t.Properties == nil {
		t.Properties = make(map[string]any)
	}
	t.Properties[key] = value
}

// IntProperty читает числовое свойство. JSON дает float64, поэтому
// принимаем оба представления.
func (t *Tile) IntProperty(key string) (int, bool) {
	v, ok := t.Property(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

// StringProperty читает строковое свойство
func (t *Tile) StringProperty(key string) (string, bool) {
	v, ok := t.Property(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
