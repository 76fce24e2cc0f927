package domain

// Grid - плотная матрица тайлов width x height.
// Инвариант: каждая клетка в границах всегда содержит ровно один тайл;
// за границами тайлов нет и не бывает.
//
// Все query-методы — честные полные сканы O(W*H). Сетки маленькие
// (десятки на десятки), вторичные индексы здесь не окупаются.
type Grid struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`

	DefaultType TileType `json:"defaultTile"`

	// Tiles[y][x] — порядок как у карты тайлов учителя
	Tiles [][]*Tile `json:"tiles"`
}

// TileOverride - точечная замена тайла из данных зоны.
// Пустые Tags/Color означают "вывести из типа".
type TileOverride struct {
	X          int            `json:"x"`
	Y          int            `json:"y"`
	Type       TileType       `json:"type"`
	Tags       []string       `json:"tags,omitempty"`
	Color      string         `json:"color,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// GridData - данные для полной загрузки сетки
type GridData struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	TileSize    int            `json:"tileSize,omitempty"`
	DefaultTile TileType       `json:"defaultTile"`
	Tiles       []TileOverride `json:"tiles,omitempty"`
}

// DefaultTileSize - размер клетки в мировых единицах, когда данные его
// не задали. Нулевой размер недопустим: на нем ломается WorldToGrid.
const DefaultTileSize = 32

func NewGrid(width, height, tileSize int, defaultType TileType) *Grid {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	g := &Grid{
		Width:       width,
		Height:      height,
		TileSize:    tileSize,
		DefaultType: defaultType,
	}
	g.Reset()
	return g
}

// Reset заполняет всю сетку дефолтными тайлами
func (g *Grid) Reset() {
	g.Tiles = make([][]*Tile, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]*Tile, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = NewTile(x, y, g.DefaultType)
		}
		g.Tiles[y] = row
	}
}

func (g *Grid) IsInBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// TileAt возвращает тайл или nil строго для координат вне границ
func (g *Grid) TileAt(x, y int) *Tile {
	if !g.IsInBounds(x, y) {
		return nil
	}
	return g.Tiles[y][x]
}

// SetTileAt заменяет тайл целиком (не сливает свойства).
// Возвращает false без мутаций, если координаты вне границ.
func (g *Grid) SetTileAt(x, y int, tile *Tile) bool {
	if !g.IsInBounds(x, y) || tile == nil {
		return false
	}
	tile.X = x
	tile.Y = y
	g.Tiles[y][x] = tile
	return true
}

// Neighbors возвращает соседей по четырем сторонам.
// Клетки за границей отсутствуют в карте — никакого wraparound.
func (g *Grid) Neighbors(x, y int) map[Direction]*Tile {
	out := make(map[Direction]*Tile, 4)
	for _, d := range AllDirections {
		dx, dy := d.Delta()
		if t := g.TileAt(x+dx, y+dy); t != nil {
			out[d] = t
		}
	}
	return out
}

// TilesOfType возвращает все тайлы заданного типа
func (g *Grid) TilesOfType(t TileType) []*Tile {
	var out []*Tile
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x].Type == t {
				out = append(out, g.Tiles[y][x])
			}
		}
	}
	return out
}

// TilesWithTag возвращает все тайлы, несущие тег
func (g *Grid) TilesWithTag(tag string) []*Tile {
	var out []*Tile
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x].HasTag(tag) {
				out = append(out, g.Tiles[y][x])
			}
		}
	}
	return out
}

// TilesWithProperty возвращает тайлы, у которых свойство key равно value
func (g *Grid) TilesWithProperty(key string, value any) []*Tile {
	var out []*Tile
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if v, ok := g.Tiles[y][x].Property(key); ok && v == value {
				out = append(out, g.Tiles[y][x])
			}
		}
	}
	return out
}

// WorldToGrid переводит мировые координаты в клеточные (floor division,
// корректный и для отрицательных значений)
func (g *Grid) WorldToGrid(wx, wy int) (int, int) {
	return floorDiv(wx, g.TileSize), floorDiv(wy, g.TileSize)
}

// GridToWorld переводит клеточные координаты в мировые.
// На выровненных входах является точной обратной к WorldToGrid.
func (g *Grid) GridToWorld(x, y int) (int, int) {
	return x * g.TileSize, y * g.TileSize
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// LoadFromData полностью сбрасывает сетку, при необходимости меняет размер,
// затем накладывает явные замены тайлов. Замены вне границ игнорируются.
// Идемпотентна: два вызова с одними данными дают одинаковую сетку.
func (g *Grid) LoadFromData(data GridData) {
	if data.Width > 0 {
		g.Width = data.Width
	}
	if data.Height > 0 {
		g.Height = data.Height
	}
	if data.TileSize > 0 {
		g.TileSize = data.TileSize
	}
	if g.TileSize <= 0 {
		g.TileSize = DefaultTileSize
	}
	if data.DefaultTile != "" {
		g.DefaultType = data.DefaultTile
	}
	g.Reset()

	for _, ov := range data.Tiles {
		if !g.IsInBounds(ov.X, ov.Y) {
			continue
		}
		tile := NewTile(ov.X, ov.Y, ov.Type)
		if len(ov.Tags) > 0 {
			tile.Tags = NewTagSet(ov.Tags...)
		}
		if ov.Color != "" {
			tile.Color = ov.Color
		}
		for k, v := range ov.Properties {
			tile.SetProperty(k, v)
		}
		g.Tiles[ov.Y][ov.X] = tile
	}
}
