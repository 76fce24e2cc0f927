package domain

// Teleporter - конструктивный помощник связи зон. В рантайме живого
// объекта телепортера нет: при движении консультируется только тайл
// по исходным координатам, несущий цель в свойствах.
type Teleporter struct {
	SourceZone string   `json:"sourceZone"`
	Source     Position `json:"source"`

	TargetZone string   `json:"targetZone"`
	Target     Position `json:"target"`

	Active     bool           `json:"active"`
	Properties map[string]any `json:"properties,omitempty"`
}

func NewTeleporter(sourceZone string, source Position, targetZone string, target Position) *Teleporter {
	return &Teleporter{
		SourceZone: sourceZone,
		Source:     source,
		TargetZone: targetZone,
		Target:     target,
		Active:     true,
	}
}

// Place материализует телепортер как тайл типа "teleporter"
// (теги teleporter+passable, цель в свойствах) в исходных координатах.
// Возвращает false без мутаций, если телепортер выключен или
// координаты вне границ сетки.
func (t *Teleporter) Place(g *Grid) bool {
	if !t.Active {
		return false
	}
	tile := NewTile(t.Source.X, t.Source.Y, TileTeleporter)
	tile.SetProperty(PropTargetZone, t.TargetZone)
	tile.SetProperty(PropTargetX, t.Target.X)
	tile.SetProperty(PropTargetY, t.Target.Y)
	for k, v := range t.Properties {
		tile.SetProperty(k, v)
	}
	return g.SetTileAt(t.Source.X, t.Source.Y, tile)
}

// CreateLinked размещает прямой телепортер в sourceGrid, строит обратный
// (source и target меняются местами), размещает его в targetGrid и
// возвращает. Из одного одностороннего объявления получается
// двунаправленная пара.
func (t *Teleporter) CreateLinked(sourceGrid, targetGrid *Grid) *Teleporter {
	t.Place(sourceGrid)

	back := NewTeleporter(t.TargetZone, t.Target, t.SourceZone, t.Source)
	back.Place(targetGrid)
	return back
}

// ChangeRequestFromTile читает цель перехода из тайла-телепортера.
// Возвращает false, если тайл не телепортер или цель не заполнена.
func ChangeRequestFromTile(tile *Tile) (ZoneChangeRequest, bool) {
	if tile == nil || tile.Type != TileTeleporter {
		return ZoneChangeRequest{}, false
	}
	zone, ok := tile.StringProperty(PropTargetZone)
	if !ok || zone == "" {
		return ZoneChangeRequest{}, false
	}
	x, okX := tile.IntProperty(PropTargetX)
	y, okY := tile.IntProperty(PropTargetY)
	if !okX || !okY {
		return ZoneChangeRequest{}, false
	}
	return ZoneChangeRequest{TargetZone: zone, TargetX: x, TargetY: y}, true
}
