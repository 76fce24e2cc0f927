package systems

import (
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

// MoveResult - результат вычисления движения
type MoveResult struct {
	X, Y        int
	Moved       bool
	OutOfBounds bool
	Impassable  bool           // тайл без тега passable
	BlockedBy   *domain.Entity // блокирующая сущность на целевой клетке
}

// Calculate проверяет шаг в (x,y), не меняя состояние мира.
// Конъюнкция: границы -> проходимость тайла -> отсутствие блокирующей
// сущности. Порядок важен только для short-circuit, не для семантики.
func Calculate(e *domain.Entity, z *domain.Zone, x, y int) MoveResult {
	res := MoveResult{X: x, Y: y}

	if !z.Grid.IsInBounds(x, y) {
		res.OutOfBounds = true
		return res
	}

	tile := z.Grid.TileAt(x, y)
	if !e.CanPassTile(tile) {
		res.Impassable = true
		return res
	}

	if blocker := z.BlockingEntityAt(x, y, e.ID); blocker != nil {
		res.BlockedBy = blocker
		return res
	}

	res.Moved = true
	return res
}

// CanMoveTo - булева форма Calculate
func CanMoveTo(e *domain.Entity, z *domain.Zone, x, y int) bool {
	return Calculate(e, z, x, y).Moved
}

// MoveTo перевалидирует и применяет шаг. Позиция обновляется атомарно
// (обе координаты вместе); при провале состояние не меняется.
func MoveTo(e *domain.Entity, z *domain.Zone, x, y int) bool {
	if !CanMoveTo(e, z, x, y) {
		return false
	}
	e.Pos = domain.Position{X: x, Y: y}
	return true
}

// MoveInDirection делает один шаг в направлении d.
// Взгляд поворачивается безусловно — даже при провале шага сущность
// "повернулась в ту сторону".
func MoveInDirection(e *domain.Entity, z *domain.Zone, d domain.Direction) bool {
	e.Facing = d
	target := e.Pos.Step(d)
	return MoveTo(e, z, target.X, target.Y)
}
