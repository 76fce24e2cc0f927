package systems

import (
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

// ResolveInteractTarget находит цель взаимодействия игрока: сущность
// на клетке прямо по взгляду (первая в порядке вставки зоны),
// принимающая взаимодействие со стороны подхода — то есть с направления,
// противоположного взгляду игрока.
//
// Возвращает nil, если клетка пуста, сущность не интерактивна
// или подход с этой стороны не разрешен.
func ResolveInteractTarget(actor *domain.Entity, z *domain.Zone) *domain.Entity {
	front := actor.FrontPos()
	target := z.GetEntityAt(front.X, front.Y)
	if target == nil {
		return nil
	}
	if !target.CanInteractFrom(actor.Facing.Opposite()) {
		return nil
	}
	return target
}
