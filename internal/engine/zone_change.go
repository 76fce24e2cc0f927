package engine

import (
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

// applyZoneChange атомарно переносит игрока в целевую зону.
// Наблюдаемых промежуточных состояний нет: удаление из старой зоны,
// вставка в новую и переключение активной зоны происходят внутри
// одной фазы тика, до следующего чтения состояния.
//
// Несуществующая целевая зона - ошибка данных: переход не выполняется,
// игрок остается на месте.
func (s *Session) applyZoneChange(req domain.ZoneChangeRequest) {
	log := logger.WithComponent("zone_change").
		WithField("target", req.TargetZone)

	target, ok := s.Zones[req.TargetZone]
	if !ok {
		log.Warn("Zone change to unknown zone rejected")
		s.appendLog("Переход ведет в никуда.", "ERROR")
		return
	}
	if !target.IsInZone(req.TargetX, req.TargetY) {
		log.WithField("x", req.TargetX).WithField("y", req.TargetY).
			Warn("Zone change target position is out of bounds")
		return
	}

	from := s.Active.ID

	// Игрок переносится как есть: идентичность, инвентарь и здоровье
	// принадлежат сессии, а не зоне
	s.Active.RemoveEntity(s.Player.ID)
	s.Player.Pos = domain.Position{X: req.TargetX, Y: req.TargetY}
	target.AddEntity(s.Player)
	s.Active = target

	s.rescheduleNPCs()

	s.Bus.Emit(domain.EventZoneChange, map[string]any{
		"entity":   s.Player.ID,
		"fromZone": from,
		"toZone":   target.ID,
		"x":        req.TargetX,
		"y":        req.TargetY,
	})

	log.WithField("from", from).Info("Zone change applied")
}
