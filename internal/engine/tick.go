package engine

import (
	"encoding/json"

	"github.com/Tanno-Finn/pockethero-3/internal/input"
	"github.com/Tanno-Finn/pockethero-3/internal/systems"
	"github.com/Tanno-Finn/pockethero-3/pkg/api"
)

// Update продвигает сессию на один кадр. dt - прошедшее настенное время
// в секундах. Порядок фаз фиксирован:
//
//  1. часы и снимок ввода
//  2. диалог (открытый диалог поглощает нажатие interact)
//  3. игрок: кулдаун, движение по зажатой клавише, interact
//  4. NPC, чей срок настал
//  5. отложенная смена зоны
//
// Все события шины доставляются синхронно внутри своей фазы.
func (s *Session) Update(dt float64, src input.Source) {
	s.Tick++
	s.Clock += dt
	s.Input.Capture(src)

	// Диалог первым: пока открыт диалог с WaitForInput, нажатие
	// interact закрывает его и не доходит до игрока
	interactPressed := s.Input.JustPressed(input.KeyInteract)
	if s.Dialog.Update(dt, interactPressed) {
		interactPressed = false
	}

	if s.Player != nil {
		s.updatePlayer(dt, interactPressed)
	}

	s.updateNPCs()

	if s.pending != nil {
		req := *s.pending
		s.pending = nil
		s.applyZoneChange(req)
	}
}

func (s *Session) updatePlayer(dt float64, interactPressed bool) {
	s.Player.Player.TickCooldown(dt)

	if d, ok := s.Input.MovementDirection(); ok {
		payload, _ := json.Marshal(api.DirectionPayload{Direction: d.String()})
		_, _ = s.Execute("MOVE", payload)
		return // движение и взаимодействие не совмещаются в одном кадре
	}

	if interactPressed {
		_, _ = s.Execute("INTERACT", nil)
	}
}

// updateNPCs снимает с расписания всех NPC, чей срок настал, и
// продвигает каждого. Новый срок ставит сам AdvanceNPC; расписание
// перевзводится его отметкой.
func (s *Session) updateNPCs() {
	for _, npc := range s.scheduler.PopDue(s.Clock) {
		// NPC мог быть удален из зоны после постановки в очередь
		if s.Active.GetEntity(npc.ID) == nil {
			continue
		}
		systems.AdvanceNPC(npc, s.Active, s.Clock, s.Rng)
		if npc.NPC != nil && npc.NPC.NextActionAt > s.Clock {
			s.scheduler.Add(npc, npc.NPC.NextActionAt)
		}
	}
}
