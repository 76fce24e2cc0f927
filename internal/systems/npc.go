package systems

import (
	"math/rand"

	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

const (
	// DefaultNPCInterval - базовый период действий NPC (сек),
	// если данные зоны не задали свой
	DefaultNPCInterval = 2.0

	// randomMoveExtraCooldown - короткая добавка после УДАЧНОГО
	// случайного шага
	randomMoveExtraCooldown = 0.3
)

// AdvanceNPC выполняет одно запланированное действие NPC и взводит
// NextActionAt на часах сессии. Вызывается из тика, когда наступил срок.
// Возвращает true, если NPC реально сдвинулся.
//
// random-политика перевзводится на рандомизированный интервал независимо
// от успеха шага — провал не ретраится раньше (наблюдаемое поведение,
// а не бэкофф).
func AdvanceNPC(npc *domain.Entity, z *domain.Zone, clock float64, rng *rand.Rand) bool {
	comp := npc.NPC
	if comp == nil {
		return false
	}

	interval := comp.Interval
	if interval <= 0 {
		interval = DefaultNPCInterval
	}

	switch comp.Behavior {
	case domain.NPCBehaviorPatrol:
		if len(comp.PatrolRoute) == 0 {
			comp.NextActionAt = clock + interval
			return false
		}
		d := comp.PatrolRoute[comp.PatrolIndex]
		comp.PatrolIndex = (comp.PatrolIndex + 1) % len(comp.PatrolRoute)
		moved := MoveInDirection(npc, z, d)
		comp.NextActionAt = clock + interval
		return moved

	case domain.NPCBehaviorRandom:
		d := domain.AllDirections[rng.Intn(len(domain.AllDirections))]
		moved := MoveInDirection(npc, z, d)
		next := interval * (0.5 + rng.Float64()) // равномерно [0.5..1.5) периода
		if moved {
			next += randomMoveExtraCooldown
		}
		comp.NextActionAt = clock + next
		return moved

	default:
		// static: расписание не взводится, NPC стоит на месте
		comp.NextActionAt = 0
		return false
	}
}
