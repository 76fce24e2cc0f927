package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Tanno-Finn/pockethero-3/internal/dialog"
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/internal/engine/handlers"
	"github.com/Tanno-Finn/pockethero-3/internal/engine/handlers/actions"
	"github.com/Tanno-Finn/pockethero-3/internal/eventbus"
	"github.com/Tanno-Finn/pockethero-3/internal/input"
	"github.com/Tanno-Finn/pockethero-3/internal/systems"
	"github.com/Tanno-Finn/pockethero-3/pkg/api"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
	"github.com/Tanno-Finn/pockethero-3/pkg/utils"
)

const (
	// defaultMoveCooldown - минимальный интервал между шагами игрока (сек)
	defaultMoveCooldown = 0.15

	defaultPlayerHealth = 100

	// maxSessionLogs - хвост игрового лога, уходящий в снапшот
	maxSessionLogs = 50
)

// Session - один игровой мир: зоны, игрок, шина событий, диалог,
// расписание NPC. Вся мутация состояния происходит в одном потоке
// тика; вход снаружи приходит через фасад ввода и Execute.
type Session struct {
	Bus    *eventbus.Bus
	Dialog *dialog.Manager

	Zones        map[string]*domain.Zone
	Interactions []*domain.Interaction

	Active *domain.Zone
	Player *domain.Entity

	// Clock - часы сессии (сек), сумма delta time всех тиков
	Clock float64
	Tick  uint64

	Rng   *rand.Rand
	Input *input.State

	scheduler *Scheduler

	// Ровно один запрос на смену зоны за кадр; повторные отвергаются
	pending *domain.ZoneChangeRequest

	registry map[string]handlers.HandlerFunc

	logs []api.LogEntry
}

// NewSession собирает сессию вокруг готовых зон.
// defaultZone обязан существовать; он же - fallback для переходов
// в несуществующую зону.
func NewSession(zones map[string]*domain.Zone, interactions []*domain.Interaction, defaultZone string, seed int64, logCapacity int) (*Session, error) {
	active, ok := zones[defaultZone]
	if !ok {
		return nil, fmt.Errorf("default zone %q does not exist", defaultZone)
	}
	if seed == 0 {
		seed = utils.NewSeed()
	}

	bus := eventbus.New(logCapacity)
	s := &Session{
		Bus:          bus,
		Dialog:       dialog.NewManager(bus),
		Zones:        zones,
		Interactions: interactions,
		Active:       active,
		Rng:          rand.New(rand.NewSource(seed)),
		Input:        input.NewState(),
		scheduler:    NewScheduler(),
		registry:     make(map[string]handlers.HandlerFunc),
	}

	s.registry["MOVE"] = handlers.WithPayload(actions.HandleMove)
	s.registry["INTERACT"] = handlers.WithEmptyPayload(actions.HandleInteract)
	s.registry["USE"] = handlers.WithPayload(actions.HandleUse)
	s.registry["WAIT"] = handlers.WithEmptyPayload(actions.HandleWait)

	s.rescheduleNPCs()

	logger.WithComponent("session").WithField("zones", len(zones)).
		WithField("seed", seed).Info("Session created")
	return s, nil
}

// SpawnPlayer создает игрока в активной зоне. Клетка должна быть
// валидной для шага (границы, проходимость, нет блокирующих).
func (s *Session) SpawnPlayer(name string, pos domain.Position) (*domain.Entity, error) {
	if s.Player != nil {
		return nil, errors.New("player already spawned")
	}
	if !s.Active.IsInZone(pos.X, pos.Y) {
		return nil, fmt.Errorf("spawn position %d,%d is out of bounds", pos.X, pos.Y)
	}

	p := domain.NewEntity(utils.GenerateID(), domain.EntityTypePlayer, name, pos)
	p.Player = &domain.PlayerComponent{
		Health:       defaultPlayerHealth,
		MaxHealth:    defaultPlayerHealth,
		MoveCooldown: defaultMoveCooldown,
	}
	p.Color = "#4a90d9"
	p.Shape = "circle"

	s.Active.AddEntity(p)
	s.Player = p
	return p, nil
}

// RequestZoneChange ставит запрос на смену зоны. За кадр исполняется
// ровно один; пока стоит необработанный, новые отвергаются.
func (s *Session) RequestZoneChange(req domain.ZoneChangeRequest) error {
	if s.pending != nil {
		return errors.New("zone change already pending")
	}
	r := req
	s.pending = &r
	return nil
}

// Execute запускает команду через реестр хендлеров. Результат с текстом
// попадает в игровой лог; ошибки валидации тоже (клиенту их видно).
func (s *Session) Execute(action string, payload json.RawMessage) (handlers.Result, error) {
	h, ok := s.registry[action]
	if !ok {
		return handlers.Result{}, fmt.Errorf("unknown action: %s", action)
	}

	res, err := h(s.handlerContext(), payload)
	if err != nil {
		s.appendLog(err.Error(), "ERROR")
		return res, err
	}
	if res.Msg != "" {
		s.appendLog(res.Msg, res.MsgType)
	}
	return res, nil
}

func (s *Session) handlerContext() handlers.Context {
	return handlers.Context{
		Zone:              s.Active,
		Actor:             s.Player,
		Bus:               s.Bus,
		Dialog:            s.Dialog,
		Interactions:      s.Interactions,
		RequestZoneChange: s.RequestZoneChange,
		Clock:             s.Clock,
		Rng:               s.Rng,
	}
}

// rescheduleNPCs заново наполняет расписание NPC активной зоны.
// Уже истекшие отметки обнуляются: после смены зоны NPC действуют
// со свежего отсчета, а не наверстывают "пропущенное".
func (s *Session) rescheduleNPCs() {
	s.scheduler.Clear()
	for _, e := range s.Active.Entities {
		comp := e.NPC
		if comp == nil || comp.Behavior == domain.NPCBehaviorStatic {
			continue
		}
		if comp.NextActionAt <= s.Clock {
			interval := comp.Interval
			if interval <= 0 {
				interval = systems.DefaultNPCInterval
			}
			comp.NextActionAt = s.Clock + interval
		}
		s.scheduler.Add(e, comp.NextActionAt)
	}
}

func (s *Session) appendLog(text, msgType string) {
	if msgType == "" {
		msgType = "INFO"
	}
	s.logs = append(s.logs, api.LogEntry{
		ID:        utils.GenerateID(),
		Text:      text,
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	})
	if len(s.logs) > maxSessionLogs {
		s.logs = s.logs[len(s.logs)-maxSessionLogs:]
	}
}

// Logs возвращает хвост игрового лога (для снапшота)
func (s *Session) Logs() []api.LogEntry {
	return s.logs
}
