package engine

import (
	"time"

	"github.com/Tanno-Finn/pockethero-3/internal/input"
	"github.com/Tanno-Finn/pockethero-3/pkg/api"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

// Broadcaster рассылает снимок состояния подключенным клиентам.
// Реализуется сетевым хабом; в тестах подменяется заглушкой.
type Broadcaster interface {
	Broadcast(resp api.ServerResponse)
}

// remoteKeys - состояние логических клавиш удаленного клиента.
// Обновляется командами KEYS; читается только внутри потока тика,
// поэтому без блокировок.
type remoteKeys map[input.Key]bool

func (m remoteKeys) IsKeyDown(k input.Key) bool { return m[k] }

func (m remoteKeys) apply(keys []string) {
	for k := range m {
		delete(m, k)
	}
	for _, k := range keys {
		m[input.Key(k)] = true
	}
}

// Service гоняет сессию в реальном времени: фиксированный тикер,
// команды из канала, рассылка снимков после каждого кадра.
// Вся мутация мира происходит в одной горутине RunLoop.
type Service struct {
	Session *Session

	// CommandChan принимает команды внешнего мира (WebSocket)
	CommandChan chan api.ClientCommand

	hub      Broadcaster
	keys     remoteKeys
	tickRate int

	quit chan struct{}
	done chan struct{}
}

func NewService(session *Session, tickRate int) *Service {
	if tickRate <= 0 {
		tickRate = 20
	}
	return &Service{
		Session:     session,
		CommandChan: make(chan api.ClientCommand, 100),
		keys:        make(remoteKeys),
		tickRate:    tickRate,
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// SetBroadcaster подключает рассылку (до Start)
func (s *Service) SetBroadcaster(b Broadcaster) {
	s.hub = b
}

func (s *Service) Start() {
	go s.RunLoop()
}

// Stop останавливает цикл и дожидается завершения кадра
func (s *Service) Stop() {
	close(s.quit)
	<-s.done
}

// RunLoop - единственная горутина, мутирующая мир
func (s *Service) RunLoop() {
	defer close(s.done)

	interval := time.Second / time.Duration(s.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.WithComponent("loop").WithField("tick_rate", s.tickRate).Info("Game loop started")

	last := time.Now()
	for {
		select {
		case <-s.quit:
			logger.WithComponent("loop").Info("Game loop stopped")
			return

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			s.drainCommands()
			s.Session.Update(dt, s.keys)

			if s.hub != nil {
				s.hub.Broadcast(*s.Session.BuildSnapshot("UPDATE"))
			}
		}
	}
}

// drainCommands применяет все накопившиеся команды перед кадром.
// KEYS только обновляет фасад ввода; остальное уходит в реестр хендлеров.
func (s *Service) drainCommands() {
	for {
		select {
		case cmd := <-s.CommandChan:
			s.processCommand(cmd)
		default:
			return
		}
	}
}

func (s *Service) processCommand(cmd api.ClientCommand) {
	if cmd.Action == "KEYS" {
		var p api.KeysPayload
		if err := api.DecodePayload(cmd.Payload, &p); err != nil {
			logger.WithComponent("loop").WithError(err).Warn("Malformed KEYS payload")
			return
		}
		s.keys.apply(p.Keys)
		return
	}

	if _, err := s.Session.Execute(cmd.Action, cmd.Payload); err != nil {
		logger.WithComponent("loop").WithField("action", cmd.Action).
			WithError(err).Warn("Command rejected")
	}
}
