package dialog

import (
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/internal/eventbus"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

// Request - параметры показа диалога. Фасад fire-and-forget:
// завершение наблюдается только через события dialog_start/dialog_end,
// никаких возвратов и коллбеков.
type Request struct {
	Content      string  `json:"content"`
	Speaker      string  `json:"speaker,omitempty"`
	WaitForInput bool    `json:"waitForInput,omitempty"`
	Duration     float64 `json:"duration,omitempty"` // сек; 0 = без автозакрытия
}

// Manager - единственный владелец активного диалога сессии.
// Истечение срока обрабатывается внутри однопоточного тика,
// без таймеров и горутин.
type Manager struct {
	bus *eventbus.Bus

	active    *Request
	remaining float64
}

func NewManager(bus *eventbus.Bus) *Manager {
	return &Manager{bus: bus}
}

// Show открывает диалог. Уже открытый закрывается (с dialog_end) —
// реплики не ставятся в очередь.
func (m *Manager) Show(req Request) {
	if m.active != nil {
		m.close()
	}

	r := req
	m.active = &r
	m.remaining = req.Duration

	logger.WithComponent("dialog").WithField("speaker", req.Speaker).Debug("Dialog opened")
	m.bus.Emit(domain.EventDialogStart, map[string]any{
		"content": req.Content,
		"speaker": req.Speaker,
	})
}

// Update продвигает срок жизни диалога. dismiss=true — игрок нажал
// клавишу подтверждения в этом кадре.
// Возвращает true, если диалог поглотил нажатие.
func (m *Manager) Update(dt float64, dismiss bool) bool {
	if m.active == nil {
		return false
	}

	if m.active.WaitForInput {
		if dismiss {
			m.close()
			return true
		}
		return false
	}

	if m.active.Duration > 0 {
		m.remaining -= dt
		if m.remaining <= 0 {
			m.close()
		}
	}
	return false
}

func (m *Manager) close() {
	req := m.active
	m.active = nil
	m.remaining = 0
	m.bus.Emit(domain.EventDialogEnd, map[string]any{
		"content": req.Content,
		"speaker": req.Speaker,
	})
}

// Active возвращает копию активного запроса (для снапшота состояния)
func (m *Manager) Active() (Request, bool) {
	if m.active == nil {
		return Request{}, false
	}
	return *m.active, true
}

// IsActive - открыт ли диалог
func (m *Manager) IsActive() bool { return m.active != nil }
