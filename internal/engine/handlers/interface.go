package handlers

import (
	"encoding/json"
	"math/rand"

	"github.com/Tanno-Finn/pockethero-3/internal/dialog"
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/internal/eventbus"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Zone  *domain.Zone   // Активная зона
	Actor *domain.Entity // Тот, кто выполняет команду (игрок)

	Bus    *eventbus.Bus
	Dialog *dialog.Manager

	// Настроенные правила взаимодействий (в детерминированном порядке)
	Interactions []*domain.Interaction

	// RequestZoneChange публикует запрос на смену зоны контроллеру мира.
	// Ошибка означает, что запрос уже стоит в этом кадре.
	RequestZoneChange func(req domain.ZoneChangeRequest) error

	Clock float64 // часы сессии, сек
	Rng   *rand.Rand
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, SPEECH, ERROR)
	Handled bool   // Команда реально что-то сделала
}

// HandlerFunc - это контракт для любой команды (MOVE, INTERACT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
