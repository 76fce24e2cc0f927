package actions

import (
	"github.com/Tanno-Finn/pockethero-3/internal/engine/handlers"
)

// HandleWait обрабатывает команду WAIT - игрок пропускает кадр.
// В реальном времени это no-op; команда существует для явного
// "ничего не делать" от удаленного клиента.
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{Handled: true}, nil
}
