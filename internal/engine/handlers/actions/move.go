package actions

import (
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/internal/engine/handlers"
	"github.com/Tanno-Finn/pockethero-3/internal/systems"
	"github.com/Tanno-Finn/pockethero-3/pkg/api"
)

// HandleMove обрабатывает команду MOVE - один шаг игрока.
// Взгляд поворачивается даже при провале шага; событие player_move
// излучается только на реально состоявшийся шаг.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	actor := ctx.Actor
	if actor.Player == nil {
		return handlers.EmptyResult(), nil
	}

	d := domain.ParseDirection(p.Direction)
	if d == domain.DirectionNone {
		return handlers.EmptyResult(), nil // валидация не должна была пропустить
	}

	// Кулдаун троттлит принятие шагов, а не поворот взгляда
	if !actor.Player.ReadyToMove() {
		actor.Facing = d
		return handlers.EmptyResult(), nil
	}

	from := actor.Pos
	if !systems.MoveInDirection(actor, ctx.Zone, d) {
		return handlers.EmptyResult(), nil
	}

	actor.Player.ArmCooldown()
	ctx.Bus.Emit(domain.EventPlayerMove, map[string]any{
		"entity":    actor.ID,
		"fromX":     from.X,
		"fromY":     from.Y,
		"toX":       actor.Pos.X,
		"toY":       actor.Pos.Y,
		"direction": d.String(),
	})

	// Наступили на телепортер - просим контроллер мира о переходе.
	// Сам переход случится в фазе тика, не здесь.
	tile := ctx.Zone.Grid.TileAt(actor.Pos.X, actor.Pos.Y)
	if req, ok := domain.ChangeRequestFromTile(tile); ok {
		_ = ctx.RequestZoneChange(req) // повторный запрос в кадре отвергается молча
	}

	return handlers.Result{Handled: true}, nil
}
