package actions

import (
	"fmt"

	"github.com/Tanno-Finn/pockethero-3/internal/dialog"
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/internal/engine/handlers"
	"github.com/Tanno-Finn/pockethero-3/internal/input"
	"github.com/Tanno-Finn/pockethero-3/internal/systems"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

// HandleInteract обрабатывает команду INTERACT - взаимодействие с клеткой
// прямо по взгляду игрока. Цель должна принимать подход со стороны игрока
// (направление, противоположное взгляду).
//
// player_interact излучается только на состоявшееся взаимодействие.
// Цель, которую не принял ни один из путей (диалог, подбор, правило),
// не меняет состояние и не порождает событий: Handled=false.
func HandleInteract(ctx handlers.Context) (handlers.Result, error) {
	actor := ctx.Actor

	target := systems.ResolveInteractTarget(actor, ctx.Zone)
	if target == nil {
		return handlers.EmptyResult(), nil // пустая клетка или закрытая сторона
	}

	approach := actor.Facing.Opposite()

	// NPC с репликой - открываем диалог
	if target.NPC != nil && target.NPC.Dialog != nil {
		emitInteract(ctx, actor, target, approach)
		speaker := target.NPC.Dialog.Speaker
		if speaker == "" {
			speaker = target.Name
		}
		ctx.Dialog.Show(dialog.Request{
			Content:      target.NPC.Dialog.Content,
			Speaker:      speaker,
			WaitForInput: true,
		})
		return handlers.Result{Msg: target.NPC.Dialog.Content, MsgType: "SPEECH", Handled: true}, nil
	}

	// Предмет - подбор в инвентарь
	if target.Item != nil {
		if err := systems.TryPickup(actor, target, ctx.Zone); err != nil {
			return handlers.Result{Msg: err.Error(), MsgType: "ERROR"}, nil
		}
		emitInteract(ctx, actor, target, approach)
		ctx.Bus.Emit(domain.EventItemPickup, map[string]any{
			"entity": actor.ID,
			"item":   target.ID,
			"name":   target.Name,
		})
		return handlers.Result{Msg: fmt.Sprintf("Подобрано: %s", target.Name), MsgType: "INFO", Handled: true}, nil
	}

	// Настроенные правила: срабатывает первое, чья привязка к клавише,
	// теги и направление совпали. Правила с другой клавишей здесь
	// не рассматриваются. Свое событие правило излучает само.
	for _, rule := range ctx.Interactions {
		if rule.Key != string(input.KeyInteract) {
			continue
		}
		if !rule.CanInteractWith(target) || !rule.IsValidDirection(approach) {
			continue
		}
		emitInteract(ctx, actor, target, approach)
		rule.Execute(ctx.Bus, actor, target, approach)
		logger.WithComponent("interact").WithField("rule", rule.ID).
			WithField("target", target.ID).Debug("Interaction rule fired")
		return handlers.Result{Handled: true}, nil
	}

	return handlers.EmptyResult(), nil
}

func emitInteract(ctx handlers.Context, actor, target *domain.Entity, approach domain.Direction) {
	ctx.Bus.Emit(domain.EventPlayerInteract, map[string]any{
		"source":    actor.ID,
		"target":    target.ID,
		"direction": approach.String(),
	})
}
