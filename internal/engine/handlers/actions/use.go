package actions

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Tanno-Finn/pockethero-3/internal/dialog"
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/internal/engine/handlers"
	"github.com/Tanno-Finn/pockethero-3/internal/systems"
	"github.com/Tanno-Finn/pockethero-3/pkg/api"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

// HandleUse обрабатывает команду USE - использование предмета из инвентаря
func HandleUse(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	actor := ctx.Actor

	log := logger.Log.WithFields(logrus.Fields{
		"component": "use_handler",
		"actor_id":  actor.ID,
	})

	if actor.Player == nil {
		log.Warn("Actor has no inventory component")
		return handlers.Result{Msg: "Нечем использовать предметы.", MsgType: "ERROR"}, nil
	}

	item := actor.Player.FindInventoryItem(p.ItemID)
	if item == nil {
		log.WithField("item_id", p.ItemID).Warn("Item not found in inventory")
		return handlers.Result{Msg: "Предмет не найден в инвентаре.", MsgType: "ERROR"}, nil
	}

	if item.Item == nil || item.Item.UseEffect == nil {
		return handlers.Result{Msg: fmt.Sprintf("%s нельзя использовать.", item.Name), MsgType: "ERROR"}, nil
	}

	effect := item.Item.UseEffect

	switch effect.Type {
	case domain.UseEffectHeal:
		if !systems.ApplyHeal(actor, effect.Value) {
			return handlers.Result{Msg: "Не удалось применить эффект.", MsgType: "ERROR"}, nil
		}
		systems.ConsumeOne(actor, item)
		return handlers.Result{
			Msg:     fmt.Sprintf("%s восстанавливает %d здоровья.", actor.Name, effect.Value),
			MsgType: "INFO",
			Handled: true,
		}, nil

	case domain.UseEffectTeleport:
		if err := ctx.RequestZoneChange(domain.ZoneChangeRequest{
			TargetZone: effect.TargetZone,
			TargetX:    effect.TargetX,
			TargetY:    effect.TargetY,
		}); err != nil {
			return handlers.Result{Msg: "Переход уже выполняется.", MsgType: "ERROR"}, nil
		}
		systems.ConsumeOne(actor, item)
		return handlers.Result{Handled: true}, nil

	case domain.UseEffectDialog:
		// Читаемые предметы не расходуются
		ctx.Dialog.Show(dialog.Request{
			Content:      effect.Content,
			Speaker:      effect.Speaker,
			WaitForInput: true,
		})
		return handlers.Result{Msg: effect.Content, MsgType: "SPEECH", Handled: true}, nil

	default:
		// Неизвестный тип не глотается: переизлучаем одноименное событие,
		// пусть его интерпретирует внешний слушатель
		data := map[string]any{
			"entity": actor.ID,
			"item":   item.ID,
		}
		for k, v := range effect.Properties {
			data[k] = v
		}
		ctx.Bus.Emit(effect.Type, data)
		log.WithField("effect_type", effect.Type).Debug("Custom use effect re-emitted")
		return handlers.Result{Handled: true}, nil
	}
}
