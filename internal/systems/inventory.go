package systems

import (
	"fmt"

	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

// TryPickup перекладывает предмет из зоны в инвентарь actor'а.
// Подбирать могут только сущности с инвентарем (игрок); предмет
// удаляется из зоны — владение переходит атомарно.
func TryPickup(actor, item *domain.Entity, z *domain.Zone) error {
	if actor.Player == nil {
		return fmt.Errorf("%s не может носить предметы", actor.Name)
	}
	if item.Item == nil {
		return fmt.Errorf("это не предмет")
	}
	if !item.Item.Pickupable {
		return fmt.Errorf("%s нельзя подобрать", item.Name)
	}

	actor.Player.AddToInventory(item)
	z.RemoveEntity(item.ID)
	return nil
}

// TryStack объединяет количество src в dst. Явная операция:
// автоматического слияния при подборе нет. При успехе src остается
// пустым стаком (Quantity 0) — вызывающий решает, удалять ли его.
func TryStack(dst, src *domain.Entity) bool {
	if dst == nil || src == nil || dst.ID == src.ID {
		return false
	}
	if !dst.Item.CanStackWith(src.Item) {
		return false
	}
	dst.Item.AbsorbStack(src.Item)
	return true
}

// ApplyHeal лечит цель с ограничением MaxHealth.
// Возвращает false, если цель не умеет лечиться.
func ApplyHeal(target *domain.Entity, amount int) bool {
	if target.Player == nil {
		return false
	}
	target.Player.Heal(amount)
	return true
}

// ConsumeOne списывает одну единицу предмета из инвентаря владельца:
// стак уменьшается, последняя единица удаляет предмет целиком.
func ConsumeOne(owner *domain.Entity, item *domain.Entity) {
	if owner.Player == nil || item.Item == nil {
		return
	}
	if item.Item.Stackable && item.Item.Quantity > 1 {
		item.Item.Quantity--
		return
	}
	owner.Player.RemoveFromInventory(item.ID)
}
