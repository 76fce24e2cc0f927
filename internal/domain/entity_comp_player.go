package domain

// AddToInventory добавляет предмет в конец списка (порядок сохраняется)
func (p *PlayerComponent) AddToInventory(item *Entity) {
	p.Inventory = append(p.Inventory, item)
}

// RemoveFromInventory удаляет предмет по ID и возвращает его
func (p *PlayerComponent) RemoveFromInventory(itemID string) *Entity {
	for i, item := range p.Inventory {
		if item.ID == itemID {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return item
		}
	}
	return nil
}

// FindInventoryItem ищет предмет по ID
func (p *PlayerComponent) FindInventoryItem(itemID string) *Entity {
	for _, item := range p.Inventory {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// ReadyToMove - истек ли кулдаун движения
func (p *PlayerComponent) ReadyToMove() bool {
	return p.CooldownRemaining <= 0
}

// ArmCooldown взводит кулдаун после принятого шага
func (p *PlayerComponent) ArmCooldown() {
	p.CooldownRemaining = p.MoveCooldown
}

// TickCooldown списывает прошедшее время тика
func (p *PlayerComponent) TickCooldown(dt float64) {
	if p.CooldownRemaining > 0 {
		p.CooldownRemaining -= dt
		if p.CooldownRemaining < 0 {
			p.CooldownRemaining = 0
		}
	}
}

// Heal восстанавливает здоровье с ограничением сверху
func (p *PlayerComponent) Heal(amount int) {
	if amount < 0 {
		amount = 0
	}
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}
