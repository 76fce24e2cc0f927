package systems

import (
	"testing"

	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

func createPlayer(pos domain.Position) *domain.Entity {
	p := domain.NewEntity("p1", domain.EntityTypePlayer, "Hero", pos)
	p.Player = &domain.PlayerComponent{Health: 50, MaxHealth: 100}
	return p
}

func createItem(id string, pos domain.Position) *domain.Entity {
	e := domain.NewEntity(id, domain.EntityTypeItem, "Potion", pos)
	e.Item = &domain.ItemComponent{Pickupable: true, Quantity: 1}
	return e
}

func TestTryPickup(t *testing.T) {
	z := domain.NewZone("z", "Z", 5, 5, 32, domain.TileGrass)
	p := createPlayer(domain.Position{X: 1, Y: 1})
	item := createItem("i1", domain.Position{X: 1, Y: 2})
	z.AddEntity(p)
	z.AddEntity(item)

	if err := TryPickup(p, item, z); err != nil {
		t.Fatalf("pickup failed: %v", err)
	}
	if len(p.Player.Inventory) != 1 || p.Player.Inventory[0] != item {
		t.Error("item must be in inventory")
	}
	// Владение переходит атомарно: предмет покинул зону
	if z.GetEntity("i1") != nil {
		t.Error("item must be removed from the zone")
	}
}

func TestTryPickup_Rejections(t *testing.T) {
	z := domain.NewZone("z", "Z", 5, 5, 32, domain.TileGrass)

	npc := domain.NewEntity("n1", domain.EntityTypeNPC, "Guard", domain.Position{})
	item := createItem("i1", domain.Position{})
	if err := TryPickup(npc, item, z); err == nil {
		t.Error("npc without inventory must not pick up")
	}

	p := createPlayer(domain.Position{})
	fixed := createItem("i2", domain.Position{})
	fixed.Item.Pickupable = false
	z.AddEntity(fixed)
	if err := TryPickup(p, fixed, z); err == nil {
		t.Error("non-pickupable item accepted")
	}
	if z.GetEntity("i2") == nil {
		t.Error("failed pickup must not remove the item")
	}

	furniture := domain.NewEntity("f1", domain.EntityTypeFurniture, "Table", domain.Position{})
	if err := TryPickup(p, furniture, z); err == nil {
		t.Error("furniture accepted as item")
	}
}

func TestTryStack(t *testing.T) {
	a := createItem("a", domain.Position{})
	a.Item.Stackable = true
	a.Item.DefinitionID = "potion"
	a.Item.Quantity = 2

	b := createItem("b", domain.Position{})
	b.Item.Stackable = true
	b.Item.DefinitionID = "potion"
	b.Item.Quantity = 3

	if !TryStack(a, b) {
		t.Fatal("matching stackables must merge")
	}
	if a.Item.Quantity != 5 {
		t.Errorf("dst quantity = %d, want 5", a.Item.Quantity)
	}
	if b.Item.Quantity != 0 {
		t.Errorf("src quantity = %d, want 0", b.Item.Quantity)
	}

	// Разные определения не стакуются
	c := createItem("c", domain.Position{})
	c.Item.Stackable = true
	c.Item.DefinitionID = "elixir"
	if TryStack(a, c) {
		t.Error("different definitions must not stack")
	}

	// Предмет не стакуется сам с собой
	if TryStack(a, a) {
		t.Error("self stack must be rejected")
	}
}

func TestApplyHealAndConsume(t *testing.T) {
	p := createPlayer(domain.Position{})
	item := createItem("i1", domain.Position{})
	item.Item.Stackable = true
	item.Item.Quantity = 2
	p.Player.AddToInventory(item)

	if !ApplyHeal(p, 75) {
		t.Fatal("heal failed")
	}
	// Лечение ограничено MaxHealth
	if p.Player.Health != 100 {
		t.Errorf("health = %d, want 100 (capped)", p.Player.Health)
	}

	ConsumeOne(p, item)
	if item.Item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Item.Quantity)
	}
	if len(p.Player.Inventory) != 1 {
		t.Error("stack with remaining units must stay in inventory")
	}

	ConsumeOne(p, item)
	if len(p.Player.Inventory) != 0 {
		t.Error("last unit must remove the item")
	}

	// Лечение нелечимого
	rock := domain.NewEntity("r1", domain.EntityTypeFurniture, "Rock", domain.Position{})
	if ApplyHeal(rock, 10) {
		t.Error("furniture must not heal")
	}
}
