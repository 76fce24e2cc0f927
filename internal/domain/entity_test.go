package domain

import (
	"testing"
)

func TestNewEntity_DerivedTags(t *testing.T) {
	tests := []struct {
		typ      EntityType
		want     []string
		blocking bool
	}{
		{EntityTypePlayer, []string{TagPlayer, TagCharacter, TagBlocking}, true},
		{EntityTypeNPC, []string{TagNPC, TagCharacter, TagBlocking}, true},
		{EntityTypeItem, []string{TagItem}, false},
		{EntityTypeFurniture, []string{TagFurniture, TagBlocking}, true},
		{EntityTypeGeneric, nil, false},
	}

	for _, tt := range tests {
		e := NewEntity("e1", tt.typ, "X", Position{})
		for _, tag := range tt.want {
			if !e.HasTag(tag) {
				t.Errorf("%s: missing tag %s", tt.typ, tag)
			}
		}
		if e.IsBlocking() != tt.blocking {
			t.Errorf("%s: IsBlocking = %v, want %v", tt.typ, e.IsBlocking(), tt.blocking)
		}
		if e.Facing != DirectionSouth {
			t.Errorf("%s: default facing = %s, want south", tt.typ, e.Facing)
		}
	}
}

func TestEntity_CanPassTile(t *testing.T) {
	e := NewEntity("e1", EntityTypePlayer, "P", Position{})

	if e.CanPassTile(nil) {
		t.Error("nil tile must not be passable")
	}
	if !e.CanPassTile(NewTile(0, 0, TileGrass)) {
		t.Error("grass must be passable by default")
	}
	if e.CanPassTile(NewTile(0, 0, TileWater)) {
		t.Error("water must block by default")
	}

	// PassRule полностью замещает дефолтную политику
	e.PassRule = func(_ *Entity, tile *Tile) bool { return tile.Type == TileWater }
	if !e.CanPassTile(NewTile(0, 0, TileWater)) {
		t.Error("pass rule override must allow water")
	}
	if e.CanPassTile(NewTile(0, 0, TileGrass)) {
		t.Error("pass rule override must reject grass")
	}
}

func TestEntity_CanInteractFrom(t *testing.T) {
	e := NewEntity("e1", EntityTypeNPC, "N", Position{})

	// Неинтерактивная сущность закрыта со всех сторон
	e.Interactable = false
	if e.CanInteractFrom(DirectionNorth) {
		t.Error("non-interactable entity accepted interaction")
	}

	// Пустой набор направлений = любое
	e.Interactable = true
	for _, d := range AllDirections {
		if !e.CanInteractFrom(d) {
			t.Errorf("empty dir set must accept %s", d)
		}
	}

	// Явный набор ограничивает
	e.InteractDirs = map[Direction]bool{DirectionSouth: true}
	if !e.CanInteractFrom(DirectionSouth) {
		t.Error("allowed direction rejected")
	}
	if e.CanInteractFrom(DirectionNorth) {
		t.Error("disallowed direction accepted")
	}
}

func TestEntity_FrontPos(t *testing.T) {
	e := NewEntity("e1", EntityTypePlayer, "P", Position{X: 3, Y: 3})
	e.Facing = DirectionEast
	if got := e.FrontPos(); got.X != 4 || got.Y != 3 {
		t.Errorf("FrontPos = (%d,%d), want (4,3)", got.X, got.Y)
	}
	e.Facing = DirectionNorth
	if got := e.FrontPos(); got.X != 3 || got.Y != 2 {
		t.Errorf("FrontPos = (%d,%d), want (3,2)", got.X, got.Y)
	}
}

func TestBuildEntity_Variants(t *testing.T) {
	// NPC: компонент, интерактивность по умолчанию, маршрут патруля
	npc := BuildEntity(EntityDescriptor{
		Type: "npc", Name: "Guard", X: intp(1), Y: intp(2),
		Behavior: "patrol", PatrolRoute: []string{"east", "bogus", "west"},
	})
	if npc.NPC == nil {
		t.Fatal("npc component missing")
	}
	if npc.NPC.Behavior != NPCBehaviorPatrol {
		t.Errorf("behavior = %s, want patrol", npc.NPC.Behavior)
	}
	if !npc.Interactable {
		t.Error("npc must default to interactable")
	}
	// Нераспознанное направление маршрута отбрасывается
	if len(npc.NPC.PatrolRoute) != 2 {
		t.Errorf("patrol route len = %d, want 2", len(npc.NPC.PatrolRoute))
	}

	// Item: pickupable и quantity по умолчанию
	item := BuildEntity(EntityDescriptor{Type: "item", Name: "Potion", X: intp(0), Y: intp(0)})
	if item.Item == nil {
		t.Fatal("item component missing")
	}
	if !item.Item.Pickupable {
		t.Error("item must default to pickupable")
	}
	if item.Item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Item.Quantity)
	}

	// Неизвестный тип деградирует до базовой сущности
	weird := BuildEntity(EntityDescriptor{Type: "dragon", X: intp(0), Y: intp(0)})
	if weird.Player != nil || weird.NPC != nil || weird.Item != nil {
		t.Error("unknown type must build a bare entity")
	}

	// Неизвестная политика поведения NPC деградирует до static
	lazy := BuildEntity(EntityDescriptor{Type: "npc", X: intp(0), Y: intp(0), Behavior: "zigzag"})
	if lazy.NPC.Behavior != NPCBehaviorStatic {
		t.Errorf("unknown behavior = %s, want static", lazy.NPC.Behavior)
	}
}

func intp(v int) *int { return &v }
