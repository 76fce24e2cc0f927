package engine

import (
	"encoding/json"
	"testing"

	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/internal/eventbus"
	"github.com/Tanno-Finn/pockethero-3/internal/input"
	"github.com/Tanno-Finn/pockethero-3/pkg/api"
)

// Тестовый мир: две зоны 5x5, телепортер из a(3,1) в b(1,1)
func createTestSession(t *testing.T) *Session {
	t.Helper()

	a := domain.NewZone("a", "Zone A", 5, 5, 32, domain.TileGrass)
	b := domain.NewZone("b", "Zone B", 5, 5, 32, domain.TileGrass)

	tp := domain.NewTeleporter("a", domain.Position{X: 3, Y: 1}, "b", domain.Position{X: 1, Y: 1})
	tp.CreateLinked(a.Grid, b.Grid)

	s, err := NewSession(map[string]*domain.Zone{"a": a, "b": b}, nil, "a", 7, 0)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := s.SpawnPlayer("Hero", domain.Position{X: 1, Y: 1}); err != nil {
		t.Fatalf("SpawnPlayer: %v", err)
	}
	return s
}

func countEvents(bus *eventbus.Bus, types ...string) map[string]*int {
	out := make(map[string]*int, len(types))
	for _, typ := range types {
		n := new(int)
		out[typ] = n
		bus.Subscribe(typ, func(eventbus.Event) { *n++ })
	}
	return out
}

func TestSession_MoveViaInput(t *testing.T) {
	s := createTestSession(t)
	moves := countEvents(s.Bus, domain.EventPlayerMove)

	s.Update(0.2, input.StaticSource{input.KeyDown: true})

	if s.Player.Pos.X != 1 || s.Player.Pos.Y != 2 {
		t.Errorf("pos = (%d,%d), want (1,2)", s.Player.Pos.X, s.Player.Pos.Y)
	}
	if s.Player.Facing != domain.DirectionSouth {
		t.Errorf("facing = %s, want south", s.Player.Facing)
	}
	if *moves[domain.EventPlayerMove] != 1 {
		t.Errorf("player_move emitted %d times, want 1", *moves[domain.EventPlayerMove])
	}
}

func TestSession_MoveCooldownThrottles(t *testing.T) {
	s := createTestSession(t)

	// Два кадра по 0.05с при кулдауне 0.15с: второй шаг не принимается
	held := input.StaticSource{input.KeyDown: true}
	s.Update(0.05, held)
	s.Update(0.05, held)

	if s.Player.Pos.Y != 2 {
		t.Errorf("pos.Y = %d, want 2 (one step only)", s.Player.Pos.Y)
	}

	// После истечения кулдауна шаг проходит
	s.Update(0.2, held)
	if s.Player.Pos.Y != 3 {
		t.Errorf("pos.Y = %d, want 3 after cooldown", s.Player.Pos.Y)
	}
}

func TestSession_MoveBlockedStillTurns(t *testing.T) {
	s := createTestSession(t)
	s.Active.Grid.SetTileAt(2, 1, domain.NewTile(2, 1, domain.TileWater))
	moves := countEvents(s.Bus, domain.EventPlayerMove)

	s.Update(0.2, input.StaticSource{input.KeyRight: true})

	if s.Player.Pos.X != 1 {
		t.Error("blocked move changed position")
	}
	if s.Player.Facing != domain.DirectionEast {
		t.Error("failed move must still turn the player east")
	}
	if *moves[domain.EventPlayerMove] != 0 {
		t.Error("failed move must not emit player_move")
	}
}

func TestSession_InteractWithNPC(t *testing.T) {
	s := createTestSession(t)

	npc := domain.NewEntity("n1", domain.EntityTypeNPC, "Guard", domain.Position{X: 2, Y: 1})
	npc.Interactable = true
	npc.NPC = &domain.NPCComponent{
		Behavior: domain.NPCBehaviorStatic,
		Dialog:   &domain.DialogSpec{Content: "Стой!", Speaker: "Guard"},
	}
	s.Active.AddEntity(npc)

	counts := countEvents(s.Bus, domain.EventPlayerInteract, domain.EventDialogStart, domain.EventDialogEnd)

	s.Player.Facing = domain.DirectionEast
	s.Update(0.05, input.StaticSource{input.KeyInteract: true})

	if *counts[domain.EventPlayerInteract] != 1 {
		t.Errorf("player_interact emitted %d times, want 1", *counts[domain.EventPlayerInteract])
	}
	if *counts[domain.EventDialogStart] != 1 {
		t.Fatalf("dialog_start emitted %d times, want 1", *counts[domain.EventDialogStart])
	}
	if !s.Dialog.IsActive() {
		t.Fatal("dialog must be open")
	}

	// Повторное нажатие закрывает диалог и НЕ запускает новое взаимодействие
	s.Update(0.05, input.StaticSource{})
	s.Update(0.05, input.StaticSource{input.KeyInteract: true})

	if s.Dialog.IsActive() {
		t.Error("dialog must close on interact press")
	}
	if *counts[domain.EventDialogEnd] != 1 {
		t.Errorf("dialog_end emitted %d times, want 1", *counts[domain.EventDialogEnd])
	}
	if *counts[domain.EventPlayerInteract] != 1 {
		t.Error("dismissal press must not re-interact")
	}
}

func TestSession_InteractNobodyAccepts(t *testing.T) {
	s := createTestSession(t)

	// Интерактивная сущность без диалога, подбора и правил:
	// взаимодействие не состоялось, событий нет
	crate := domain.NewEntity("c1", domain.EntityTypeFurniture, "Crate", domain.Position{X: 2, Y: 1})
	crate.Interactable = true
	s.Active.AddEntity(crate)

	counts := countEvents(s.Bus, domain.EventPlayerInteract)

	s.Player.Facing = domain.DirectionEast
	res, err := s.Execute("INTERACT", nil)
	if err != nil {
		t.Fatalf("INTERACT: %v", err)
	}
	if res.Handled {
		t.Error("unaccepted interaction must report unhandled")
	}
	if *counts[domain.EventPlayerInteract] != 0 {
		t.Errorf("player_interact emitted %d times, want 0", *counts[domain.EventPlayerInteract])
	}
}

func TestSession_InteractionRuleKeyGate(t *testing.T) {
	zone := domain.NewZone("a", "Zone A", 5, 5, 32, domain.TileGrass)
	rules := []*domain.Interaction{
		{ID: "push", RequiredTags: domain.NewTagSet("furniture"), EventType: "crate_pushed", Key: "x"},
		{ID: "inspect", RequiredTags: domain.NewTagSet("furniture"), EventType: "crate_inspected", Key: "interact"},
	}

	s, err := NewSession(map[string]*domain.Zone{"a": zone}, rules, "a", 3, 0)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := s.SpawnPlayer("Hero", domain.Position{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}

	crate := domain.NewEntity("c1", domain.EntityTypeFurniture, "Crate", domain.Position{X: 2, Y: 1})
	crate.Interactable = true
	crate.AddTag("furniture")
	s.Active.AddEntity(crate)

	var order []string
	for _, typ := range []string{domain.EventPlayerInteract, "crate_pushed", "crate_inspected"} {
		typ := typ
		s.Bus.Subscribe(typ, func(eventbus.Event) { order = append(order, typ) })
	}

	s.Player.Facing = domain.DirectionEast
	res, err := s.Execute("INTERACT", nil)
	if err != nil {
		t.Fatalf("INTERACT: %v", err)
	}
	if !res.Handled {
		t.Fatal("rule bound to the interact key must fire")
	}

	// Правило с чужой клавишей молчит; player_interact предшествует
	// событию правила
	want := []string{domain.EventPlayerInteract, "crate_inspected"}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Errorf("events = %v, want %v", order, want)
	}
}

func TestSession_ItemPickup(t *testing.T) {
	s := createTestSession(t)

	item := domain.NewEntity("i1", domain.EntityTypeItem, "Potion", domain.Position{X: 2, Y: 1})
	item.Interactable = true
	item.Item = &domain.ItemComponent{Pickupable: true, Quantity: 1}
	s.Active.AddEntity(item)

	counts := countEvents(s.Bus, domain.EventItemPickup)

	s.Player.Facing = domain.DirectionEast
	s.Update(0.05, input.StaticSource{input.KeyInteract: true})

	if len(s.Player.Player.Inventory) != 1 {
		t.Fatalf("inventory len = %d, want 1", len(s.Player.Player.Inventory))
	}
	if s.Active.GetEntity("i1") != nil {
		t.Error("picked item must leave the zone")
	}
	if *counts[domain.EventItemPickup] != 1 {
		t.Errorf("item_pickup emitted %d times, want 1", *counts[domain.EventItemPickup])
	}
}

func TestSession_TeleporterZoneChange(t *testing.T) {
	s := createTestSession(t)
	counts := countEvents(s.Bus, domain.EventZoneChange)

	// Игрок в (1,1), телепортер в (3,1): два шага на восток
	held := input.StaticSource{input.KeyRight: true}
	s.Update(0.2, held)
	s.Update(0.2, held)

	if s.Active.ID != "b" {
		t.Fatalf("active zone = %s, want b", s.Active.ID)
	}
	if s.Player.Pos.X != 1 || s.Player.Pos.Y != 1 {
		t.Errorf("pos = (%d,%d), want (1,1)", s.Player.Pos.X, s.Player.Pos.Y)
	}
	if s.Zones["a"].GetEntity(s.Player.ID) != nil {
		t.Error("player must leave the source zone")
	}
	if s.Zones["b"].GetEntity(s.Player.ID) == nil {
		t.Error("player must be in the target zone")
	}
	if *counts[domain.EventZoneChange] != 1 {
		t.Errorf("zone_change emitted %d times, want 1", *counts[domain.EventZoneChange])
	}
}

func TestSession_ZoneChangePreservesInventory(t *testing.T) {
	s := createTestSession(t)

	potion := domain.NewEntity("i1", domain.EntityTypeItem, "Potion", domain.Position{})
	potion.Item = &domain.ItemComponent{Pickupable: true, Quantity: 1}
	s.Player.Player.AddToInventory(potion)
	s.Player.Player.Health = 42

	if err := s.RequestZoneChange(domain.ZoneChangeRequest{TargetZone: "b", TargetX: 2, TargetY: 2}); err != nil {
		t.Fatal(err)
	}
	s.Update(0.05, nil)

	if s.Active.ID != "b" {
		t.Fatal("zone change not applied")
	}
	if len(s.Player.Player.Inventory) != 1 || s.Player.Player.Health != 42 {
		t.Error("inventory and health must survive the zone change")
	}
}

func TestSession_ReentrantZoneChangeRejected(t *testing.T) {
	s := createTestSession(t)

	if err := s.RequestZoneChange(domain.ZoneChangeRequest{TargetZone: "b", TargetX: 1, TargetY: 1}); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := s.RequestZoneChange(domain.ZoneChangeRequest{TargetZone: "a", TargetX: 0, TargetY: 0}); err == nil {
		t.Fatal("second request in the same frame must be rejected")
	}

	s.Update(0.05, nil)
	if s.Active.ID != "b" {
		t.Error("first request must win")
	}

	// После исполнения снова можно просить
	if err := s.RequestZoneChange(domain.ZoneChangeRequest{TargetZone: "a", TargetX: 1, TargetY: 1}); err != nil {
		t.Errorf("request after apply rejected: %v", err)
	}
}

func TestSession_ZoneChangeToUnknownZone(t *testing.T) {
	s := createTestSession(t)

	if err := s.RequestZoneChange(domain.ZoneChangeRequest{TargetZone: "void", TargetX: 1, TargetY: 1}); err != nil {
		t.Fatal(err)
	}
	s.Update(0.05, nil)

	// Ошибка данных: игрок остается на месте
	if s.Active.ID != "a" {
		t.Errorf("active zone = %s, want a", s.Active.ID)
	}
	if s.Active.GetEntity(s.Player.ID) == nil {
		t.Error("player must stay in the source zone")
	}
}

func TestSession_UseHealItem(t *testing.T) {
	s := createTestSession(t)
	s.Player.Player.Health = 40

	potion := domain.NewEntity("i1", domain.EntityTypeItem, "Potion", domain.Position{})
	potion.Item = &domain.ItemComponent{
		Pickupable: true,
		Quantity:   1,
		UseEffect:  &domain.UseEffect{Type: domain.UseEffectHeal, Value: 25},
	}
	s.Player.Player.AddToInventory(potion)

	payload, _ := json.Marshal(api.ItemPayload{ItemID: "i1"})
	res, err := s.Execute("USE", payload)
	if err != nil {
		t.Fatalf("USE: %v", err)
	}
	if !res.Handled {
		t.Error("use must be handled")
	}
	if s.Player.Player.Health != 65 {
		t.Errorf("health = %d, want 65", s.Player.Player.Health)
	}
	if len(s.Player.Player.Inventory) != 0 {
		t.Error("consumed item must leave the inventory")
	}
}

func TestSession_UseCustomEffectReemitted(t *testing.T) {
	s := createTestSession(t)

	gem := domain.NewEntity("g1", domain.EntityTypeItem, "Gem", domain.Position{})
	gem.Item = &domain.ItemComponent{
		Pickupable: true,
		Quantity:   1,
		UseEffect:  &domain.UseEffect{Type: "gem_glow", Properties: map[string]any{"intensity": 3}},
	}
	s.Player.Player.AddToInventory(gem)

	var got map[string]any
	s.Bus.Subscribe("gem_glow", func(ev eventbus.Event) { got = ev.Data })

	payload, _ := json.Marshal(api.ItemPayload{ItemID: "g1"})
	if _, err := s.Execute("USE", payload); err != nil {
		t.Fatalf("USE: %v", err)
	}

	if got == nil {
		t.Fatal("custom effect must be re-emitted as an event")
	}
	if got["intensity"] != 3 {
		t.Errorf("intensity = %v, want 3", got["intensity"])
	}
	if got["item"] != "g1" {
		t.Errorf("item = %v, want g1", got["item"])
	}
}

func TestSession_UnknownAction(t *testing.T) {
	s := createTestSession(t)
	if _, err := s.Execute("FLY", nil); err == nil {
		t.Error("unknown action must error")
	}
}

func TestSession_InvalidPayloadRejected(t *testing.T) {
	s := createTestSession(t)

	payload, _ := json.Marshal(api.DirectionPayload{Direction: "upwards"})
	if _, err := s.Execute("MOVE", payload); err == nil {
		t.Error("invalid direction must fail validation")
	}
	if s.Player.Pos.X != 1 || s.Player.Pos.Y != 1 {
		t.Error("rejected command must not move the player")
	}
}

func TestSession_NPCScheduling(t *testing.T) {
	s := createTestSession(t)

	npc := domain.NewEntity("n1", domain.EntityTypeNPC, "Walker", domain.Position{X: 3, Y: 3})
	npc.NPC = &domain.NPCComponent{
		Behavior:    domain.NPCBehaviorPatrol,
		PatrolRoute: []domain.Direction{domain.DirectionEast, domain.DirectionWest},
		Interval:    1.0,
	}
	s.Active.AddEntity(npc)
	s.rescheduleNPCs()

	// До наступления срока NPC стоит
	s.Update(0.5, nil)
	if npc.Pos.X != 3 {
		t.Error("npc moved before its due time")
	}

	// Срок настал (clock ~1.5 > due 1.0): первый шаг маршрута
	s.Update(1.0, nil)
	if npc.Pos.X != 4 {
		t.Errorf("npc pos.X = %d, want 4", npc.Pos.X)
	}

	// Следующий шаг через интервал: обратно на запад
	s.Update(1.1, nil)
	if npc.Pos.X != 3 {
		t.Errorf("npc pos.X = %d, want 3 (patrol back)", npc.Pos.X)
	}
}

func TestSession_SnapshotContents(t *testing.T) {
	s := createTestSession(t)
	s.Update(0.2, input.StaticSource{input.KeyRight: true})

	snap := s.BuildSnapshot("UPDATE")

	if snap.Zone == nil || snap.Zone.ID != "a" {
		t.Fatal("snapshot must carry zone meta")
	}
	if len(snap.Tiles) != 25 {
		t.Errorf("tiles = %d, want 25", len(snap.Tiles))
	}
	if snap.PlayerID != s.Player.ID {
		t.Error("snapshot must carry the player id")
	}

	var found bool
	for _, ev := range snap.Entities {
		if ev.ID == s.Player.ID {
			found = true
			if ev.X != 2 || ev.Facing != "east" {
				t.Errorf("player view = %+v", ev)
			}
		}
	}
	if !found {
		t.Error("player missing from snapshot entities")
	}
}
