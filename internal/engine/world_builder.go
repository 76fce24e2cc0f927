package engine

import (
	"github.com/aquilax/go-perlin"

	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

// Параметры шума генератора луга
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinIter  = 3
	perlinScale = 0.15

	forestThreshold = 0.25
	waterThreshold  = -0.35
)

// DefaultZoneID - зона, в которой появляется игрок сгенерированного мира
const DefaultZoneID = "meadow"

// DefaultSpawn - стартовая клетка игрока
var DefaultSpawn = domain.Position{X: 2, Y: 2}

// BuildDefaultWorld создает встроенный мир: луг с шумовой растительностью
// и пещеру, связанные двунаправленной парой телепортеров. Используется,
// когда каталог данных пуст или не задан.
func BuildDefaultWorld(seed int64) (map[string]*domain.Zone, []*domain.Interaction) {
	zones := map[string]*domain.Zone{
		DefaultZoneID: buildMeadow(seed),
		"cavern":      buildCavern(),
	}

	// Луг (18,7) <-> пещера (1,1)
	t := domain.NewTeleporter(DefaultZoneID, domain.Position{X: 18, Y: 7}, "cavern", domain.Position{X: 1, Y: 1})
	t.CreateLinked(zones[DefaultZoneID].Grid, zones["cavern"].Grid)

	interactions := []*domain.Interaction{
		{
			ID:           "inspect_furniture",
			Name:         "Осмотреть",
			RequiredTags: domain.NewTagSet(domain.TagFurniture),
			EventType:    "furniture_inspect",
			Key:          "interact",
		},
	}

	return zones, interactions
}

// buildMeadow генерирует луг 20x15: трава по умолчанию, лес и вода
// по двум порогам шума Перлина
func buildMeadow(seed int64) *domain.Zone {
	const w, h = 20, 15
	z := domain.NewZone(DefaultZoneID, "Луг", w, h, 32, domain.TileGrass)

	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinIter, seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := noise.Noise2D(float64(x)*perlinScale, float64(y)*perlinScale)
			switch {
			case n > forestThreshold:
				z.Grid.SetTileAt(x, y, domain.NewTile(x, y, domain.TileForest))
			case n < waterThreshold:
				z.Grid.SetTileAt(x, y, domain.NewTile(x, y, domain.TileWater))
			}
		}
	}

	// Спаун и подход к телепортеру обязаны быть проходимыми,
	// какой бы шум ни выпал
	carve(z.Grid, DefaultSpawn.X, DefaultSpawn.Y)
	carve(z.Grid, 18, 7)
	carve(z.Grid, 17, 7)

	z.LoadEntities(meadowEntities())
	return z
}

// buildCavern строит пещеру 14x10: каменный периметр, травяной пол,
// лужа воды
func buildCavern() *domain.Zone {
	const w, h = 14, 10
	z := domain.NewZone("cavern", "Пещера", w, h, 32, domain.TileGrass)

	for x := 0; x < w; x++ {
		z.Grid.SetTileAt(x, 0, domain.NewTile(x, 0, domain.TileRock))
		z.Grid.SetTileAt(x, h-1, domain.NewTile(x, h-1, domain.TileRock))
	}
	for y := 0; y < h; y++ {
		z.Grid.SetTileAt(0, y, domain.NewTile(0, y, domain.TileRock))
		z.Grid.SetTileAt(w-1, y, domain.NewTile(w-1, y, domain.TileRock))
	}
	for _, p := range []domain.Position{{X: 8, Y: 5}, {X: 9, Y: 5}, {X: 9, Y: 6}} {
		z.Grid.SetTileAt(p.X, p.Y, domain.NewTile(p.X, p.Y, domain.TileWater))
	}

	carve(z.Grid, 1, 1)

	z.LoadEntities(cavernEntities())
	return z
}

// carve принудительно делает клетку травой (проходимой)
func carve(g *domain.Grid, x, y int) {
	tile := g.TileAt(x, y)
	if tile != nil && tile.Type != domain.TileGrass {
		g.SetTileAt(x, y, domain.NewTile(x, y, domain.TileGrass))
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func meadowEntities() []domain.EntityDescriptor {
	return []domain.EntityDescriptor{
		{
			ID: "npc_warden", Type: "npc", Name: "Страж луга",
			X: intPtr(6), Y: intPtr(4),
			Color:    "#c0392b",
			Behavior: "patrol",
			// Замкнутый обход: восток-восток-юг-запад-запад-север
			PatrolRoute: []string{"east", "east", "south", "west", "west", "north"},
			Interval:    1.5,
			Dialog:      &domain.DialogSpec{Content: "К востоку отсюда есть вход в пещеру.", Speaker: "Страж луга"},
		},
		{
			ID: "npc_wanderer", Type: "npc", Name: "Бродяга",
			X: intPtr(12), Y: intPtr(10),
			Color:    "#8e44ad",
			Behavior: "random",
			Interval: 2.5,
			Dialog:   &domain.DialogSpec{Content: "Я хожу где вздумается."},
		},
		{
			ID: "item_potion", Type: "item", Name: "Зелье здоровья",
			X: intPtr(4), Y: intPtr(8),
			Color:        "#e74c3c",
			DefinitionID: "health_potion",
			Stackable:    true,
			Quantity:     2,
			UseEffect:    &domain.UseEffect{Type: domain.UseEffectHeal, Value: 25},
		},
		{
			ID: "furn_sign", Type: "furniture", Name: "Указатель",
			X: intPtr(3), Y: intPtr(2),
			Color:        "#a0522d",
			Interactable: boolPtr(true),
			// Текст читается только с южной стороны
			InteractDirs: []string{"south"},
		},
	}
}

func cavernEntities() []domain.EntityDescriptor {
	return []domain.EntityDescriptor{
		{
			ID: "item_gem", Type: "item", Name: "Мерцающий камень",
			X: intPtr(6), Y: intPtr(3),
			Color:        "#16a085",
			DefinitionID: "glow_gem",
			// Неизвестный тип эффекта переизлучается как событие gem_glow
			UseEffect: &domain.UseEffect{
				Type:       "gem_glow",
				Properties: map[string]any{"intensity": 3},
			},
		},
		{
			ID: "npc_hermit", Type: "npc", Name: "Отшельник",
			X: intPtr(11), Y: intPtr(7),
			Color:    "#7f8c8d",
			Behavior: "static",
			Dialog:   &domain.DialogSpec{Content: "Камень у стены светится, если его потереть.", Speaker: "Отшельник"},
		},
	}
}
