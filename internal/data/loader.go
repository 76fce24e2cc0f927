package data

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

// Loader читает и кэширует конфигурационные документы из каталога данных:
//
//	<dir>/tiles/*.json        - data-defined типы тайлов
//	<dir>/entities/*.json     - переиспользуемые определения сущностей
//	<dir>/zones/*.json        - зоны
//	<dir>/interactions/*.json - правила взаимодействий
//
// Политика ошибок: один битый файл логируется и пропускается,
// загрузка остальных продолжается. Ничего фатального.
type Loader struct {
	dir string

	tiles        map[string]TileDocument
	entities     map[string]EntityDocument
	zones        map[string]ZoneDocument
	interactions map[string]InteractionDocument
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:          dir,
		tiles:        make(map[string]TileDocument),
		entities:     make(map[string]EntityDocument),
		zones:        make(map[string]ZoneDocument),
		interactions: make(map[string]InteractionDocument),
	}
}

// LoadAll прочитывает все документы. Возвращает число успешно
// загруженных (для стартового лога).
func (l *Loader) LoadAll() int {
	count := 0
	count += loadDir(filepath.Join(l.dir, "tiles"), l.tiles, func(d TileDocument) string { return d.ID })
	count += loadDir(filepath.Join(l.dir, "entities"), l.entities, func(d EntityDocument) string { return d.ID })
	count += loadDir(filepath.Join(l.dir, "zones"), l.zones, func(d ZoneDocument) string { return d.ID })
	count += loadDir(filepath.Join(l.dir, "interactions"), l.interactions, func(d InteractionDocument) string { return d.ID })
	return count
}

// validatedDoc объединяет контракт всех документов
type validatedDoc interface {
	Validate() error
}

// loadDir загружает все *.json каталога в кэш по id.
// Отсутствующий каталог — не ошибка (данные опциональны).
func loadDir[T validatedDoc](dir string, cache map[string]T, idOf func(T) string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.WithField("dir", dir).WithError(err).Warn("Cannot read data directory")
		}
		return 0
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Log.WithField("file", path).WithError(err).Warn("Cannot read document")
			continue
		}

		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			logger.Log.WithField("file", path).WithError(err).Warn("Malformed JSON document, skipping")
			continue
		}
		if err := doc.Validate(); err != nil {
			logger.Log.WithField("file", path).WithError(err).Warn("Invalid document, skipping")
			continue
		}

		id := idOf(doc)
		if _, dup := cache[id]; dup {
			logger.Log.WithField("file", path).WithField("id", id).Warn("Duplicate document id, keeping the first")
			continue
		}
		cache[id] = doc
		loaded++
	}
	return loaded
}

// Zone возвращает документ зоны; промах — warn + absent
func (l *Loader) Zone(id string) (ZoneDocument, bool) {
	doc, ok := l.zones[id]
	if !ok {
		logger.Log.WithField("zone", id).Warn("Unknown zone id requested")
	}
	return doc, ok
}

// ZoneIDs возвращает отсортированные id загруженных зон
func (l *Loader) ZoneIDs() []string {
	ids := make([]string, 0, len(l.zones))
	for id := range l.zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasZones - есть ли хоть одна зона в данных
func (l *Loader) HasZones() bool { return len(l.zones) > 0 }

// Entity возвращает переиспользуемое определение сущности
func (l *Loader) Entity(id string) (EntityDocument, bool) {
	doc, ok := l.entities[id]
	if !ok {
		logger.Log.WithField("entity", id).Warn("Unknown entity id requested")
	}
	return doc, ok
}

// Interactions строит все загруженные правила (детерминированный порядок)
func (l *Loader) Interactions() []*domain.Interaction {
	ids := make([]string, 0, len(l.interactions))
	for id := range l.interactions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*domain.Interaction, 0, len(ids))
	for _, id := range ids {
		doc := l.interactions[id]
		out = append(out, doc.Build())
	}
	return out
}

// resolveTileOverride дополняет override тегами/цветом из data-defined
// определения типа, если сам override их не задал
func (l *Loader) resolveTileOverride(ov domain.TileOverride) domain.TileOverride {
	def, ok := l.tiles[string(ov.Type)]
	if !ok {
		return ov
	}
	if len(ov.Tags) == 0 {
		ov.Tags = def.Tags
	}
	if ov.Color == "" {
		ov.Color = def.Color
	}
	if len(def.Properties) > 0 {
		merged := make(map[string]any, len(def.Properties)+len(ov.Properties))
		for k, v := range def.Properties {
			merged[k] = v
		}
		for k, v := range ov.Properties {
			merged[k] = v
		}
		ov.Properties = merged
	}
	return ov
}

// BuildZones собирает все зоны из документов, затем прокладывает
// телепортеры (связанные пары — после того, как обе сетки существуют).
func (l *Loader) BuildZones() map[string]*domain.Zone {
	zones := make(map[string]*domain.Zone, len(l.zones))

	for _, id := range l.ZoneIDs() {
		doc := l.zones[id]

		zone := domain.NewZone(doc.ID, doc.Name, doc.Width, doc.Height, doc.TileSize, doc.DefaultTile)

		gridData := doc.GridData
		gridData.Tiles = make([]domain.TileOverride, 0, len(doc.GridData.Tiles))
		for _, ov := range doc.GridData.Tiles {
			gridData.Tiles = append(gridData.Tiles, l.resolveTileOverride(ov))
		}
		zone.Grid.LoadFromData(gridData)

		zone.LoadEntities(doc.Entities)
		zones[doc.ID] = zone
	}

	// Телепортеры вторым проходом: цели должны существовать
	for _, id := range l.ZoneIDs() {
		doc := l.zones[id]
		src := zones[doc.ID]

		for _, td := range doc.Teleporters {
			t := domain.NewTeleporter(doc.ID, domain.Position{X: td.X, Y: td.Y},
				td.TargetZone, domain.Position{X: td.TargetX, Y: td.TargetY})
			if td.Active != nil {
				t.Active = *td.Active
			}
			t.Properties = td.Properties

			dst, ok := zones[td.TargetZone]
			if !ok {
				logger.Log.WithField("zone", doc.ID).WithField("target", td.TargetZone).
					Warn("Teleporter target zone does not exist, placing one-way anyway")
			}

			if td.Two && ok {
				t.CreateLinked(src.Grid, dst.Grid)
			} else {
				t.Place(src.Grid)
			}
		}
	}

	return zones
}
