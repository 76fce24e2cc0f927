package domain

import (
	"encoding/json"
	"sort"
)

// Стандартные теги. Теги — это "утиные" способности:
// проходимость, блокировка, пригодность для взаимодействия.
const (
	TagPassable   = "passable"
	TagBlocking   = "blocking"
	TagNatural    = "natural"
	TagTeleporter = "teleporter"
	TagCharacter  = "character"
	TagPlayer     = "player"
	TagNPC        = "npc"
	TagItem       = "item"
	TagFurniture  = "furniture"
)

// TagSet - множество строковых тегов.
// Add/Remove идемпотентны: повторное добавление и удаление
// отсутствующего тега — no-op.
type TagSet map[string]struct{}

func NewTagSet(tags ...string) TagSet {
	ts := make(TagSet, len(tags))
	for _, t := range tags {
		ts[t] = struct{}{}
	}
	return ts
}

func (ts TagSet) Has(tag string) bool {
	_, ok := ts[tag]
	return ok
}

func (ts TagSet) Add(tag string) {
	ts[tag] = struct{}{}
}

func (ts TagSet) Remove(tag string) {
	delete(ts, tag)
}

// HasAll проверяет, что ts является надмножеством required.
// Пустое required всегда истинно.
func (ts TagSet) HasAll(required TagSet) bool {
	for tag := range required {
		if !ts.Has(tag) {
			return false
		}
	}
	return true
}

// Clone возвращает независимую копию множества
func (ts TagSet) Clone() TagSet {
	out := make(TagSet, len(ts))
	for tag := range ts {
		out[tag] = struct{}{}
	}
	return out
}

// List возвращает теги отсортированным слайсом (детерминизм для логов и тестов)
func (ts TagSet) List() []string {
	out := make([]string, 0, len(ts))
	for tag := range ts {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON сериализует множество как отсортированный массив строк
func (ts TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.List())
}

// UnmarshalJSON принимает массив строк
func (ts *TagSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*ts = NewTagSet(list...)
	return nil
}
