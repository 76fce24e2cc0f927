package input

import (
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

// Key - логическая клавиша. Ядру не нужны сырые события клавиатуры,
// только булев опрос состояния.
type Key string

const (
	KeyUp       Key = "up"
	KeyDown     Key = "down"
	KeyLeft     Key = "left"
	KeyRight    Key = "right"
	KeyInteract Key = "interact"
)

// AllKeys - полный набор опрашиваемых клавиш
var AllKeys = [5]Key{KeyUp, KeyRight, KeyDown, KeyLeft, KeyInteract}

// Source - фасад ввода: единственный контракт, который требует ядро
type Source interface {
	IsKeyDown(k Key) bool
}

// Клавиши движения в порядке приоритета: первая зажатая из N/E/S/W
// побеждает, диагоналей и очередей нет.
var movementPriority = [4]struct {
	key Key
	dir domain.Direction
}{
	{KeyUp, domain.DirectionNorth},
	{KeyRight, domain.DirectionEast},
	{KeyDown, domain.DirectionSouth},
	{KeyLeft, domain.DirectionWest},
}

// State - пара снимков "предыдущий кадр / текущий кадр".
// Единственный источник истины про "только что нажато":
// дублирования событийного слушателя и опроса здесь нет намеренно.
type State struct {
	prev map[Key]bool
	cur  map[Key]bool
}

func NewState() *State {
	return &State{
		prev: make(map[Key]bool, len(AllKeys)),
		cur:  make(map[Key]bool, len(AllKeys)),
	}
}

// Capture снимает текущее состояние источника. Вызывается ровно один
// раз в начале тика.
func (s *State) Capture(src Source) {
	s.prev, s.cur = s.cur, s.prev
	for _, k := range AllKeys {
		s.cur[k] = src != nil && src.IsKeyDown(k)
	}
}

// IsDown - клавиша зажата в текущем кадре
func (s *State) IsDown(k Key) bool {
	return s.cur[k]
}

// JustPressed - клавиша нажата в этом кадре (не была зажата в прошлом)
func (s *State) JustPressed(k Key) bool {
	return s.cur[k] && !s.prev[k]
}

// MovementDirection возвращает направление первой зажатой клавиши
// движения по фиксированному приоритету
func (s *State) MovementDirection() (domain.Direction, bool) {
	for _, m := range movementPriority {
		if s.cur[m.key] {
			return m.dir, true
		}
	}
	return domain.DirectionNone, false
}

// StaticSource - готовая реализация Source поверх карты состояний
// (тесты и удаленные клиенты)
type StaticSource map[Key]bool

func (m StaticSource) IsKeyDown(k Key) bool { return m[k] }
