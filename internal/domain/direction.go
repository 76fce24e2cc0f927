package domain

import "strings"

// Direction - направление на сетке (4 стороны света, без диагоналей)
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionNorth
	DirectionEast
	DirectionSouth
	DirectionWest
)

// AllDirections - фиксированный порядок обхода (используется вводом и NPC)
var AllDirections = [4]Direction{DirectionNorth, DirectionEast, DirectionSouth, DirectionWest}

// Маппинг для конвертации JSON -> Domain
var directionStringToDir = map[string]Direction{
	"north": DirectionNorth,
	"east":  DirectionEast,
	"south": DirectionSouth,
	"west":  DirectionWest,
}

// Маппинг для логов Domain -> String
var directionDirToString = map[Direction]string{
	DirectionNorth: "north",
	DirectionEast:  "east",
	DirectionSouth: "south",
	DirectionWest:  "west",
}

// ParseDirection конвертирует строку из JSON в Direction
func ParseDirection(s string) Direction {
	// Нечувствительно к регистру для надежности
	lower := strings.ToLower(s)
	if val, ok := directionStringToDir[lower]; ok {
		return val
	}
	return DirectionNone
}

// String реализует интерфейс Stringer (для fmt.Printf и JSON)
func (d Direction) String() string {
	if val, ok := directionDirToString[d]; ok {
		return val
	}
	return "none"
}

// Delta возвращает смещение на один шаг.
// Ось Y растет вниз: north уменьшает Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirectionNorth:
		return 0, -1
	case DirectionEast:
		return 1, 0
	case DirectionSouth:
		return 0, 1
	case DirectionWest:
		return -1, 0
	}
	return 0, 0
}

// Opposite возвращает противоположное направление.
// Нужно для проверки "с какой стороны подошли" при взаимодействии.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionNorth:
		return DirectionSouth
	case DirectionEast:
		return DirectionWest
	case DirectionSouth:
		return DirectionNorth
	case DirectionWest:
		return DirectionEast
	}
	return DirectionNone
}

// MarshalJSON сериализует направление строкой ("north"), а не числом
func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON парсит строковое представление
func (d *Direction) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*d = ParseDirection(s)
	return nil
}
