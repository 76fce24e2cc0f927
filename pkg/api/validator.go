package api

import (
	"encoding/json"
	"errors"
)

// Validator - интерфейс, который могут реализовать DTO.
// Обертка хендлера вызывает Validate автоматически после распаковки.
type Validator interface {
	Validate() error
}

var validDirections = map[string]bool{
	"north": true,
	"east":  true,
	"south": true,
	"west":  true,
}

func (p DirectionPayload) Validate() error {
	if p.Direction == "" {
		return errors.New("direction is required")
	}
	if !validDirections[p.Direction] {
		return errors.New("unknown direction: " + p.Direction)
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}

func (p KeysPayload) Validate() error {
	// Неизвестные клавиши не ошибка: фасад ввода их просто не опросит
	return nil
}

// DecodePayload распаковывает JSON в DTO и прогоняет валидацию,
// если DTO её реализует
func DecodePayload(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}
	if v, ok := dst.(Validator); ok {
		return v.Validate()
	}
	return nil
}
