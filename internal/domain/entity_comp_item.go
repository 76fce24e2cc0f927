package domain

// CanStackWith - два предмета совместимы для стака, только если оба
// stackable и разделяют одну идентичность определения.
// Стакирование не автоматическое: это явная операция вызывающего.
func (it *ItemComponent) CanStackWith(other *ItemComponent) bool {
	if it == nil || other == nil {
		return false
	}
	if !it.Stackable || !other.Stackable {
		return false
	}
	return it.DefinitionID != "" && it.DefinitionID == other.DefinitionID
}

// AbsorbStack переносит количество из other в данный стак.
// Проверку совместимости делает вызывающий (CanStackWith).
func (it *ItemComponent) AbsorbStack(other *ItemComponent) {
	it.Quantity += other.Quantity
	other.Quantity = 0
}
