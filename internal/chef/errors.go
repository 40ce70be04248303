package chef

import "errors"

var (
	// ErrNoIngredients is returned by New when the list has no usable word, number or special.
	ErrNoIngredients = errors.New("no usable ingredients: need at least one word, number or special token")

	// ErrEmptyBuffer is returned by BakePassword when a refill produced no memorable combo.
	ErrEmptyBuffer = errors.New("combo buffer empty after refill")
)
