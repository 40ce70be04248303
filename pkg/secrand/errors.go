package secrand

import "errors"

var (
	// ErrEmpty is returned when choosing from an empty slice.
	ErrEmpty = errors.New("secrand: cannot choose from an empty slice")

	// ErrSampleTooLarge is returned when more elements are requested than exist.
	ErrSampleTooLarge = errors.New("secrand: sample larger than population")
)
