package pokedex

import "errors"

// ErrInvalidName is returned when a lookup name normalizes to the empty
// string and nothing can be fetched or cached for it.
var ErrInvalidName = errors.New("pokedex: invalid pokemon name")
