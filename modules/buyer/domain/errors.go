package domain

import "errors"

// Domain errors - rejected buyer mutations.
var (
	ErrUnknownField = errors.New("unknown buyer field")
)
