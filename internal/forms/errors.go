package forms

import "errors"

// Sentinel errors for lookups on the page model. Invalid user input is never
// an error; it only changes a field's presentation.
var (
	ErrUnknownForm  = errors.New("unknown form")
	ErrUnknownField = errors.New("unknown field")
)
