package engineer

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("engineer not found")
)
