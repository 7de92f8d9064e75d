package profile

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrUnknownField   = errors.New("field is not changeable by request")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrAlreadyDecided = errors.New("request already decided")
)
