package approval

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrAlreadyDecided = errors.New("request already decided")
)
