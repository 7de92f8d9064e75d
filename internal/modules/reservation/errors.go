package reservation

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not_found")
	ErrQuotaExceeded = errors.New("daily quota exceeded")
	ErrSlotConflict  = errors.New("time slot already reserved")
	ErrBlackout      = errors.New("slot blocked by blackout window")
)
