package profile

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	Phone      *string    `json:"phone" validate:"omitempty,max=32"`
	TowerID    *uuid.UUID `json:"tower_id"`
	UnitNumber *string    `json:"unit_number" validate:"omitempty,max=16"`
	BirthDate  *time.Time `json:"birth_date"`
}

type ChangeRequestInput struct {
	UserID        *uuid.UUID `json:"user_id"`
	Field         string     `json:"field" binding:"required" validate:"required,max=32"`
	NewValue      string     `json:"new_value" binding:"required" validate:"required,max=255"`
	Justification string     `json:"justification" validate:"max=500"`
}

type DecisionRequest struct {
	Justification string `json:"justification"`
}
