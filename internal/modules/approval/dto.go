package approval

import "github.com/google/uuid"

type SubmitRequest struct {
	TowerID    uuid.UUID `json:"tower_id" binding:"required"`
	UnitNumber string    `json:"unit_number" binding:"required"`
}

type DecisionRequest struct {
	Note string `json:"note"`
}
