package domain

import "github.com/google/uuid"

type Tower struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Unit struct {
	ID             uuid.UUID  `json:"id"`
	TowerID        uuid.UUID  `json:"tower_id"`
	Number         string     `json:"number"`
	ResidentUserID *uuid.UUID `json:"resident_user_id,omitempty"`
}
