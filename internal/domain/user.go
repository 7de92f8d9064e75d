package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleResident       Role = "resident"
	RoleDoorman        Role = "doorman"
	RoleSubManager     Role = "sub_manager"
	RoleGeneralManager Role = "general_manager"
	RoleSuperuser      Role = "superuser"
)

type UserStatus string

const (
	UserPending UserStatus = "pending"
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// User lives on two independent axes: role and status. A user can hold an
// escalated role while still pending, and approval never touches the role.
type User struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone,omitempty"`
	UnitNumber string     `json:"unit_number,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Status     UserStatus `json:"status"`
	Role       Role       `json:"role"`
	TowerID    *uuid.UUID `json:"tower_id,omitempty"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
}
