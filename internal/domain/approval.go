package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// SignupApprovalRequest gates account activation. At most one PENDING
// request per applicant; a decided request is terminal.
type SignupApprovalRequest struct {
	ID               uuid.UUID     `json:"id"`
	ApplicantUserID  uuid.UUID     `json:"applicant_user_id"`
	TowerID          uuid.UUID     `json:"tower_id"`
	UnitNumber       string        `json:"unit_number"`
	Status           RequestStatus `json:"status"`
	ApprovedByUserID *uuid.UUID    `json:"approved_by_user_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	DecidedAt        *time.Time    `json:"decided_at,omitempty"`
	Note             string        `json:"note,omitempty"`
}

// ProfileChangeRequest shares the same terminal state machine, keyed on
// (user, field): at most one PENDING request per pair.
type ProfileChangeRequest struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	CreatedByUserID uuid.UUID     `json:"created_by_user_id"`
	Field           string        `json:"field"`
	OldValue        string        `json:"old_value"`
	NewValue        string        `json:"new_value"`
	Status          RequestStatus `json:"status"`
	ApproverUserID  *uuid.UUID    `json:"approver_user_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	Justification   string        `json:"justification,omitempty"`
}
