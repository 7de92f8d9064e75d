package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AdultAge is the minimum beneficiary age for court access.
const AdultAge = 18

var (
	ErrMissingBirthDate = errors.New("birth date is not set")
	ErrUnderage         = errors.New("user is under the minimum age")
	ErrNotActive        = errors.New("user is not active")
)

// AgeOn returns full years between birth and on, subtracting one year when
// on's (month, day) falls before birth's.
func AgeOn(birth, on time.Time) int {
	years := on.Year() - birth.Year()
	if on.Month() < birth.Month() ||
		(on.Month() == birth.Month() && on.Day() < birth.Day()) {
		years--
	}
	return years
}

// CheckAdult is the age gate shared by reservation admission and signup
// approval. A missing birth date is a hard failure, never "assume adult".
func CheckAdult(u *User, on time.Time) error {
	if u.BirthDate == nil {
		return ErrMissingBirthDate
	}
	if AgeOn(*u.BirthDate, on) < AdultAge {
		return ErrUnderage
	}
	return nil
}

// CheckBeneficiary validates that u may be the beneficiary of a
// reservation: ACTIVE status first, then the age gate.
func CheckBeneficiary(u *User, on time.Time) error {
	if u.Status != UserActive {
		return ErrNotActive
	}
	return CheckAdult(u, on)
}

// IsAdminLike reports whether the role bypasses tower scoping.
func IsAdminLike(r Role) bool {
	return r == RoleGeneralManager || r == RoleSuperuser
}

// IsTowerScoped reports whether the role is confined to its own tower.
func IsTowerScoped(r Role) bool {
	return r == RoleDoorman || r == RoleSubManager
}

// TowerScopeAllowed is the single authorization predicate reused by
// reservations on behalf of others, approval decisions, profile-change
// decisions and role assignment. A scoped actor with no tower is denied
// outright.
func TowerScopeAllowed(actor *User, targetTower *uuid.UUID) bool {
	if IsAdminLike(actor.Role) {
		return true
	}
	if actor.TowerID == nil || targetTower == nil {
		return false
	}
	return *actor.TowerID == *targetTower
}

// CanDecideApprovals lists the roles allowed to decide signup and
// profile-change requests, still subject to TowerScopeAllowed.
func CanDecideApprovals(r Role) bool {
	switch r {
	case RoleDoorman, RoleSubManager, RoleGeneralManager, RoleSuperuser:
		return true
	}
	return false
}
