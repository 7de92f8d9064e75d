package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAgeOn(t *testing.T) {
	birth := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 26, AgeOn(birth, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 26, AgeOn(birth, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))
	// day before the birthday still counts the previous year
	assert.Equal(t, 24, AgeOn(birth, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeOn(birth, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)))
}

func TestCheckAdult_TurnsEighteenToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	birth := time.Date(2008, 3, 10, 0, 0, 0, 0, time.UTC)
	u := &User{BirthDate: &birth}

	assert.NoError(t, CheckAdult(u, now))

	// one day short
	birthTomorrow := time.Date(2008, 3, 11, 0, 0, 0, 0, time.UTC)
	u.BirthDate = &birthTomorrow
	assert.ErrorIs(t, CheckAdult(u, now), ErrUnderage)
}

func TestCheckAdult_MissingBirthDate(t *testing.T) {
	u := &User{}
	assert.ErrorIs(t, CheckAdult(u, time.Now()), ErrMissingBirthDate)
}

func TestCheckBeneficiary_StatusBeforeAge(t *testing.T) {
	// blocked AND missing birth date: the status error wins
	u := &User{Status: UserBlocked}
	assert.ErrorIs(t, CheckBeneficiary(u, time.Now()), ErrNotActive)

	u.Status = UserActive
	assert.ErrorIs(t, CheckBeneficiary(u, time.Now()), ErrMissingBirthDate)

	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	u.BirthDate = &birth
	assert.NoError(t, CheckBeneficiary(u, time.Now()))
}

func TestTowerScopeAllowed(t *testing.T) {
	towerA := uuid.New()
	towerB := uuid.New()

	gm := &User{Role: RoleGeneralManager}
	assert.True(t, TowerScopeAllowed(gm, &towerA))
	assert.True(t, TowerScopeAllowed(gm, nil))

	doorman := &User{Role: RoleDoorman, TowerID: &towerA}
	assert.True(t, TowerScopeAllowed(doorman, &towerA))
	assert.False(t, TowerScopeAllowed(doorman, &towerB))
	assert.False(t, TowerScopeAllowed(doorman, nil))

	// scoped actor without a tower binding is denied everywhere
	unbound := &User{Role: RoleSubManager}
	assert.False(t, TowerScopeAllowed(unbound, &towerA))
}

func TestRolePredicates(t *testing.T) {
	assert.True(t, IsAdminLike(RoleSuperuser))
	assert.True(t, IsAdminLike(RoleGeneralManager))
	assert.False(t, IsAdminLike(RoleSubManager))

	assert.True(t, IsTowerScoped(RoleDoorman))
	assert.True(t, IsTowerScoped(RoleSubManager))
	assert.False(t, IsTowerScoped(RoleResident))

	assert.True(t, CanDecideApprovals(RoleDoorman))
	assert.False(t, CanDecideApprovals(RoleResident))
}

func TestReservationOverlaps_HalfOpen(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	r := &Reservation{StartTime: start, EndTime: start.Add(time.Hour)}

	// back-to-back slots touch but do not conflict
	assert.False(t, r.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.False(t, r.Overlaps(start.Add(-time.Hour), start))

	assert.True(t, r.Overlaps(start.Add(30*time.Minute), start.Add(90*time.Minute)))
	assert.True(t, r.Overlaps(start.Add(-30*time.Minute), start.Add(30*time.Minute)))
}
