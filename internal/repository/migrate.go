package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Migrate builds the schema and installs the store-level admission
// backstops on PostgreSQL: an exclusion constraint over
// (court_id, [start_time, end_time)) for non-cancelled reservations, and a
// partial unique index keeping one PENDING approval per applicant. The
// in-application transaction in CreateConfirmed is the first line of
// defense; these constraints close the remaining check-then-act window.
// SQLite (dev/test) skips the PostgreSQL-only statements.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&towerModel{},
		&unitModel{},
		&userModel{},
		&courtModel{},
		&reservationModel{},
		&reservationEventModel{},
		&blackoutWindowModel{},
		&signupApprovalModel{},
		&profileChangeModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`ALTER TABLE reservations ADD CONSTRAINT no_double_booking
			EXCLUDE USING gist (
				court_id WITH =,
				tstzrange(start_time, end_time, '[)') WITH &&
			) WHERE (status <> 'cancelled')`,
		`CREATE UNIQUE INDEX IF NOT EXISTS one_pending_per_applicant
			ON signup_approval_requests (applicant_user_id)
			WHERE status = 'pending'`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			if strings.Contains(err.Error(), "already exists") {
				continue
			}
			return err
		}
	}
	return nil
}
