package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"quadra/internal/database"
	"quadra/internal/domain"
	"quadra/internal/repository"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "quadra.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reservation_events")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM blackout_windows")
	db.Exec("DELETE FROM profile_change_requests")
	db.Exec("DELETE FROM signup_approval_requests")
	db.Exec("DELETE FROM courts")
	db.Exec("DELETE FROM units")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM towers")

	userRepo := repository.NewUserRepository(db)
	towerRepo := repository.NewTowerRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	// ================== TOWERS ==================
	log.Println("Creating towers...")
	towers := make([]domain.Tower, 0, 3)
	for _, name := range []string{"Torre A", "Torre B", "Torre C"} {
		t := domain.Tower{Name: name}
		if err := towerRepo.Create(ctx, &t); err != nil {
			log.Fatal(err)
		}
		towers = append(towers, t)

		for unit := 101; unit <= 104; unit++ {
			u := domain.Unit{TowerID: t.ID, Number: fmt.Sprintf("%d", unit)}
			if err := towerRepo.CreateUnit(ctx, &u); err != nil {
				log.Fatal(err)
			}
		}
	}

	// ================== COURTS ==================
	log.Println("Creating courts...")
	court := domain.Court{Name: "Quadra Poliesportiva", IsActive: true}
	if err := courtRepo.Create(ctx, &court); err != nil {
		log.Fatal(err)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	birth := func(year int) *time.Time {
		d := time.Date(year, 3, 15, 0, 0, 0, 0, time.UTC)
		return &d
	}

	superuser := domain.User{
		Email:      "root@quadra.local",
		Name:       "Root",
		Role:       domain.RoleSuperuser,
		Status:     domain.UserActive,
		BirthDate:  birth(1980),
		IsVerified: true,
	}
	if err := userRepo.Create(ctx, &superuser); err != nil {
		log.Fatal(err)
	}

	gm := domain.User{
		Email:      "gm@quadra.local",
		Name:       "General Manager",
		Role:       domain.RoleGeneralManager,
		Status:     domain.UserActive,
		BirthDate:  birth(1975),
		IsVerified: true,
	}
	if err := userRepo.Create(ctx, &gm); err != nil {
		log.Fatal(err)
	}

	subManager := domain.User{
		Email:      "sub.a@quadra.local",
		Name:       "Sub Manager A",
		Role:       domain.RoleSubManager,
		Status:     domain.UserActive,
		BirthDate:  birth(1985),
		TowerID:    &towers[0].ID,
		IsVerified: true,
	}
	if err := userRepo.Create(ctx, &subManager); err != nil {
		log.Fatal(err)
	}

	doorman := domain.User{
		Email:      "doorman.a@quadra.local",
		Name:       "Doorman A",
		Role:       domain.RoleDoorman,
		Status:     domain.UserActive,
		BirthDate:  birth(1990),
		TowerID:    &towers[0].ID,
		IsVerified: true,
	}
	if err := userRepo.Create(ctx, &doorman); err != nil {
		log.Fatal(err)
	}

	residents := make([]domain.User, 0, 4)
	for i := 0; i < 4; i++ {
		r := domain.User{
			Email:      fmt.Sprintf("resident%d@quadra.local", i+1),
			Name:       fmt.Sprintf("Resident %d", i+1),
			Role:       domain.RoleResident,
			Status:     domain.UserActive,
			BirthDate:  birth(1988 + i),
			TowerID:    &towers[i%len(towers)].ID,
			UnitNumber: fmt.Sprintf("10%d", i+1),
			IsVerified: true,
		}
		if err := userRepo.Create(ctx, &r); err != nil {
			log.Fatal(err)
		}
		residents = append(residents, r)
	}

	// One applicant still waiting for approval
	applicant := domain.User{
		Email:     "newcomer@quadra.local",
		Name:      "Newcomer",
		Role:      domain.RoleResident,
		Status:    domain.UserPending,
		BirthDate: birth(1995),
		TowerID:   &towers[1].ID,
	}
	if err := userRepo.Create(ctx, &applicant); err != nil {
		log.Fatal(err)
	}

	// ================== RESERVATIONS ==================
	log.Println("Creating reservations...")
	dayStart := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	for i, r := range residents {
		start := dayStart.Add(time.Duration(9+2*i) * time.Hour)
		res := domain.Reservation{
			CourtID:         court.ID,
			UserID:          r.ID,
			CreatedByUserID: r.ID,
			StartTime:       start,
			EndTime:         start.Add(time.Hour),
			Notes:           "seeded",
		}
		if err := reservationRepo.CreateConfirmed(ctx, &res); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed completed.")
	log.Println("Accounts: root@quadra.local, gm@quadra.local, sub.a@quadra.local, doorman.a@quadra.local, resident1..4@quadra.local")
}
