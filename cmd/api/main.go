package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"quadra/internal/config"
	"quadra/internal/database"
	"quadra/internal/middleware"
	"quadra/internal/modules/admin"
	"quadra/internal/modules/approval"
	"quadra/internal/modules/catalog"
	"quadra/internal/modules/live"
	"quadra/internal/modules/profile"
	"quadra/internal/modules/reservation"
	jwtsvc "quadra/internal/pkg/jwt"
	"quadra/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	towerRepo := repository.NewTowerRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	blackoutRepo := repository.NewBlackoutRepository(db)
	eventRepo := repository.NewEventRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	changeRepo := repository.NewProfileChangeRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := live.NewHub()
	liveHandler := live.NewHandler(hub)

	reservationService := reservation.NewService(reservationRepo, userRepo, courtRepo, eventRepo, hub)
	reservationHandler := reservation.NewHandler(reservationService)

	approvalService := approval.NewService(approvalRepo, userRepo, towerRepo)
	approvalHandler := approval.NewHandler(approvalService)

	profileService := profile.NewService(changeRepo, userRepo, towerRepo)
	profileHandler := profile.NewHandler(profileService)

	adminService := admin.NewService(userRepo, approvalRepo, reservationRepo, blackoutRepo)
	adminHandler := admin.NewHandler(adminService)

	catalogService := catalog.NewService(towerRepo, courtRepo, reservationRepo, blackoutRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	r := gin.New()
	r.Use(middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		catalogHandler.RegisterRoutes(v1)

		// authenticated
		authed := v1.Group("")
		authed.Use(middleware.Auth(j, userRepo))
		{
			approvalHandler.RegisterRoutes(authed)
			profileHandler.RegisterRoutes(authed)
			adminHandler.RegisterRoutes(authed)
			liveHandler.RegisterRoutes(authed)

			active := authed.Group("")
			active.Use(middleware.RequireActive())
			{
				reservationHandler.RegisterRoutes(active)
			}
		}
	}

	log.Printf("listening on %s (env=%s)", cfg.BindAddr, cfg.AppEnv)
	if err := r.Run(cfg.BindAddr); err != nil {
		log.Fatal(err)
	}
}
