package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"quadra/internal/config"
	"quadra/internal/database"
	"quadra/internal/domain"
	"quadra/internal/repository"
)

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	schedule := flag.String("schedule", "*/5 * * * *", "cron schedule for the sweep")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	reservations := repository.NewReservationRepository(db)
	events := repository.NewEventRepository(db)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		now := time.Now().UTC()
		due, err := reservations.FindDueReminders(ctx, now, now.Add(cfg.ReminderLead))
		if err != nil {
			log.Printf("reminder sweep failed: %v", err)
			return
		}

		sent := 0
		for _, res := range due {
			payload, _ := json.Marshal(map[string]string{
				"start_time": res.StartTime.Format(time.RFC3339),
				"court_id":   res.CourtID.String(),
			})
			ev := &domain.ReservationEvent{
				ReservationID: res.ID,
				Type:          domain.EventReminder,
				Payload:       string(payload),
			}
			if err := events.Append(ctx, ev); err != nil {
				log.Printf("reminder for reservation %s failed: %v", res.ID, err)
				continue
			}
			sent++
		}
		log.Printf("reminder sweep completed: due=%d sent=%d", len(due), sent)
	}

	if *once {
		sweep()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, sweep); err != nil {
		log.Fatalf("invalid schedule %q: %v", *schedule, err)
	}
	c.Start()
	log.Printf("reminder scheduler started (schedule=%q, lead=%s)", *schedule, cfg.ReminderLead)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-c.Stop().Done()
}
