package main

import (
	"context"
	"log"
	"time"

	"evently/internal/auth"
	"evently/internal/config"
	"evently/internal/db"
	"evently/internal/model"
	"evently/internal/repository"
)

// Seeds a local database with a verified demo organizer and a few events so
// the API is explorable without registering first.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Event{}, &model.Signup{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	events := repository.NewEventRepository(gormDB)

	passwordHash, err := auth.HashPassword("Password123!")
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	organizer := &model.User{
		FirstName:     "Demo",
		LastName:      "Organizer",
		Email:         "organizer@evently.local",
		PasswordHash:  passwordHash,
		EmailVerified: true,
	}

	if existing, err := users.FindByEmail(ctx, organizer.Email); err == nil {
		organizer = existing
		log.Println("Demo organizer already present, reusing")
	} else if err := users.Create(ctx, organizer); err != nil {
		log.Fatalf("Failed to create demo organizer: %v", err)
	}

	demoEvents := []model.Event{
		{
			Title:          "Community Picnic",
			Description:    "A fun day for the whole family.",
			Date:           time.Now().AddDate(0, 1, 0),
			Location:       "Central Park",
			Organizer:      "Demo Organizer",
			OrganizerEmail: organizer.Email,
		},
		{
			Title:          "Open Mic Night",
			Description:    "Bring your songs, poems and bad jokes.",
			Date:           time.Now().AddDate(0, 0, 14),
			Location:       "The Riverside Cafe",
			Organizer:      "Demo Organizer",
			OrganizerEmail: organizer.Email,
		},
		{
			Title:          "Beginners 5k Run",
			Description:    "Couch-to-5k graduation run, all paces welcome.",
			Date:           time.Now().AddDate(0, 2, 0),
			Location:       "Victoria Embankment",
			Organizer:      "Demo Organizer",
			OrganizerEmail: organizer.Email,
		},
	}

	created := 0
	for i := range demoEvents {
		if err := events.Create(ctx, &demoEvents[i]); err != nil {
			log.Printf("Skipping event %q: %v", demoEvents[i].Title, err)
			continue
		}
		created++
	}

	log.Printf("Seed complete: %d events created for %s", created, organizer.Email)
}
