package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harborview/booking-backend/internal/config"
	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/services"
)

// Installs the initial room catalog and admin account. Safe to run on
// every deployment: a persisted flag makes the operation a no-op once
// the data exists.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	settingRepo := database.NewSettingRepository(db)
	roomTypeRepo := database.NewRoomTypeRepository(db)
	roomRepo := database.NewRoomRepository(db)
	guestRepo := database.NewGuestRepository(db)

	seedService := services.NewSeedService(
		settingRepo,
		roomTypeRepo,
		roomRepo,
		guestRepo,
		cfg.Seed,
		cfg.Security.BcryptCost,
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	seeded, err := seedService.Run(ctx)
	if err != nil {
		logger.Fatalf("Seeding failed: %v", err)
	}

	if seeded {
		logger.Info("Seed data installed")
	}
}
