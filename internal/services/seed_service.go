package services

import (
	"context"
	"fmt"

	"github.com/harborview/booking-backend/internal/config"
	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// seedCompletedKey is the persisted flag that makes seeding idempotent
// across deployments. It lives in the settings table, not in process
// state, so repeated invocations of the seed command are safe.
const seedCompletedKey = "seed_completed"

// SeedService installs the initial room catalog and admin account.
type SeedService struct {
	settingRepo  *database.SettingRepository
	roomTypeRepo *database.RoomTypeRepository
	roomRepo     *database.RoomRepository
	guestRepo    *database.GuestRepository
	cfg          config.SeedConfig
	bcryptCost   int
	logger       *logrus.Logger
}

// NewSeedService creates a new SeedService
func NewSeedService(
	settingRepo *database.SettingRepository,
	roomTypeRepo *database.RoomTypeRepository,
	roomRepo *database.RoomRepository,
	guestRepo *database.GuestRepository,
	cfg config.SeedConfig,
	bcryptCost int,
	logger *logrus.Logger,
) *SeedService {
	return &SeedService{
		settingRepo:  settingRepo,
		roomTypeRepo: roomTypeRepo,
		roomRepo:     roomRepo,
		guestRepo:    guestRepo,
		cfg:          cfg,
		bcryptCost:   bcryptCost,
		logger:       logger,
	}
}

// Run installs the seed data unless the persisted flag says it has
// already been installed. Returns true when seeding happened.
func (s *SeedService) Run(ctx context.Context) (bool, error) {
	done, exists, err := s.settingRepo.Get(ctx, seedCompletedKey)
	if err != nil {
		return false, storeErr(err)
	}
	if exists && done == "true" {
		s.logger.Info("Seed data already installed, nothing to do")
		return false, nil
	}

	if err := s.seedAdmin(ctx); err != nil {
		return false, err
	}
	if err := s.seedInventory(ctx); err != nil {
		return false, err
	}

	if err := s.settingRepo.Set(ctx, seedCompletedKey, "true"); err != nil {
		return false, storeErr(err)
	}

	s.logger.Info("Seed data installed")
	return true, nil
}

func (s *SeedService) seedAdmin(ctx context.Context) error {
	if s.cfg.AdminPassword == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD is required to install seed data")
	}

	existing, err := s.guestRepo.GetByEmail(ctx, s.cfg.AdminEmail)
	if err != nil {
		return storeErr(err)
	}
	if existing != nil {
		s.logger.WithField("email", s.cfg.AdminEmail).Info("Admin account already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Guest{
		Email:        s.cfg.AdminEmail,
		Name:         s.cfg.AdminName,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := s.guestRepo.Create(ctx, admin); err != nil {
		return storeErr(err)
	}

	s.logger.WithField("email", s.cfg.AdminEmail).Info("Admin account created")
	return nil
}

func (s *SeedService) seedInventory(ctx context.Context) error {
	roomTypes := []models.RoomType{
		{
			Name:          "Standard Room",
			Description:   "Comfortable room with essential amenities",
			PricePerNight: 99,
			MaxGuests:     2,
			Amenities:     []string{"WiFi", "TV", "Air Conditioning", "Mini Fridge"},
		},
		{
			Name:          "Deluxe Room",
			Description:   "Spacious room with premium amenities",
			PricePerNight: 159,
			MaxGuests:     3,
			Amenities:     []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Coffee Maker", "Balcony"},
		},
		{
			Name:          "Suite",
			Description:   "Luxurious suite with separate living area",
			PricePerNight: 249,
			MaxGuests:     4,
			Amenities:     []string{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Coffee Maker", "Balcony", "Jacuzzi", "Living Room"},
		},
	}

	// Room numbers per type, floor taken from the leading digit
	roomNumbers := [][]string{
		{"101", "102", "103", "104"},
		{"201", "202", "203"},
		{"301", "302"},
	}

	for i := range roomTypes {
		rt := &roomTypes[i]
		if err := s.roomTypeRepo.Create(ctx, rt); err != nil {
			return storeErr(err)
		}

		for _, number := range roomNumbers[i] {
			room := &models.Room{
				RoomNumber: number,
				RoomTypeID: rt.ID,
				Status:     models.RoomStatusAvailable,
				Floor:      int(number[0] - '0'),
			}
			if err := s.roomRepo.Create(ctx, room); err != nil {
				return storeErr(err)
			}
		}
	}

	return nil
}
