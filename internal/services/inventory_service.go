package services

import (
	"context"
	"time"

	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// InventoryService manages the room type and room catalog.
type InventoryService struct {
	roomTypeRepo *database.RoomTypeRepository
	roomRepo     *database.RoomRepository
	queryTimeout time.Duration
	logger       *logrus.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	roomTypeRepo *database.RoomTypeRepository,
	roomRepo *database.RoomRepository,
	queryTimeout time.Duration,
	logger *logrus.Logger,
) *InventoryService {
	return &InventoryService{
		roomTypeRepo: roomTypeRepo,
		roomRepo:     roomRepo,
		queryTimeout: queryTimeout,
		logger:       logger,
	}
}

// ListRoomTypes returns the catalog ordered by nightly price
func (s *InventoryService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	roomTypes, err := s.roomTypeRepo.GetAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return roomTypes, nil
}

// CreateRoomType creates a room type
func (s *InventoryService) CreateRoomType(ctx context.Context, req *models.CreateRoomTypeRequest) (*models.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rt := &models.RoomType{
		Name:          req.Name,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		MaxGuests:     req.MaxGuests,
		Amenities:     req.Amenities,
		ImageURL:      req.ImageURL,
	}
	if err := s.roomTypeRepo.Create(ctx, rt); err != nil {
		return nil, storeErr(err)
	}
	return rt, nil
}

// UpdateRoomType updates a room type
func (s *InventoryService) UpdateRoomType(ctx context.Context, id string, req *models.UpdateRoomTypeRequest) (*models.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rt, err := s.roomTypeRepo.Update(ctx, id, req)
	if err != nil {
		return nil, storeErr(err)
	}
	if rt == nil {
		return nil, models.ErrNotFound
	}
	return rt, nil
}

// DeleteRoomType deletes a room type. Deletion is blocked while rooms
// still reference the type; allowing it would leave rooms with a
// dangling type and break every read-side join.
func (s *InventoryService) DeleteRoomType(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	count, err := s.roomRepo.CountByRoomType(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if count > 0 {
		return models.ErrRoomTypeInUse
	}

	deleted, err := s.roomTypeRepo.Delete(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !deleted {
		return models.ErrNotFound
	}

	s.logger.WithField("room_type_id", id).Info("Room type deleted")
	return nil
}

// ListRooms returns all rooms with their types, ordered by floor then
// room number
func (s *InventoryService) ListRooms(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rooms, err := s.roomRepo.GetAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

// CreateRoom creates a room, verifying the referenced room type exists
func (s *InventoryService) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rt, err := s.roomTypeRepo.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		return nil, storeErr(err)
	}
	if rt == nil {
		return nil, models.ErrNotFound
	}

	room := &models.Room{
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Status:     req.Status,
		Floor:      req.Floor,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, storeErr(err)
	}
	room.RoomType = rt
	return room, nil
}

// UpdateRoom updates a room
func (s *InventoryService) UpdateRoom(ctx context.Context, id string, req *models.UpdateRoomRequest) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if req.RoomTypeID != nil {
		rt, err := s.roomTypeRepo.GetByID(ctx, *req.RoomTypeID)
		if err != nil {
			return nil, storeErr(err)
		}
		if rt == nil {
			return nil, models.ErrNotFound
		}
	}

	room, err := s.roomRepo.Update(ctx, id, req)
	if err != nil {
		return nil, storeErr(err)
	}
	if room == nil {
		return nil, models.ErrNotFound
	}
	return room, nil
}

// DeleteRoom deletes a room
func (s *InventoryService) DeleteRoom(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	deleted, err := s.roomRepo.Delete(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !deleted {
		return models.ErrNotFound
	}
	return nil
}
