package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/models"
)

func setupReservationTest(t *testing.T) (*ReservationService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	postgresDB := &database.PostgresDB{DB: sqlxDB}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// Audit disabled so lifecycle tests don't have to mock audit inserts
	audit := NewAuditService(database.NewAuditRepository(postgresDB), false, logger)

	service := NewReservationService(
		database.NewReservationRepository(postgresDB),
		database.NewRoomRepository(postgresDB),
		database.NewGuestRepository(postgresDB),
		audit,
		5*time.Second,
		logger,
	)

	return service, mock, func() { db.Close() }
}

func testGuest() *models.Guest {
	return &models.Guest{
		ID:    "11111111-1111-1111-1111-111111111111",
		Email: "guest@example.com",
		Name:  "Test Guest",
		Role:  models.RoleGuest,
	}
}

func expectRoomLookup(mock sqlmock.Sqlmock, roomID string, maxGuests int, price float64) {
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "room_number", "room_type_id", "status", "floor",
		"created_at", "updated_at",
		"rt.id", "rt.name", "rt.description",
		"rt.price_per_night", "rt.max_guests",
		"rt.amenities", "rt.image_url",
		"rt.created_at", "rt.updated_at",
	}).AddRow(
		roomID, "101", "type-std", "available", 1,
		now, now,
		"type-std", "Standard", "",
		price, maxGuests,
		"{}", "",
		now, now,
	)

	mock.ExpectQuery("SELECT r.id, r.room_number(.+)FROM rooms r").
		WithArgs(roomID).
		WillReturnRows(rows)
}

func expectGuestEnsure(mock sqlmock.Sqlmock, guest *models.Guest) {
	now := time.Now()
	mock.ExpectQuery("INSERT INTO guest_profiles").
		WithArgs(guest.ID, guest.Email, guest.Name, string(guest.Role), guest.PasswordHash).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "role", "password_hash", "created_at", "updated_at",
		}).AddRow(guest.ID, guest.Email, guest.Name, string(guest.Role), "", now, now))
}

func TestCreateReservation(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	guest := testGuest()
	roomID := "22222222-2222-2222-2222-222222222222"

	expectRoomLookup(mock, roomID, 2, 100)
	expectGuestEnsure(mock, guest)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms WHERE id = (.+) FOR UPDATE").
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(roomID))
	mock.ExpectQuery("SELECT COUNT(.+) FROM reservations").
		WithArgs(roomID, day(2026, 3, 10), day(2026, 3, 13)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	mock.ExpectCommit()

	reservation, err := service.Create(context.Background(), guest, &models.CreateReservationRequest{
		RoomID:   roomID,
		CheckIn:  "2026-03-10",
		CheckOut: "2026-03-13",
		Guests:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReservationStatusConfirmed, reservation.Status)
	assert.Equal(t, 300.0, reservation.TotalPrice)
	assert.Equal(t, guest.ID, reservation.GuestID)
	assert.Equal(t, "101", reservation.RoomNumber)
	assert.Equal(t, "Standard", reservation.RoomTypeName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservation_RoomUnavailable(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	guest := testGuest()
	roomID := "22222222-2222-2222-2222-222222222222"

	expectRoomLookup(mock, roomID, 2, 100)
	expectGuestEnsure(mock, guest)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms WHERE id = (.+) FOR UPDATE").
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(roomID))
	mock.ExpectQuery("SELECT COUNT(.+) FROM reservations").
		WithArgs(roomID, day(2026, 3, 10), day(2026, 3, 13)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := service.Create(context.Background(), guest, &models.CreateReservationRequest{
		RoomID:   roomID,
		CheckIn:  "2026-03-10",
		CheckOut: "2026-03-13",
		Guests:   2,
	})
	assert.True(t, errors.Is(err, models.ErrRoomUnavailable))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservation_CapacityExceeded(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	guest := testGuest()
	roomID := "22222222-2222-2222-2222-222222222222"

	expectRoomLookup(mock, roomID, 2, 100)

	_, err := service.Create(context.Background(), guest, &models.CreateReservationRequest{
		RoomID:   roomID,
		CheckIn:  "2026-03-10",
		CheckOut: "2026-03-13",
		Guests:   5,
	})
	assert.True(t, errors.Is(err, models.ErrCapacityExceeded))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservation_InvalidRange(t *testing.T) {
	service, _, cleanup := setupReservationTest(t)
	defer cleanup()

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"reversed", "2026-03-13", "2026-03-10"},
		{"same day", "2026-03-10", "2026-03-10"},
		{"malformed", "not-a-date", "2026-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), testGuest(), &models.CreateReservationRequest{
				RoomID:   "room-1",
				CheckIn:  tt.checkIn,
				CheckOut: tt.checkOut,
				Guests:   2,
			})
			assert.True(t, errors.Is(err, models.ErrInvalidRange))
		})
	}
}

func TestCreateReservation_RoomNotFound(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT r.id, r.room_number(.+)FROM rooms r").
		WithArgs("missing-room").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.Create(context.Background(), testGuest(), &models.CreateReservationRequest{
		RoomID:   "missing-room",
		CheckIn:  "2026-03-10",
		CheckOut: "2026-03-13",
		Guests:   2,
	})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func reservationRow(id, guestID string, status models.ReservationStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "guest_id", "room_id", "check_in", "check_out",
		"guests", "total_price", "status", "created_at", "updated_at",
		"guest_email", "guest_name", "room_number", "room_type_name",
	}).AddRow(
		id, guestID, "room-1", day(2026, 3, 10), day(2026, 3, 13),
		2, 300.0, string(status), now, now,
		"guest@example.com", "Test Guest", "101", "Standard",
	)
}

func TestCheckIn(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	admin := models.Actor{ID: "admin-1", Role: models.RoleAdmin}

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("res-1").
		WillReturnRows(reservationRow("res-1", "guest-1", models.ReservationStatusConfirmed))
	mock.ExpectExec("UPDATE reservations").
		WithArgs("res-1", string(models.ReservationStatusCheckedIn), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reservation, err := service.CheckIn(context.Background(), "res-1", admin)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedIn, reservation.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_GuestForbidden(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	owner := models.Actor{ID: "guest-1", Role: models.RoleGuest}

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("res-1").
		WillReturnRows(reservationRow("res-1", "guest-1", models.ReservationStatusConfirmed))

	_, err := service.CheckIn(context.Background(), "res-1", owner)
	assert.True(t, errors.Is(err, models.ErrForbidden))
}

func TestCheckOut_FromConfirmedRejected(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	admin := models.Actor{ID: "admin-1", Role: models.RoleAdmin}

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("res-1").
		WillReturnRows(reservationRow("res-1", "guest-1", models.ReservationStatusConfirmed))

	_, err := service.CheckOut(context.Background(), "res-1", admin)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))
}

func TestCancel_OwnerAllowed(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	owner := models.Actor{ID: "guest-1", Role: models.RoleGuest}

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("res-1").
		WillReturnRows(reservationRow("res-1", "guest-1", models.ReservationStatusConfirmed))
	mock.ExpectExec("UPDATE reservations").
		WithArgs("res-1", string(models.ReservationStatusCancelled), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	reservation, err := service.Cancel(context.Background(), "res-1", owner)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, reservation.Status)
}

func TestCancel_StrangerForbidden(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	stranger := models.Actor{ID: "guest-2", Role: models.RoleGuest}

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("res-1").
		WillReturnRows(reservationRow("res-1", "guest-1", models.ReservationStatusConfirmed))

	_, err := service.Cancel(context.Background(), "res-1", stranger)
	assert.True(t, errors.Is(err, models.ErrForbidden))
}

func TestCancel_TerminalRejected(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	admin := models.Actor{ID: "admin-1", Role: models.RoleAdmin}

	for _, status := range []models.ReservationStatus{
		models.ReservationStatusCheckedOut,
		models.ReservationStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			mock.ExpectQuery("SELECT(.+)FROM reservations res").
				WithArgs("res-1").
				WillReturnRows(reservationRow("res-1", "guest-1", status))

			_, err := service.Cancel(context.Background(), "res-1", admin)
			assert.True(t, errors.Is(err, models.ErrInvalidTransition))
		})
	}
}

func TestTransition_LostRaceRejected(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	admin := models.Actor{ID: "admin-1", Role: models.RoleAdmin}

	// Load observes confirmed, but the guarded update matches no rows
	// because a concurrent transition got there first
	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("res-1").
		WillReturnRows(reservationRow("res-1", "guest-1", models.ReservationStatusConfirmed))
	mock.ExpectExec("UPDATE reservations").
		WithArgs("res-1", string(models.ReservationStatusCheckedIn), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := service.CheckIn(context.Background(), "res-1", admin)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))
}

func TestTransition_NotFound(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	admin := models.Actor{ID: "admin-1", Role: models.RoleAdmin}

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := service.CheckIn(context.Background(), "missing", admin)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetForActor_StrangerForbidden(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	stranger := models.Actor{ID: "guest-2", Role: models.RoleGuest}

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("res-1").
		WillReturnRows(reservationRow("res-1", "guest-1", models.ReservationStatusConfirmed))

	_, err := service.GetForActor(context.Background(), "res-1", stranger)
	assert.True(t, errors.Is(err, models.ErrForbidden))
}

func TestListForGuest_StoreFailure(t *testing.T) {
	service, mock, cleanup := setupReservationTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("guest-1").
		WillReturnError(errors.New("connection refused"))

	_, err := service.ListForGuest(context.Background(), "guest-1")
	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
}
