package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/booking-backend/internal/models"
)

func setupReservationRepoTest(t *testing.T) (*ReservationRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReservationRepository(&PostgresDB{DB: sqlxDB})

	return repo, mock, func() { db.Close() }
}

func stay(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestReservationCreate(t *testing.T) {
	repo, mock, cleanup := setupReservationRepoTest(t)
	defer cleanup()

	res := &models.Reservation{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  stay(10),
		CheckOut: stay(13),
		Guests:   2,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms WHERE id = (.+) FOR UPDATE").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
	mock.ExpectQuery("SELECT COUNT(.+) FROM reservations").
		WithArgs("room-1", res.CheckIn, res.CheckOut).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO reservations").
		WithArgs(sqlmock.AnyArg(), "guest-1", "room-1", res.CheckIn, res.CheckOut,
			2, 0.0, string(models.ReservationStatusConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), res)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, models.ReservationStatusConfirmed, res.Status)
	assert.False(t, res.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationCreate_Conflict(t *testing.T) {
	repo, mock, cleanup := setupReservationRepoTest(t)
	defer cleanup()

	res := &models.Reservation{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  stay(10),
		CheckOut: stay(13),
		Guests:   2,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms WHERE id = (.+) FOR UPDATE").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
	mock.ExpectQuery("SELECT COUNT(.+) FROM reservations").
		WithArgs("room-1", res.CheckIn, res.CheckOut).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), res)
	assert.True(t, errors.Is(err, models.ErrRoomUnavailable))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationCreate_RoomMissing(t *testing.T) {
	repo, mock, cleanup := setupReservationRepoTest(t)
	defer cleanup()

	res := &models.Reservation{
		GuestID:  "guest-1",
		RoomID:   "missing",
		CheckIn:  stay(10),
		CheckOut: stay(13),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms WHERE id = (.+) FOR UPDATE").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), res)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestReservationCreate_ExclusionViolation(t *testing.T) {
	repo, mock, cleanup := setupReservationRepoTest(t)
	defer cleanup()

	res := &models.Reservation{
		GuestID:  "guest-1",
		RoomID:   "room-1",
		CheckIn:  stay(10),
		CheckOut: stay(13),
		Guests:   2,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM rooms WHERE id = (.+) FOR UPDATE").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
	mock.ExpectQuery("SELECT COUNT(.+) FROM reservations").
		WithArgs("room-1", res.CheckIn, res.CheckOut).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// A writer outside the lock slipped in; the schema constraint is
	// the last line of defense
	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnError(&pq.Error{Code: "23P01"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), res)
	assert.True(t, errors.Is(err, models.ErrRoomUnavailable))
}

func TestUpdateStatus_Guarded(t *testing.T) {
	repo, mock, cleanup := setupReservationRepoTest(t)
	defer cleanup()

	mock.ExpectExec("UPDATE reservations").
		WithArgs("res-1", string(models.ReservationStatusCheckedIn), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateStatus(context.Background(), "res-1",
		models.ReservationStatusCheckedIn, models.ReservationStatusConfirmed)
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestUpdateStatus_WrongSourceState(t *testing.T) {
	repo, mock, cleanup := setupReservationRepoTest(t)
	defer cleanup()

	mock.ExpectExec("UPDATE reservations").
		WithArgs("res-1", string(models.ReservationStatusCheckedOut), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdateStatus(context.Background(), "res-1",
		models.ReservationStatusCheckedOut, models.ReservationStatusCheckedIn)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestGetByID_NotFoundIsNil(t *testing.T) {
	repo, mock, cleanup := setupReservationRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT(.+)FROM reservations res").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	res, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, res)
}
