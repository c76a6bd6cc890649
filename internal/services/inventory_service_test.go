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

func setupInventoryTest(t *testing.T) (*InventoryService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	postgresDB := &database.PostgresDB{DB: sqlxDB}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service := NewInventoryService(
		database.NewRoomTypeRepository(postgresDB),
		database.NewRoomRepository(postgresDB),
		5*time.Second,
		logger,
	)

	return service, mock, func() { db.Close() }
}

func TestDeleteRoomType_BlockedWhileRoomsReferenceIt(t *testing.T) {
	service, mock, cleanup := setupInventoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT(.+) FROM rooms WHERE room_type_id").
		WithArgs("type-std").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err := service.DeleteRoomType(context.Background(), "type-std")
	assert.True(t, errors.Is(err, models.ErrRoomTypeInUse))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomType_Unreferenced(t *testing.T) {
	service, mock, cleanup := setupInventoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT(.+) FROM rooms WHERE room_type_id").
		WithArgs("type-std").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM room_types").
		WithArgs("type-std").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := service.DeleteRoomType(context.Background(), "type-std")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoomType_NotFound(t *testing.T) {
	service, mock, cleanup := setupInventoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT(.+) FROM rooms WHERE room_type_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM room_types").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := service.DeleteRoomType(context.Background(), "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCreateRoom_UnknownRoomType(t *testing.T) {
	service, mock, cleanup := setupInventoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, description(.+)FROM room_types").
		WithArgs("missing-type").
		WillReturnError(sql.ErrNoRows)

	_, err := service.CreateRoom(context.Background(), &models.CreateRoomRequest{
		RoomNumber: "101",
		RoomTypeID: "missing-type",
		Floor:      1,
	})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCreateRoomType(t *testing.T) {
	service, mock, cleanup := setupInventoryTest(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO room_types").
		WithArgs(sqlmock.AnyArg(), "Standard", "A cozy room", 99.0, 2, sqlmock.AnyArg(), "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	rt, err := service.CreateRoomType(context.Background(), &models.CreateRoomTypeRequest{
		Name:          "Standard",
		Description:   "A cozy room",
		PricePerNight: 99,
		MaxGuests:     2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rt.ID)
	assert.Equal(t, "Standard", rt.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRoomTypes_StoreFailure(t *testing.T) {
	service, mock, cleanup := setupInventoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, description(.+)FROM room_types").
		WillReturnError(errors.New("connection refused"))

	_, err := service.ListRoomTypes(context.Background())
	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
}
