package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"tourstay/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        ":memory:",
		}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.RoomType{}))
	return db
}

func seedRoomType(t *testing.T, db *gorm.DB, total, available int) *domain.RoomType {
	t.Helper()
	rt := &domain.RoomType{
		HotelID:        1,
		Name:           "Deluxe",
		CapacityAdults: 2,
		BasePrice:      1500,
		TotalRooms:     total,
		AvailableRooms: available,
		IsActive:       true,
	}
	require.NoError(t, db.Create(rt).Error)
	return rt
}

func availableRooms(t *testing.T, db *gorm.DB, id int64) int {
	t.Helper()
	var rt domain.RoomType
	require.NoError(t, db.First(&rt, id).Error)
	return rt.AvailableRooms
}

func TestReserveDecrements(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomTypeRepository(db)
	rt := seedRoomType(t, db, 10, 10)

	err := repo.Reserve(context.Background(), rt.ID, 3)

	assert.NoError(t, err)
	assert.Equal(t, 7, availableRooms(t, db, rt.ID))
}

func TestReserveRefusesOverdraft(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomTypeRepository(db)
	rt := seedRoomType(t, db, 10, 2)

	err := repo.Reserve(context.Background(), rt.ID, 3)

	assert.ErrorIs(t, err, ErrInsufficientRooms)
	assert.Equal(t, 2, availableRooms(t, db, rt.ID), "a refused reserve leaves the count untouched")
}

func TestReserveExactRemainder(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomTypeRepository(db)
	rt := seedRoomType(t, db, 10, 3)

	assert.NoError(t, repo.Reserve(context.Background(), rt.ID, 3))
	assert.Equal(t, 0, availableRooms(t, db, rt.ID))

	// nothing left
	assert.ErrorIs(t, repo.Reserve(context.Background(), rt.ID, 1), ErrInsufficientRooms)
}

func TestReserveDeletedRoomType(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomTypeRepository(db)
	rt := seedRoomType(t, db, 10, 10)
	require.NoError(t, repo.SoftDelete(context.Background(), rt.ID))

	err := repo.Reserve(context.Background(), rt.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficientRooms)
}

func TestReleaseIncrements(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomTypeRepository(db)
	rt := seedRoomType(t, db, 10, 6)

	err := repo.Release(context.Background(), rt.ID, 2)

	assert.NoError(t, err)
	assert.Equal(t, 8, availableRooms(t, db, rt.ID))
}

func TestReleaseRefusesOverflow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomTypeRepository(db)
	rt := seedRoomType(t, db, 10, 9)

	err := repo.Release(context.Background(), rt.ID, 2)

	assert.ErrorIs(t, err, ErrReleaseOverflow)
	assert.Equal(t, 9, availableRooms(t, db, rt.ID), "a refused release leaves the count untouched")
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomTypeRepository(db)
	rt := seedRoomType(t, db, 5, 5)

	require.NoError(t, repo.Reserve(context.Background(), rt.ID, 5))
	require.NoError(t, repo.Release(context.Background(), rt.ID, 5))

	assert.Equal(t, 5, availableRooms(t, db, rt.ID))
}
