package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tourstay/internal/repository"
)

type MockRoomCounter struct {
	mock.Mock
}

func (m *MockRoomCounter) Reserve(ctx context.Context, roomTypeID int64, quantity int) error {
	args := m.Called(ctx, roomTypeID, quantity)
	return args.Error(0)
}

func (m *MockRoomCounter) Release(ctx context.Context, roomTypeID int64, quantity int) error {
	args := m.Called(ctx, roomTypeID, quantity)
	return args.Error(0)
}

func TestReserveMapsInsufficiency(t *testing.T) {
	rooms := new(MockRoomCounter)
	rooms.On("Reserve", mock.Anything, int64(1), 2).Return(repository.ErrInsufficientRooms)

	l := NewLedger(rooms, nil)
	err := l.Reserve(context.Background(), 1, 2)

	assert.ErrorIs(t, err, ErrInsufficient)
}

func TestReserveAllSucceeds(t *testing.T) {
	rooms := new(MockRoomCounter)
	rooms.On("Reserve", mock.Anything, int64(1), 2).Return(nil)
	rooms.On("Reserve", mock.Anything, int64(2), 1).Return(nil)

	l := NewLedger(rooms, nil)
	err := l.ReserveAll(context.Background(), []Line{
		{RoomTypeID: 1, Quantity: 2},
		{RoomTypeID: 2, Quantity: 1},
	})

	assert.NoError(t, err)
	rooms.AssertExpectations(t)
}

func TestReserveAllCompensatesOnFailure(t *testing.T) {
	rooms := new(MockRoomCounter)
	rooms.On("Reserve", mock.Anything, int64(1), 2).Return(nil)
	rooms.On("Reserve", mock.Anything, int64(2), 1).Return(nil)
	rooms.On("Reserve", mock.Anything, int64(3), 4).Return(repository.ErrInsufficientRooms)
	// only the lines reserved before the failure are credited back
	rooms.On("Release", mock.Anything, int64(1), 2).Return(nil)
	rooms.On("Release", mock.Anything, int64(2), 1).Return(nil)

	l := NewLedger(rooms, nil)
	err := l.ReserveAll(context.Background(), []Line{
		{RoomTypeID: 1, Quantity: 2},
		{RoomTypeID: 2, Quantity: 1},
		{RoomTypeID: 3, Quantity: 4},
	})

	assert.ErrorIs(t, err, ErrInsufficient)
	rooms.AssertExpectations(t)
	rooms.AssertNotCalled(t, "Release", mock.Anything, int64(3), 4)
}

func TestReleaseSwallowsOverflow(t *testing.T) {
	rooms := new(MockRoomCounter)
	rooms.On("Release", mock.Anything, int64(1), 5).Return(repository.ErrReleaseOverflow)

	l := NewLedger(rooms, nil)
	l.Release(context.Background(), 1, 5)

	rooms.AssertExpectations(t)
}

func TestReleaseAllContinuesPastFailures(t *testing.T) {
	rooms := new(MockRoomCounter)
	rooms.On("Release", mock.Anything, int64(1), 1).Return(errors.New("db down"))
	rooms.On("Release", mock.Anything, int64(2), 3).Return(nil)

	l := NewLedger(rooms, nil)
	l.ReleaseAll(context.Background(), []Line{
		{RoomTypeID: 1, Quantity: 1},
		{RoomTypeID: 2, Quantity: 3},
	})

	rooms.AssertExpectations(t)
}
