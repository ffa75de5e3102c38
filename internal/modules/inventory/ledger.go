// Package inventory owns per-room-type availability. All mutations of
// available_rooms go through the ledger's guarded reserve/release operations.
package inventory

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tourstay/internal/repository"
)

var ErrInsufficient = errors.New("insufficient inventory")

// RoomCounter is the conditional-update surface the ledger needs from the
// room-type repository.
type RoomCounter interface {
	Reserve(ctx context.Context, roomTypeID int64, quantity int) error
	Release(ctx context.Context, roomTypeID int64, quantity int) error
}

type Line struct {
	RoomTypeID int64
	Quantity   int
}

type Ledger struct {
	rooms RoomCounter
	log   *zap.Logger
}

func NewLedger(rooms RoomCounter, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{rooms: rooms, log: log}
}

func (l *Ledger) Reserve(ctx context.Context, roomTypeID int64, quantity int) error {
	err := l.rooms.Reserve(ctx, roomTypeID, quantity)
	if errors.Is(err, repository.ErrInsufficientRooms) {
		return ErrInsufficient
	}
	return err
}

// Release credits rooms back. A release that would overflow total_rooms means
// reserve/release calls got unbalanced upstream; it is logged as an error and
// swallowed, never surfaced to the user.
func (l *Ledger) Release(ctx context.Context, roomTypeID int64, quantity int) {
	err := l.rooms.Release(ctx, roomTypeID, quantity)
	if err == nil {
		return
	}
	if errors.Is(err, repository.ErrReleaseOverflow) {
		l.log.Error("inventory release overflow, counts are unbalanced",
			zap.Int64("room_type_id", roomTypeID),
			zap.Int("quantity", quantity),
		)
		return
	}
	l.log.Error("inventory release failed",
		zap.Int64("room_type_id", roomTypeID),
		zap.Int("quantity", quantity),
		zap.Error(err),
	)
}

// ReserveAll reserves every line or none. When a line fails, the lines already
// reserved in this call are released before the error is returned.
func (l *Ledger) ReserveAll(ctx context.Context, lines []Line) error {
	for i, line := range lines {
		if err := l.Reserve(ctx, line.RoomTypeID, line.Quantity); err != nil {
			for _, done := range lines[:i] {
				l.Release(ctx, done.RoomTypeID, done.Quantity)
			}
			return err
		}
	}
	return nil
}

// ReleaseAll credits every line back, continuing past individual failures.
func (l *Ledger) ReleaseAll(ctx context.Context, lines []Line) {
	for _, line := range lines {
		l.Release(ctx, line.RoomTypeID, line.Quantity)
	}
}
