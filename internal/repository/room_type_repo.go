package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"tourstay/internal/domain"
)

// ErrInsufficientRooms is returned when a guarded reserve finds fewer
// available rooms than requested (or the room type is gone).
var ErrInsufficientRooms = errors.New("insufficient rooms available")

// ErrReleaseOverflow is returned when a release would push available_rooms
// above total_rooms. That is an upstream accounting bug, never user input.
var ErrReleaseOverflow = errors.New("release would exceed total rooms")

type RoomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

func (r *RoomTypeRepository) Create(ctx context.Context, rt *domain.RoomType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RoomTypeRepository) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	var rt domain.RoomType
	if err := r.db.WithContext(ctx).Where("deleted_at IS NULL").First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RoomTypeRepository) GetByHotel(ctx context.Context, hotelID int64) ([]domain.RoomType, error) {
	var rts []domain.RoomType
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND deleted_at IS NULL", hotelID).
		Order("base_price ASC").
		Find(&rts).Error; err != nil {
		return nil, err
	}
	return rts, nil
}

func (r *RoomTypeRepository) Update(ctx context.Context, rt *domain.RoomType) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

// SoftDelete sets the tombstone. Room types are never physically removed once
// bookings reference them.
func (r *RoomTypeRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RoomType{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}

// Reserve conditionally decrements available_rooms in a single statement.
// The guard makes the read-check-write indivisible: two concurrent reserves
// cannot both succeed when only one quantity's worth remains.
func (r *RoomTypeRepository) Reserve(ctx context.Context, id int64, quantity int) error {
	res := r.db.WithContext(ctx).Model(&domain.RoomType{}).
		Where("id = ? AND deleted_at IS NULL AND available_rooms >= ?", id, quantity).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientRooms
	}
	return nil
}

// Release conditionally increments available_rooms, guarded so the count can
// never exceed total_rooms.
func (r *RoomTypeRepository) Release(ctx context.Context, id int64, quantity int) error {
	res := r.db.WithContext(ctx).Model(&domain.RoomType{}).
		Where("id = ? AND available_rooms + ? <= total_rooms", id, quantity).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReleaseOverflow
	}
	return nil
}
