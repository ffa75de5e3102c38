package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tourstay/internal/domain"
)

type HotelFilters struct {
	City     string
	MinPrice float64
	MaxPrice float64
	Status   domain.HotelStatus
	Limit    int
	Offset   int
}

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := r.db.WithContext(ctx).
		Preload("RoomTypes", "deleted_at IS NULL").
		Where("deleted_at IS NULL").
		First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *HotelRepository) GetAll(ctx context.Context, f HotelFilters) ([]domain.Hotel, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hotel{}).Where("deleted_at IS NULL")

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MinPrice > 0 {
		q = q.Where("id IN (?)", r.db.Model(&domain.RoomType{}).
			Select("hotel_id").Where("base_price >= ? AND deleted_at IS NULL", f.MinPrice))
	}
	if f.MaxPrice > 0 {
		q = q.Where("id IN (?)", r.db.Model(&domain.RoomType{}).
			Select("hotel_id").Where("base_price <= ? AND deleted_at IS NULL", f.MaxPrice))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hotels []domain.Hotel
	if err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&hotels).Error; err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

func (r *HotelRepository) GetPending(ctx context.Context, limit, offset int) ([]domain.Hotel, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hotel{}).
		Where("status = ? AND deleted_at IS NULL", domain.HotelPending)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hotels []domain.Hotel
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&hotels).Error; err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

func (r *HotelRepository) UpdateStatus(ctx context.Context, id int64, status domain.HotelStatus, reason string) error {
	return r.db.WithContext(ctx).Model(&domain.Hotel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": reason,
		}).Error
}

func (r *HotelRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.Hotel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}
