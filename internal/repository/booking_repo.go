package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tourstay/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Modifications").
		Where("deleted_at IS NULL").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByConfirmation(ctx context.Context, number string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).
		Preload("Rooms").
		Where("confirmation_number = ? AND deleted_at IS NULL", number).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("user_id = ? AND deleted_at IS NULL", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	if err := q.Preload("Rooms").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *BookingRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("deleted_at IS NULL")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	if err := q.Preload("Rooms").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *BookingRepository) GetByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := r.db.WithContext(ctx).
		Preload("Rooms").
		Where("hotel_id = ? AND deleted_at IS NULL", hotelID).
		Order("check_in_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingRepository) AppendModification(ctx context.Context, m *domain.BookingModification) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *BookingRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}

type BookingStatusCount struct {
	Status  string  `json:"status"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type BookingStats struct {
	TotalBookings int64                `json:"total_bookings"`
	TotalRevenue  float64              `json:"total_revenue"`
	ByStatus      []BookingStatusCount `json:"by_status"`
}

// Stats aggregates booking counts and revenue. TotalRevenue counts only
// completed stays (Checked-Out).
func (r *BookingRepository) Stats(ctx context.Context) (*BookingStats, error) {
	var stats BookingStats

	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("deleted_at IS NULL").
		Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("deleted_at IS NULL AND status = ?", domain.BookingCheckedOut).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("deleted_at IS NULL").
		Select("status, COUNT(1) AS count, COALESCE(SUM(total_price), 0) AS revenue").
		Group("status").
		Scan(&stats.ByStatus).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
