// Package admin holds the moderation queue for hotel listings. Approval is
// what makes a hotel bookable; rejection records the reason for the owner.
package admin

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourstay/internal/domain"
	"tourstay/internal/pkg/apperr"
)

type HotelModerationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	GetPending(ctx context.Context, limit, offset int) ([]domain.Hotel, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.HotelStatus, reason string) error
}

var ErrHotelNotFound = apperr.NotFound("Hotel not found")

type Service struct {
	hotels HotelModerationRepository
	log    *zap.Logger
}

func NewService(hotels HotelModerationRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{hotels: hotels, log: log}
}

func (s *Service) PendingHotels(ctx context.Context, page, limit int) ([]domain.Hotel, int64, error) {
	hotels, total, err := s.hotels.GetPending(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list pending hotels", err)
	}
	return hotels, total, nil
}

func (s *Service) ApproveHotel(ctx context.Context, id, moderatorID int64) (*domain.Hotel, error) {
	h, err := s.loadPending(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.hotels.UpdateStatus(ctx, id, domain.HotelApproved, ""); err != nil {
		return nil, apperr.Internal("Failed to approve hotel", err)
	}
	h.Status = domain.HotelApproved
	h.RejectionReason = ""

	s.log.Info("hotel approved",
		zap.Int64("hotel_id", id), zap.Int64("moderator_id", moderatorID))
	return h, nil
}

func (s *Service) RejectHotel(ctx context.Context, id, moderatorID int64, reason string) (*domain.Hotel, error) {
	if reason == "" {
		return nil, apperr.Validation("Rejection reason is required")
	}
	h, err := s.loadPending(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.hotels.UpdateStatus(ctx, id, domain.HotelRejected, reason); err != nil {
		return nil, apperr.Internal("Failed to reject hotel", err)
	}
	h.Status = domain.HotelRejected
	h.RejectionReason = reason

	s.log.Info("hotel rejected",
		zap.Int64("hotel_id", id), zap.Int64("moderator_id", moderatorID))
	return h, nil
}

func (s *Service) loadPending(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, apperr.Internal("Failed to load hotel", err)
	}
	if h.Status != domain.HotelPending {
		return nil, apperr.Newf(apperr.KindState, "Hotel is already %s", h.Status)
	}
	return h, nil
}
