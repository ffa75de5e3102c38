package catalog

import (
	"context"

	"tourstay/internal/domain"
	"tourstay/internal/repository"
)

type HotelRepository interface {
	Create(ctx context.Context, h *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	Update(ctx context.Context, h *domain.Hotel) error
	GetAll(ctx context.Context, f repository.HotelFilters) ([]domain.Hotel, int64, error)
	SoftDelete(ctx context.Context, id int64) error
}

type RoomTypeRepository interface {
	Create(ctx context.Context, rt *domain.RoomType) error
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
	GetByHotel(ctx context.Context, hotelID int64) ([]domain.RoomType, error)
	Update(ctx context.Context, rt *domain.RoomType) error
	SoftDelete(ctx context.Context, id int64) error
}
