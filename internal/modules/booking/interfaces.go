package booking

import (
	"context"

	"tourstay/internal/domain"
	"tourstay/internal/modules/inventory"
	"tourstay/internal/repository"
)

// BookingRepository defines the persistence surface for bookings
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByConfirmation(ctx context.Context, number string) (*domain.Booking, error)
	GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, int64, error)
	GetAll(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error)
	GetByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
	AppendModification(ctx context.Context, m *domain.BookingModification) error
	SoftDelete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*repository.BookingStats, error)
}

type RoomTypeReader interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
}

type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

// InventoryLedger is the all-or-nothing reserve/release surface.
type InventoryLedger interface {
	ReserveAll(ctx context.Context, lines []inventory.Line) error
	ReleaseAll(ctx context.Context, lines []inventory.Line)
}

// RefundRequester asks the payment module to open a refund after a
// cancellation. The payment side decides whether the payment is refundable.
type RefundRequester interface {
	RefundOnCancellation(ctx context.Context, paymentID int64, amount float64, reason string) error
}
