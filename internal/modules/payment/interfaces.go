package payment

import (
	"context"

	"tourstay/internal/domain"
	"tourstay/internal/gateway"
	"tourstay/internal/repository"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByTransactionID(ctx context.Context, txnID string) (*domain.Payment, error)
	GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, int64, error)
	Save(ctx context.Context, p *domain.Payment) error
	MarkSuccessIdempotent(ctx context.Context, txnID, gateway, gatewayTxnID, rawResponse string) (bool, error)
	Stats(ctx context.Context) (*repository.PaymentStats, error)
}

// BookingStore is the slice of the booking repository the payment side needs
// to keep booking payment state in sync.
type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
}

// Gateway is the simulated processor surface.
type Gateway interface {
	Register(txnID string, amount float64, currency, description string) (*gateway.ChargeRequest, error)
	RecordCallback(txnID string, delivery []byte) (bool, error)
}
