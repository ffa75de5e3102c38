package payment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourstay/internal/domain"
	"tourstay/internal/pkg/apperr"
	"tourstay/internal/pkg/identifier"
	"tourstay/internal/repository"
)

type Service struct {
	payments PaymentRepository
	bookings BookingStore
	gateway  Gateway
	log      *zap.Logger

	now func() time.Time
}

func NewService(payments PaymentRepository, bookings BookingStore, gw Gateway, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		gateway:  gw,
		log:      log,
		now:      time.Now,
	}
}

// Initiate creates a payment in Initiated for the booking's frozen total and
// registers the charge with the gateway. The returned blob is what the client
// forwards to checkout; the webhook callback later settles the outcome.
func (s *Service) Initiate(ctx context.Context, userID int64, req InitiatePaymentRequest) (*InitiateResponse, error) {
	b, err := s.loadBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, apperr.Forbidden("You do not have access to this booking")
	}
	if b.Status == domain.BookingCancelled {
		return nil, apperr.State("Cannot pay for a cancelled booking")
	}
	if b.PaymentStatus == domain.BookingPaid {
		return nil, ErrAlreadyPaid
	}
	if !req.Method.Valid() {
		return nil, apperr.Validation("Invalid payment method")
	}

	p := &domain.Payment{
		TransactionID: identifier.TransactionID(),
		BookingID:     b.ID,
		UserID:        userID,
		Amount:        b.Pricing.TotalPrice,
		Currency:      "INR",
		Method:        req.Method,
		Details:       req.Details,
		Status:        domain.PaymentInitiated,
		Refund:        domain.Refund{Status: domain.RefundNotInitiated},
		MaxRetries:    domain.DefaultMaxRetries,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, apperr.Internal("Failed to create payment", err)
	}

	charge, err := s.gateway.Register(p.TransactionID, p.Amount, p.Currency, "Hotel booking "+b.BookingID)
	if err != nil {
		return nil, apperr.Internal("Failed to register charge with gateway", err)
	}

	s.log.Info("payment initiated",
		zap.String("transaction_id", p.TransactionID),
		zap.String("booking_id", b.BookingID),
		zap.Float64("amount", p.Amount),
	)
	return &InitiateResponse{Payment: p, GatewayRequest: charge}, nil
}

// HandleCallback settles a gateway outcome. Success is applied exactly once;
// redeliveries of an already-applied outcome return the stored payment without
// writing. A Failed outcome never downgrades a Success.
func (s *Service) HandleCallback(ctx context.Context, req GatewayCallbackRequest, raw []byte) (*domain.Payment, error) {
	p, err := s.payments.GetByTransactionID(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, apperr.Internal("Failed to load payment", err)
	}

	if _, err := s.gateway.RecordCallback(req.TransactionID, raw); err != nil {
		s.log.Warn("gateway callback could not be recorded",
			zap.String("transaction_id", req.TransactionID), zap.Error(err))
	}

	if req.Status == "Success" {
		return s.settleSuccess(ctx, p, req, raw)
	}
	return s.settleFailure(ctx, p, req)
}

func (s *Service) settleSuccess(ctx context.Context, p *domain.Payment, req GatewayCallbackRequest, raw []byte) (*domain.Payment, error) {
	changed, err := s.payments.MarkSuccessIdempotent(ctx, p.TransactionID, req.Gateway, req.GatewayTransactionID, string(raw))
	if err != nil {
		return nil, apperr.Internal("Failed to settle payment", err)
	}
	if !changed {
		return p, nil
	}

	p.Status = domain.PaymentSuccess
	p.Gateway = domain.GatewayResponse{
		Gateway:              req.Gateway,
		GatewayTransactionID: req.GatewayTransactionID,
		Response:             string(raw),
	}
	p.FailureReason = ""

	b, err := s.loadBooking(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	b.PaymentStatus = domain.BookingPaid
	pid := p.ID
	b.PaymentID = &pid
	if b.Status.CanTransition(domain.BookingConfirmed) {
		b.Status = domain.BookingConfirmed
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, apperr.Internal("Failed to confirm booking after payment", err)
	}

	s.log.Info("payment settled",
		zap.String("transaction_id", p.TransactionID),
		zap.String("booking_id", b.BookingID),
	)
	return p, nil
}

func (s *Service) settleFailure(ctx context.Context, p *domain.Payment, req GatewayCallbackRequest) (*domain.Payment, error) {
	if p.Status == domain.PaymentSuccess {
		return p, nil
	}

	p.Status = domain.PaymentFailed
	p.FailureReason = req.FailureReason
	p.Gateway = domain.GatewayResponse{
		Gateway:              req.Gateway,
		GatewayTransactionID: req.GatewayTransactionID,
		Response:             p.Gateway.Response,
	}
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, apperr.Internal("Failed to record payment failure", err)
	}

	s.log.Warn("payment failed",
		zap.String("transaction_id", p.TransactionID),
		zap.String("reason", req.FailureReason),
	)
	return p, nil
}

// Retry reopens a failed payment for another gateway attempt, up to the
// payment's retry ceiling.
func (s *Service) Retry(ctx context.Context, id, actorID int64, role string) (*InitiateResponse, error) {
	p, err := s.loadOwned(ctx, id, actorID, role)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentFailed {
		return nil, apperr.State("Only failed payments can be retried")
	}
	if p.RetryCount >= p.MaxRetries {
		return nil, ErrRetriesExceeded
	}

	p.RetryCount++
	p.Status = domain.PaymentProcessing
	p.FailureReason = ""
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, apperr.Internal("Failed to retry payment", err)
	}

	charge, err := s.gateway.Register(p.TransactionID, p.Amount, p.Currency, "Hotel booking retry")
	if err != nil {
		return nil, apperr.Internal("Failed to register charge with gateway", err)
	}
	return &InitiateResponse{Payment: p, GatewayRequest: charge}, nil
}

// RequestRefund opens a refund on a successful payment. A zero amount means a
// full refund; partial amounts may not exceed what was paid.
func (s *Service) RequestRefund(ctx context.Context, id, actorID int64, role string, req RefundRequest) (*domain.Payment, error) {
	p, err := s.loadOwned(ctx, id, actorID, role)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentSuccess {
		return nil, ErrNotRefundable
	}
	if p.Refund.Status != domain.RefundNotInitiated {
		return nil, ErrRefundOpen
	}

	amount := req.Amount
	if amount == 0 {
		amount = p.Amount
	}
	if amount < 0 || amount > p.Amount {
		return nil, apperr.Validation("Refund amount exceeds the amount paid")
	}

	s.openRefund(p, amount, req.Reason)
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, apperr.Internal("Failed to request refund", err)
	}
	return p, nil
}

// RefundOnCancellation is the booking side's hook: open a refund without an
// acting user. It refuses quietly when the payment is not refundable.
func (s *Service) RefundOnCancellation(ctx context.Context, paymentID int64, amount float64, reason string) error {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return apperr.Internal("Failed to load payment", err)
	}
	if !p.Refundable() {
		return ErrNotRefundable
	}
	if amount > p.Amount {
		amount = p.Amount
	}

	s.openRefund(p, amount, reason)
	if err := s.payments.Save(ctx, p); err != nil {
		return apperr.Internal("Failed to request refund", err)
	}
	return nil
}

// ProcessRefund completes a pending refund. A full refund moves the payment to
// Refunded, a partial one to Partial; the booking's payment status mirrors it.
func (s *Service) ProcessRefund(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.loadPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Refund.Status != domain.RefundPending {
		return nil, apperr.State("No pending refund on this payment")
	}

	now := s.now().UTC()
	p.Refund.CompletedAt = &now
	if p.Refund.Amount >= p.Amount {
		p.Refund.Status = domain.RefundProcessed
		p.Status = domain.PaymentRefunded
	} else {
		p.Refund.Status = domain.RefundPartial
		p.Status = domain.PaymentPartial
	}
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, apperr.Internal("Failed to process refund", err)
	}

	b, err := s.loadBooking(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.PaymentRefunded {
		b.PaymentStatus = domain.BookingRefunded
	} else {
		b.PaymentStatus = domain.BookingPartiallyPaid
	}
	if b.Cancellation.CancelledAt != nil {
		b.Cancellation.RefundStatus = string(p.Refund.Status)
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, apperr.Internal("Failed to sync booking after refund", err)
	}

	s.log.Info("refund processed",
		zap.String("transaction_id", p.TransactionID),
		zap.String("refund_id", p.Refund.RefundID),
		zap.Float64("amount", p.Refund.Amount),
	)
	return p, nil
}

func (s *Service) Verify(ctx context.Context, txnID string, actorID int64, role string) (*VerifyResponse, error) {
	p, err := s.payments.GetByTransactionID(ctx, txnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, apperr.Internal("Failed to load payment", err)
	}
	if p.UserID != actorID && role != string(domain.RoleAdmin) {
		return nil, ErrNotYours
	}
	return &VerifyResponse{
		TransactionID: p.TransactionID,
		Status:        p.Status,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Verified:      p.Status == domain.PaymentSuccess,
	}, nil
}

func (s *Service) Get(ctx context.Context, id, actorID int64, role string) (*domain.Payment, error) {
	return s.loadOwned(ctx, id, actorID, role)
}

func (s *Service) ListMine(ctx context.Context, userID int64, page, limit int) ([]domain.Payment, int64, error) {
	items, total, err := s.payments.GetByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list payments", err)
	}
	return items, total, nil
}

// Invoice renders a bill for a successful payment from the booking's frozen
// pricing breakdown.
func (s *Service) Invoice(ctx context.Context, id, actorID int64, role string) (*Invoice, error) {
	p, err := s.loadOwned(ctx, id, actorID, role)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentSuccess && p.Status != domain.PaymentRefunded && p.Status != domain.PaymentPartial {
		return nil, apperr.State("Invoice is available only for settled payments")
	}

	b, err := s.loadBooking(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	return &Invoice{
		InvoiceNumber:      "INV-" + p.TransactionID,
		TransactionID:      p.TransactionID,
		BookingID:          b.BookingID,
		ConfirmationNumber: b.ConfirmationNumber,
		Guest:              b.Guest,
		CheckInDate:        b.CheckInDate,
		CheckOutDate:       b.CheckOutDate,
		RoomCharges:        b.Pricing.RoomCharges,
		TaxesAndFees:       b.Pricing.TaxesAndFees,
		TotalPaid:          p.Amount,
		Currency:           p.Currency,
		Method:             p.Method,
		IssuedAt:           s.now().UTC(),
	}, nil
}

func (s *Service) Stats(ctx context.Context) (*repository.PaymentStats, error) {
	stats, err := s.payments.Stats(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to compute payment stats", err)
	}
	return stats, nil
}

func (s *Service) openRefund(p *domain.Payment, amount float64, reason string) {
	now := s.now().UTC()
	p.Refund = domain.Refund{
		RefundID:    identifier.RefundID(),
		Amount:      amount,
		Status:      domain.RefundPending,
		Reason:      reason,
		InitiatedAt: &now,
	}
}

func (s *Service) loadPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, apperr.Internal("Failed to load payment", err)
	}
	return p, nil
}

func (s *Service) loadOwned(ctx context.Context, id, actorID int64, role string) (*domain.Payment, error) {
	p, err := s.loadPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != actorID && role != string(domain.RoleAdmin) {
		return nil, ErrNotYours
	}
	return p, nil
}

func (s *Service) loadBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperr.Internal("Failed to load booking", err)
	}
	return b, nil
}
