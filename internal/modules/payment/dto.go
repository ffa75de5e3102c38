package payment

import (
	"time"

	"tourstay/internal/domain"
	"tourstay/internal/gateway"
)

type InitiatePaymentRequest struct {
	BookingID int64                 `json:"booking_id" validate:"required"`
	Method    domain.PaymentMethod  `json:"payment_method" validate:"required"`
	Details   domain.PaymentDetails `json:"payment_details"`
}

// InitiateResponse pairs the stored payment with the blob the client forwards
// to the processor's checkout.
type InitiateResponse struct {
	Payment        *domain.Payment        `json:"payment"`
	GatewayRequest *gateway.ChargeRequest `json:"gateway_request"`
}

// GatewayCallbackRequest is the processor's webhook body. Status is the
// outcome of the charge attempt, not of the payment record.
type GatewayCallbackRequest struct {
	TransactionID        string `json:"transaction_id" validate:"required"`
	Status               string `json:"status" validate:"required,oneof=Success Failed"`
	Gateway              string `json:"gateway"`
	GatewayTransactionID string `json:"gateway_transaction_id"`
	FailureReason        string `json:"failure_reason"`
}

type RefundRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Reason string  `json:"reason"`
}

type VerifyResponse struct {
	TransactionID string               `json:"transaction_id"`
	Status        domain.PaymentStatus `json:"status"`
	Amount        float64              `json:"amount"`
	Currency      string               `json:"currency"`
	Verified      bool                 `json:"verified"`
}

// Invoice is a rendered bill for a successful payment.
type Invoice struct {
	InvoiceNumber      string               `json:"invoice_number"`
	TransactionID      string               `json:"transaction_id"`
	BookingID          string               `json:"booking_id"`
	ConfirmationNumber string               `json:"confirmation_number"`
	Guest              domain.GuestDetails  `json:"guest"`
	CheckInDate        time.Time            `json:"check_in_date"`
	CheckOutDate       time.Time            `json:"check_out_date"`
	RoomCharges        float64              `json:"room_charges"`
	TaxesAndFees       float64              `json:"taxes_and_fees"`
	TotalPaid          float64              `json:"total_paid"`
	Currency           string               `json:"currency"`
	Method             domain.PaymentMethod `json:"payment_method"`
	IssuedAt           time.Time            `json:"issued_at"`
}
