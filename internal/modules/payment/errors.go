package payment

import "tourstay/internal/pkg/apperr"

var (
	ErrPaymentNotFound = apperr.NotFound("Payment not found")
	ErrBookingNotFound = apperr.NotFound("Booking not found")
	ErrNotYours        = apperr.Forbidden("You do not have access to this payment")
	ErrAlreadyPaid     = apperr.State("Booking is already paid")
	ErrNotRefundable   = apperr.State("Only successful payments can be refunded")
	ErrRefundOpen      = apperr.State("A refund has already been initiated for this payment")
	ErrRetriesExceeded = apperr.State("Maximum retry attempts exceeded")
)
