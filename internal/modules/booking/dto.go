package booking

import (
	"time"

	"tourstay/internal/domain"
)

type RoomSelection struct {
	RoomTypeID int64 `json:"room_type_id" validate:"required"`
	Quantity   int   `json:"quantity" validate:"required,gte=1"`
}

type CreateBookingRequest struct {
	HotelID         int64               `json:"hotel_id" validate:"required"`
	Rooms           []RoomSelection     `json:"rooms" validate:"required,min=1,dive"`
	Guest           domain.GuestDetails `json:"guest_details" validate:"required"`
	NumberOfGuests  int                 `json:"number_of_guests" validate:"gte=0"`
	CheckInDate     time.Time           `json:"check_in_date" validate:"required"`
	CheckOutDate    time.Time           `json:"check_out_date" validate:"required"`
	SpecialRequests string              `json:"special_requests"`
}

// UpdateBookingRequest carries the mutable fields. Nil means "leave as is".
type UpdateBookingRequest struct {
	Guest           *domain.GuestDetails `json:"guest_details"`
	SpecialRequests *string              `json:"special_requests"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelResult is what the cancel endpoint returns alongside the booking.
type CancelResult struct {
	Booking      *domain.Booking `json:"booking"`
	RefundAmount float64         `json:"refund_amount"`
	Message      string          `json:"message"`
}
