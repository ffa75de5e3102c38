package booking

import "tourstay/internal/pkg/apperr"

var (
	ErrBookingNotFound = apperr.NotFound("Booking not found")
	ErrHotelNotFound   = apperr.NotFound("Hotel not found")
	ErrNotYours        = apperr.Forbidden("You do not have access to this booking")
	ErrHotelClosed     = apperr.State("Hotel is not open for bookings")
	ErrNoRooms         = apperr.State("Not enough rooms available for the selected dates")
)
