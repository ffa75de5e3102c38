package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "Checked-In"
	BookingCheckedOut BookingStatus = "Checked-Out"
	BookingCancelled  BookingStatus = "Cancelled"
	BookingNoShow     BookingStatus = "No-Show"
)

// bookingTransitions is the full lifecycle graph. No-Show is declared but has
// no inbound edge: no current operation may enter it.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn:  {BookingCheckedOut},
	BookingCheckedOut: {},
	BookingCancelled:  {},
	BookingNoShow:     {},
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool { return len(bookingTransitions[s]) == 0 }

type BookingPaymentStatus string

const (
	BookingUnpaid        BookingPaymentStatus = "Unpaid"
	BookingPartiallyPaid BookingPaymentStatus = "Partial"
	BookingPaid          BookingPaymentStatus = "Paid"
	BookingRefunded      BookingPaymentStatus = "Refunded"
)

// BookingRoom is one room-selection line. Prices are frozen at booking time
// and never recomputed from the current room-type rate.
type BookingRoom struct {
	ID         int64   `json:"id" gorm:"primaryKey"`
	BookingID  int64   `json:"-" gorm:"index;not null"`
	RoomTypeID int64   `json:"room_type_id" gorm:"not null"`
	RoomName   string  `json:"room_name"`
	Quantity   int     `json:"quantity" gorm:"not null" validate:"required,gte=1"`
	BasePrice  float64 `json:"base_price"`
	FinalPrice float64 `json:"final_price"`
}

func (BookingRoom) TableName() string { return "booking_rooms" }

type GuestDetails struct {
	FirstName string `json:"first_name" gorm:"column:guest_first_name" validate:"required"`
	LastName  string `json:"last_name" gorm:"column:guest_last_name" validate:"required"`
	Email     string `json:"email" gorm:"column:guest_email" validate:"required,email"`
	Phone     string `json:"phone" gorm:"column:guest_phone" validate:"required"`
	Address   string `json:"address,omitempty" gorm:"column:guest_address"`
	City      string `json:"city,omitempty" gorm:"column:guest_city"`
	Country   string `json:"country,omitempty" gorm:"column:guest_country"`
}

type BookingPricing struct {
	RoomCharges   float64 `json:"room_charges" gorm:"column:room_charges"`
	TaxesAndFees  float64 `json:"taxes_and_fees" gorm:"column:taxes_and_fees"`
	TotalPrice    float64 `json:"total_price" gorm:"column:total_price"`
	PerNightPrice float64 `json:"per_night_price" gorm:"column:per_night_price"`
}

type CancelledBy string

const (
	CancelledByUser  CancelledBy = "User"
	CancelledByAdmin CancelledBy = "Admin"
)

// Cancellation is populated once, when the booking enters Cancelled.
// CancelledAt is the presence marker.
type Cancellation struct {
	Reason       string      `json:"reason,omitempty" gorm:"column:cancel_reason;type:text"`
	CancelledAt  *time.Time  `json:"cancelled_at,omitempty" gorm:"column:cancelled_at"`
	CancelledBy  CancelledBy `json:"cancelled_by,omitempty" gorm:"column:cancelled_by"`
	RefundAmount float64     `json:"refund_amount" gorm:"column:cancel_refund_amount"`
	RefundStatus string      `json:"refund_status,omitempty" gorm:"column:cancel_refund_status"`
}

// BookingModification is an append-only audit entry for guest-detail and
// special-request updates.
type BookingModification struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	BookingID  int64     `json:"-" gorm:"index;not null"`
	ModifiedAt time.Time `json:"modified_at"`
	ModifiedBy int64     `json:"modified_by"`
	Changes    string    `json:"changes" gorm:"type:text"`
}

func (BookingModification) TableName() string { return "booking_modifications" }

type Booking struct {
	ID                 int64                `json:"id" gorm:"primaryKey"`
	BookingID          string               `json:"booking_id" gorm:"uniqueIndex;not null"`
	ConfirmationNumber string               `json:"confirmation_number" gorm:"uniqueIndex;not null"`
	UserID             int64                `json:"user_id" gorm:"index;not null"`
	HotelID            int64                `json:"hotel_id" gorm:"index;not null"`
	Rooms              []BookingRoom        `json:"rooms" gorm:"foreignKey:BookingID"`
	Guest              GuestDetails         `json:"guest_details" gorm:"embedded"`
	CheckInDate        time.Time            `json:"check_in_date" gorm:"not null"`
	CheckOutDate       time.Time            `json:"check_out_date" gorm:"not null"`
	NumberOfNights     int                  `json:"number_of_nights"`
	NumberOfGuests     int                  `json:"number_of_guests" gorm:"default:1"`
	Pricing            BookingPricing       `json:"pricing" gorm:"embedded"`
	Status             BookingStatus        `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	PaymentStatus      BookingPaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'Unpaid'"`
	PaymentID          *int64               `json:"payment_id,omitempty" gorm:"index"`
	Cancellation       Cancellation         `json:"cancellation" gorm:"embedded"`
	Policy             CancellationPolicy   `json:"cancellation_policy" gorm:"embedded"`
	SpecialRequests    string               `json:"special_requests,omitempty" gorm:"type:text"`
	Modifications      []BookingModification `json:"modifications,omitempty" gorm:"foreignKey:BookingID"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
	DeletedAt          *time.Time           `json:"-" gorm:"index"`
}

func (Booking) TableName() string { return "bookings" }
