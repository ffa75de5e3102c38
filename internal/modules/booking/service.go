package booking

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourstay/internal/domain"
	"tourstay/internal/modules/inventory"
	"tourstay/internal/modules/pricing"
	"tourstay/internal/pkg/apperr"
	"tourstay/internal/pkg/identifier"
	"tourstay/internal/repository"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomTypeReader
	hotels   HotelReader
	ledger   InventoryLedger
	refunds  RefundRequester
	log      *zap.Logger

	now func() time.Time
}

func NewService(bookings BookingRepository, rooms RoomTypeReader, hotels HotelReader, ledger InventoryLedger, refunds RefundRequester, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		hotels:   hotels,
		ledger:   ledger,
		refunds:  refunds,
		log:      log,
		now:      time.Now,
	}
}

// Create reserves inventory for every requested line, freezes the nightly
// rates and persists the booking in Pending. If persisting fails after the
// reservation succeeded, the reserved rooms are released again.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	now := s.now().UTC()

	if !req.CheckOutDate.After(req.CheckInDate) {
		return nil, apperr.Validation("Check-out date must be after check-in date")
	}
	if req.CheckInDate.Before(now.Truncate(24 * time.Hour)) {
		return nil, apperr.Validation("Check-in date cannot be in the past")
	}

	hotel, err := s.hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, apperr.Internal("Failed to load hotel", err)
	}
	if hotel.Status != domain.HotelApproved {
		return nil, ErrHotelClosed
	}

	nights := pricing.Nights(req.CheckInDate, req.CheckOutDate)

	var (
		bookingRooms []domain.BookingRoom
		priceLines   []pricing.Line
		invLines     []inventory.Line
	)
	for _, sel := range req.Rooms {
		rt, err := s.rooms.GetByID(ctx, sel.RoomTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Newf(apperr.KindNotFound, "Room type %d not found", sel.RoomTypeID)
			}
			return nil, apperr.Internal("Failed to load room type", err)
		}
		if rt.HotelID != req.HotelID {
			return nil, apperr.Newf(apperr.KindValidation, "Room type %d does not belong to this hotel", sel.RoomTypeID)
		}
		if !rt.IsActive {
			return nil, apperr.Newf(apperr.KindState, "Room type %q is not bookable", rt.Name)
		}

		rate := pricing.EffectiveNightlyRate(rt, now)
		bookingRooms = append(bookingRooms, domain.BookingRoom{
			RoomTypeID: rt.ID,
			RoomName:   rt.Name,
			Quantity:   sel.Quantity,
			BasePrice:  rt.BasePrice,
			FinalPrice: pricing.LineTotal(rate, nights, sel.Quantity),
		})
		priceLines = append(priceLines, pricing.Line{Rate: rate, Quantity: sel.Quantity})
		invLines = append(invLines, inventory.Line{RoomTypeID: rt.ID, Quantity: sel.Quantity})
	}

	if err := s.ledger.ReserveAll(ctx, invLines); err != nil {
		if errors.Is(err, inventory.ErrInsufficient) {
			return nil, ErrNoRooms
		}
		return nil, apperr.Internal("Failed to reserve rooms", err)
	}

	quote := pricing.QuoteStay(priceLines, nights)
	guests := req.NumberOfGuests
	if guests < 1 {
		guests = 1
	}

	b := &domain.Booking{
		BookingID:          identifier.BookingID(),
		ConfirmationNumber: identifier.ConfirmationNumber(),
		UserID:             userID,
		HotelID:            req.HotelID,
		Rooms:              bookingRooms,
		Guest:              req.Guest,
		CheckInDate:        req.CheckInDate,
		CheckOutDate:       req.CheckOutDate,
		NumberOfNights:     nights,
		NumberOfGuests:     guests,
		Pricing: domain.BookingPricing{
			RoomCharges:   quote.RoomCharges,
			TaxesAndFees:  quote.TaxesAndFees,
			TotalPrice:    quote.TotalPrice,
			PerNightPrice: quote.PerNightPrice,
		},
		Status:          domain.BookingPending,
		PaymentStatus:   domain.BookingUnpaid,
		Cancellation:    domain.Cancellation{RefundStatus: string(domain.RefundNotInitiated)},
		Policy:          hotel.CancellationPolicy,
		SpecialRequests: req.SpecialRequests,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		s.ledger.ReleaseAll(ctx, invLines)
		return nil, apperr.Internal("Failed to create booking", err)
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.BookingID),
		zap.Int64("user_id", userID),
		zap.Int64("hotel_id", req.HotelID),
		zap.Float64("total_price", b.Pricing.TotalPrice),
	)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id, actorID int64, role string) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canView(ctx, b, actorID, role); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetByConfirmation(ctx context.Context, number string, actorID int64, role string) (*domain.Booking, error) {
	b, err := s.bookings.GetByConfirmation(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperr.Internal("Failed to load booking", err)
	}
	if err := s.canView(ctx, b, actorID, role); err != nil {
		return nil, err
	}
	return b, nil
}

// ListMine returns the caller's bookings; admins see everyone's.
func (s *Service) ListMine(ctx context.Context, actorID int64, role string, page, limit int) ([]domain.Booking, int64, error) {
	offset := (page - 1) * limit
	var (
		items []domain.Booking
		total int64
		err   error
	)
	if role == string(domain.RoleAdmin) {
		items, total, err = s.bookings.GetAll(ctx, limit, offset)
	} else {
		items, total, err = s.bookings.GetByUser(ctx, actorID, limit, offset)
	}
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list bookings", err)
	}
	return items, total, nil
}

// ListByHotel returns a hotel's bookings for its owner or an admin.
func (s *Service) ListByHotel(ctx context.Context, hotelID, actorID int64, role string) ([]domain.Booking, error) {
	if role != string(domain.RoleAdmin) {
		owns, err := s.ownsHotel(ctx, hotelID, actorID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, apperr.Forbidden("You do not manage this hotel")
		}
	}
	items, err := s.bookings.GetByHotel(ctx, hotelID)
	if err != nil {
		return nil, apperr.Internal("Failed to list hotel bookings", err)
	}
	return items, nil
}

// Update changes guest details or special requests and appends an audit entry
// describing what changed. Only live bookings can be modified.
func (s *Service) Update(ctx context.Context, id, actorID int64, role string, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != actorID && role != string(domain.RoleAdmin) {
		return nil, ErrNotYours
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, apperr.Newf(apperr.KindState, "Cannot modify a %s booking", b.Status)
	}

	changes := map[string]any{}
	if req.Guest != nil {
		changes["guest_details"] = *req.Guest
		b.Guest = *req.Guest
	}
	if req.SpecialRequests != nil {
		changes["special_requests"] = *req.SpecialRequests
		b.SpecialRequests = *req.SpecialRequests
	}
	if len(changes) == 0 {
		return nil, apperr.Validation("Nothing to update")
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, apperr.Internal("Failed to update booking", err)
	}

	raw, _ := json.Marshal(changes)
	mod := &domain.BookingModification{
		BookingID:  b.ID,
		ModifiedAt: s.now().UTC(),
		ModifiedBy: actorID,
		Changes:    string(raw),
	}
	if err := s.bookings.AppendModification(ctx, mod); err != nil {
		s.log.Error("failed to append booking modification",
			zap.Int64("booking_id", b.ID), zap.Error(err))
	}
	return b, nil
}

// Cancel moves the booking to Cancelled, releases its rooms and, when the
// cancellation window allows a refund and a payment is attached, asks the
// payment side to open one. The window rule: the stay is fully refundable when
// at least FreeCancelDays whole days remain before check-in.
func (s *Service) Cancel(ctx context.Context, id, actorID int64, role string, reason string) (*CancelResult, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != actorID && role != string(domain.RoleAdmin) {
		return nil, ErrNotYours
	}
	if !b.Status.CanTransition(domain.BookingCancelled) {
		return nil, apperr.Newf(apperr.KindState, "Cannot cancel a %s booking", b.Status)
	}

	now := s.now().UTC()
	refundable := daysUntil(now, b.CheckInDate) >= b.Policy.FreeCancelDays

	var refundAmount float64
	message := "Booking cancelled. The booking is outside the free cancellation window; no refund will be issued."
	refundStatus := string(domain.RefundProcessed)
	if refundable {
		refundAmount = b.Pricing.TotalPrice
		message = "Booking cancelled. A full refund will be processed."
		refundStatus = string(domain.RefundPending)
	}

	cancelledBy := domain.CancelledByUser
	if role == string(domain.RoleAdmin) {
		cancelledBy = domain.CancelledByAdmin
	}

	b.Status = domain.BookingCancelled
	b.Cancellation = domain.Cancellation{
		Reason:       reason,
		CancelledAt:  &now,
		CancelledBy:  cancelledBy,
		RefundAmount: refundAmount,
		RefundStatus: refundStatus,
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, apperr.Internal("Failed to cancel booking", err)
	}

	lines := make([]inventory.Line, 0, len(b.Rooms))
	for _, room := range b.Rooms {
		lines = append(lines, inventory.Line{RoomTypeID: room.RoomTypeID, Quantity: room.Quantity})
	}
	s.ledger.ReleaseAll(ctx, lines)

	if b.PaymentID != nil && refundAmount > 0 {
		if err := s.refunds.RefundOnCancellation(ctx, *b.PaymentID, refundAmount, "Booking cancelled"); err != nil {
			s.log.Error("refund request after cancellation failed",
				zap.String("booking_id", b.BookingID),
				zap.Int64("payment_id", *b.PaymentID),
				zap.Error(err),
			)
		}
	}

	s.log.Info("booking cancelled",
		zap.String("booking_id", b.BookingID),
		zap.Float64("refund_amount", refundAmount),
		zap.String("cancelled_by", string(cancelledBy)),
	)
	return &CancelResult{Booking: b, RefundAmount: refundAmount, Message: message}, nil
}

// CheckIn is performed at the desk by the hotel owner or an admin, on a
// Confirmed booking, no earlier than the check-in date.
func (s *Service) CheckIn(ctx context.Context, id, actorID int64, role string) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canManage(ctx, b, actorID, role); err != nil {
		return nil, err
	}
	if !b.Status.CanTransition(domain.BookingCheckedIn) {
		return nil, apperr.Newf(apperr.KindState, "Cannot check in a %s booking", b.Status)
	}
	if s.now().UTC().Before(b.CheckInDate) {
		return nil, apperr.State("Check-in date has not arrived yet")
	}

	b.Status = domain.BookingCheckedIn
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, apperr.Internal("Failed to check in booking", err)
	}
	return b, nil
}

func (s *Service) CheckOut(ctx context.Context, id, actorID int64, role string) (*domain.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canManage(ctx, b, actorID, role); err != nil {
		return nil, err
	}
	if !b.Status.CanTransition(domain.BookingCheckedOut) {
		return nil, apperr.Newf(apperr.KindState, "Cannot check out a %s booking", b.Status)
	}

	b.Status = domain.BookingCheckedOut
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, apperr.Internal("Failed to check out booking", err)
	}
	return b, nil
}

// Delete soft-deletes a booking record. Admin only; the route guard enforces
// the role, this is a second check.
func (s *Service) Delete(ctx context.Context, id int64, role string) error {
	if role != string(domain.RoleAdmin) {
		return apperr.Forbidden("Admin access required")
	}
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.bookings.SoftDelete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete booking", err)
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (*repository.BookingStats, error) {
	stats, err := s.bookings.Stats(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to compute booking stats", err)
	}
	return stats, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperr.Internal("Failed to load booking", err)
	}
	return b, nil
}

// canView: the guest who booked, an admin, or the owner of the booked hotel.
func (s *Service) canView(ctx context.Context, b *domain.Booking, actorID int64, role string) error {
	if b.UserID == actorID || role == string(domain.RoleAdmin) {
		return nil
	}
	if role == string(domain.RoleHotelOwner) {
		owns, err := s.ownsHotel(ctx, b.HotelID, actorID)
		if err != nil {
			return err
		}
		if owns {
			return nil
		}
	}
	return ErrNotYours
}

// canManage guards desk operations: hotel owner of the booked hotel or admin.
func (s *Service) canManage(ctx context.Context, b *domain.Booking, actorID int64, role string) error {
	if role == string(domain.RoleAdmin) {
		return nil
	}
	if role == string(domain.RoleHotelOwner) {
		owns, err := s.ownsHotel(ctx, b.HotelID, actorID)
		if err != nil {
			return err
		}
		if owns {
			return nil
		}
	}
	return apperr.Forbidden("You do not manage this hotel")
}

func (s *Service) ownsHotel(ctx context.Context, hotelID, actorID int64) (bool, error) {
	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrHotelNotFound
		}
		return false, apperr.Internal("Failed to load hotel", err)
	}
	return hotel.OwnerID == actorID, nil
}

// daysUntil counts the whole days remaining before the target, rounding any
// partial day up.
func daysUntil(now, target time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}
