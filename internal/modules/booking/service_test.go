package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tourstay/internal/domain"
	"tourstay/internal/modules/inventory"
	"tourstay/internal/pkg/apperr"
	"tourstay/internal/repository"
)

// Mocks

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByConfirmation(ctx context.Context, number string) (*domain.Booking, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) GetByHotel(ctx context.Context, hotelID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) AppendModification(ctx context.Context, mod *domain.BookingModification) error {
	args := m.Called(ctx, mod)
	return args.Error(0)
}

func (m *MockBookingRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) Stats(ctx context.Context) (*repository.BookingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BookingStats), args.Error(1)
}

type MockRoomTypeReader struct {
	mock.Mock
}

func (m *MockRoomTypeReader) GetByID(ctx context.Context, id int64) (*domain.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomType), args.Error(1)
}

type MockHotelReader struct {
	mock.Mock
}

func (m *MockHotelReader) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ReserveAll(ctx context.Context, lines []inventory.Line) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockLedger) ReleaseAll(ctx context.Context, lines []inventory.Line) {
	m.Called(ctx, lines)
}

type MockRefundRequester struct {
	mock.Mock
}

func (m *MockRefundRequester) RefundOnCancellation(ctx context.Context, paymentID int64, amount float64, reason string) error {
	args := m.Called(ctx, paymentID, amount, reason)
	return args.Error(0)
}

// Fixtures

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestService() (*Service, *MockBookingRepository, *MockRoomTypeReader, *MockHotelReader, *MockLedger, *MockRefundRequester) {
	bookings := new(MockBookingRepository)
	rooms := new(MockRoomTypeReader)
	hotels := new(MockHotelReader)
	ledger := new(MockLedger)
	refunds := new(MockRefundRequester)

	svc := NewService(bookings, rooms, hotels, ledger, refunds, nil)
	svc.now = func() time.Time { return testNow }
	return svc, bookings, rooms, hotels, ledger, refunds
}

func approvedHotel() *domain.Hotel {
	return &domain.Hotel{
		ID:      10,
		OwnerID: 77,
		Status:  domain.HotelApproved,
		CancellationPolicy: domain.CancellationPolicy{
			FreeCancelDays: 3,
		},
	}
}

func createReq() CreateBookingRequest {
	return CreateBookingRequest{
		HotelID: 10,
		Rooms:   []RoomSelection{{RoomTypeID: 5, Quantity: 2}},
		Guest: domain.GuestDetails{
			FirstName: "Ananya", LastName: "Rao",
			Email: "ananya@gmail.com", Phone: "+91 98765 43210",
		},
		CheckInDate:  testNow.AddDate(0, 0, 10),
		CheckOutDate: testNow.AddDate(0, 0, 12),
	}
}

// Tests

func TestCreateBookingFreezesPricesAndReserves(t *testing.T) {
	svc, bookings, rooms, hotels, ledger, _ := newTestService()

	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)
	rooms.On("GetByID", mock.Anything, int64(5)).Return(&domain.RoomType{
		ID: 5, HotelID: 10, Name: "Deluxe", BasePrice: 1500, IsActive: true,
	}, nil)
	ledger.On("ReserveAll", mock.Anything, []inventory.Line{{RoomTypeID: 5, Quantity: 2}}).Return(nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.Create(context.Background(), 1, createReq())

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.BookingUnpaid, b.PaymentStatus)
	assert.Equal(t, 2, b.NumberOfNights)
	assert.Equal(t, 6000.0, b.Pricing.RoomCharges)
	assert.Equal(t, 1080.0, b.Pricing.TaxesAndFees)
	assert.Equal(t, 7080.0, b.Pricing.TotalPrice)
	assert.Equal(t, 1500.0, b.Rooms[0].BasePrice)
	assert.Equal(t, 3, b.Policy.FreeCancelDays)
	assert.NotEmpty(t, b.BookingID)
	assert.NotEmpty(t, b.ConfirmationNumber)
	ledger.AssertExpectations(t)
}

func TestCreateBookingAppliesActiveDiscount(t *testing.T) {
	svc, bookings, rooms, hotels, ledger, _ := newTestService()

	from := testNow.AddDate(0, 0, -1)
	to := testNow.AddDate(0, 0, 1)
	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)
	rooms.On("GetByID", mock.Anything, int64(5)).Return(&domain.RoomType{
		ID: 5, HotelID: 10, BasePrice: 2000, IsActive: true,
		Discount: domain.Discount{Percentage: 25, ValidFrom: &from, ValidTo: &to},
	}, nil)
	ledger.On("ReserveAll", mock.Anything, mock.Anything).Return(nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.Create(context.Background(), 1, createReq())

	assert.NoError(t, err)
	// discounted rate 1500 frozen on the line, base kept for reference
	assert.Equal(t, 2000.0, b.Rooms[0].BasePrice)
	assert.Equal(t, 6000.0, b.Rooms[0].FinalPrice)
}

func TestCreateBookingInsufficientInventory(t *testing.T) {
	svc, bookings, rooms, hotels, ledger, _ := newTestService()

	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)
	rooms.On("GetByID", mock.Anything, int64(5)).Return(&domain.RoomType{
		ID: 5, HotelID: 10, BasePrice: 1500, IsActive: true,
	}, nil)
	ledger.On("ReserveAll", mock.Anything, mock.Anything).Return(inventory.ErrInsufficient)

	_, err := svc.Create(context.Background(), 1, createReq())

	assert.ErrorIs(t, err, ErrNoRooms)
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingReleasesWhenPersistFails(t *testing.T) {
	svc, bookings, rooms, hotels, ledger, _ := newTestService()

	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)
	rooms.On("GetByID", mock.Anything, int64(5)).Return(&domain.RoomType{
		ID: 5, HotelID: 10, BasePrice: 1500, IsActive: true,
	}, nil)
	lines := []inventory.Line{{RoomTypeID: 5, Quantity: 2}}
	ledger.On("ReserveAll", mock.Anything, lines).Return(nil)
	ledger.On("ReleaseAll", mock.Anything, lines).Return()
	bookings.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := svc.Create(context.Background(), 1, createReq())

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	ledger.AssertCalled(t, "ReleaseAll", mock.Anything, lines)
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	req := createReq()
	req.CheckOutDate = req.CheckInDate
	_, err := svc.Create(context.Background(), 1, req)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	req = createReq()
	req.CheckInDate = testNow.AddDate(0, 0, -2)
	_, err = svc.Create(context.Background(), 1, req)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateBookingUnapprovedHotel(t *testing.T) {
	svc, _, _, hotels, _, _ := newTestService()

	pending := approvedHotel()
	pending.Status = domain.HotelPending
	hotels.On("GetByID", mock.Anything, int64(10)).Return(pending, nil)

	_, err := svc.Create(context.Background(), 1, createReq())
	assert.ErrorIs(t, err, ErrHotelClosed)
}

func TestCreateBookingRoomFromAnotherHotel(t *testing.T) {
	svc, _, rooms, hotels, _, _ := newTestService()

	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)
	rooms.On("GetByID", mock.Anything, int64(5)).Return(&domain.RoomType{
		ID: 5, HotelID: 99, BasePrice: 1500, IsActive: true,
	}, nil)

	_, err := svc.Create(context.Background(), 1, createReq())
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func cancellableBooking() *domain.Booking {
	return &domain.Booking{
		ID:        999,
		BookingID: "BK1",
		UserID:    1,
		HotelID:   10,
		Status:    domain.BookingConfirmed,
		Rooms: []domain.BookingRoom{
			{RoomTypeID: 5, Quantity: 2},
		},
		Pricing:     domain.BookingPricing{TotalPrice: 7080},
		CheckInDate: testNow.AddDate(0, 0, 10),
		Policy:      domain.CancellationPolicy{FreeCancelDays: 3},
	}
}

func TestCancelInsideWindowRefundsAndReleases(t *testing.T) {
	svc, bookings, _, _, ledger, refunds := newTestService()

	b := cancellableBooking()
	pid := int64(42)
	b.PaymentID = &pid
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)
	ledger.On("ReleaseAll", mock.Anything, []inventory.Line{{RoomTypeID: 5, Quantity: 2}}).Return()
	refunds.On("RefundOnCancellation", mock.Anything, int64(42), 7080.0, "Booking cancelled").Return(nil)

	result, err := svc.Cancel(context.Background(), 999, 1, "user", "change of plans")

	assert.NoError(t, err)
	assert.Equal(t, 7080.0, result.RefundAmount)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Equal(t, domain.CancelledByUser, b.Cancellation.CancelledBy)
	assert.Equal(t, string(domain.RefundPending), b.Cancellation.RefundStatus)
	ledger.AssertExpectations(t)
	refunds.AssertExpectations(t)
}

func TestCancelOutsideWindowNoRefund(t *testing.T) {
	svc, bookings, _, _, ledger, refunds := newTestService()

	b := cancellableBooking()
	b.CheckInDate = testNow.AddDate(0, 0, 1)
	pid := int64(42)
	b.PaymentID = &pid
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)
	ledger.On("ReleaseAll", mock.Anything, mock.Anything).Return()

	result, err := svc.Cancel(context.Background(), 999, 1, "user", "")

	assert.NoError(t, err)
	assert.Equal(t, 0.0, result.RefundAmount)
	refunds.AssertNotCalled(t, "RefundOnCancellation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelUnpaidPendingIssuesNoRefundRequest(t *testing.T) {
	svc, bookings, _, _, ledger, refunds := newTestService()

	b := cancellableBooking()
	b.Status = domain.BookingPending
	b.PaymentID = nil
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)
	ledger.On("ReleaseAll", mock.Anything, mock.Anything).Return()

	result, err := svc.Cancel(context.Background(), 999, 1, "user", "")

	assert.NoError(t, err)
	assert.Equal(t, 7080.0, result.RefundAmount, "amount computed but nothing to refund against")
	refunds.AssertNotCalled(t, "RefundOnCancellation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelCheckedInRejected(t *testing.T) {
	svc, bookings, _, _, ledger, _ := newTestService()

	b := cancellableBooking()
	b.Status = domain.BookingCheckedIn
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)

	_, err := svc.Cancel(context.Background(), 999, 1, "user", "")

	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
	ledger.AssertNotCalled(t, "ReleaseAll", mock.Anything, mock.Anything)
}

func TestCancelByStrangerForbidden(t *testing.T) {
	svc, bookings, _, _, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(999)).Return(cancellableBooking(), nil)

	_, err := svc.Cancel(context.Background(), 999, 555, "user", "")
	assert.ErrorIs(t, err, ErrNotYours)
}

func TestCheckInFlow(t *testing.T) {
	svc, bookings, _, hotels, _, _ := newTestService()

	b := cancellableBooking()
	b.CheckInDate = testNow.AddDate(0, 0, -1)
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)
	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)

	got, err := svc.CheckIn(context.Background(), 999, 77, "hotel_owner")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, got.Status)
}

func TestCheckInBeforeDateRejected(t *testing.T) {
	svc, bookings, _, hotels, _, _ := newTestService()

	b := cancellableBooking()
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)
	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)

	_, err := svc.CheckIn(context.Background(), 999, 77, "hotel_owner")
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
}

func TestCheckInByGuestForbidden(t *testing.T) {
	svc, bookings, _, _, _, _ := newTestService()

	b := cancellableBooking()
	b.CheckInDate = testNow.AddDate(0, 0, -1)
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)

	_, err := svc.CheckIn(context.Background(), 999, 1, "user")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCheckOutRequiresCheckedIn(t *testing.T) {
	svc, bookings, _, hotels, _, _ := newTestService()

	b := cancellableBooking()
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)
	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)

	_, err := svc.CheckOut(context.Background(), 999, 77, "hotel_owner")
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
}

func TestGetVisibility(t *testing.T) {
	svc, bookings, _, hotels, _, _ := newTestService()

	b := cancellableBooking()
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)
	hotels.On("GetByID", mock.Anything, int64(10)).Return(approvedHotel(), nil)

	_, err := svc.Get(context.Background(), 999, 1, "user")
	assert.NoError(t, err, "the guest sees their own booking")

	_, err = svc.Get(context.Background(), 999, 2, "admin")
	assert.NoError(t, err, "admins see everything")

	_, err = svc.Get(context.Background(), 999, 77, "hotel_owner")
	assert.NoError(t, err, "the hotel owner sees bookings on their hotel")

	_, err = svc.Get(context.Background(), 999, 3, "user")
	assert.ErrorIs(t, err, ErrNotYours)
}

func TestGetNotFound(t *testing.T) {
	svc, bookings, _, _, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 404, 1, "user")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateAppendsAuditEntry(t *testing.T) {
	svc, bookings, _, _, _, _ := newTestService()

	b := cancellableBooking()
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)
	bookings.On("AppendModification", mock.Anything, mock.MatchedBy(func(m *domain.BookingModification) bool {
		return m.BookingID == 999 && m.ModifiedBy == 1 && m.Changes != ""
	})).Return(nil)

	requests := "late arrival"
	got, err := svc.Update(context.Background(), 999, 1, "user", UpdateBookingRequest{SpecialRequests: &requests})

	assert.NoError(t, err)
	assert.Equal(t, "late arrival", got.SpecialRequests)
	bookings.AssertExpectations(t)
}

func TestUpdateCancelledBookingRejected(t *testing.T) {
	svc, bookings, _, _, _, _ := newTestService()

	b := cancellableBooking()
	b.Status = domain.BookingCancelled
	bookings.On("GetByID", mock.Anything, int64(999)).Return(b, nil)

	requests := "x"
	_, err := svc.Update(context.Background(), 999, 1, "user", UpdateBookingRequest{SpecialRequests: &requests})
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
}
