package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourstay/internal/domain"
	"tourstay/internal/pkg/apperr"
	"tourstay/internal/repository"
)

var (
	ErrHotelNotFound    = apperr.NotFound("Hotel not found")
	ErrRoomTypeNotFound = apperr.NotFound("Room type not found")
	ErrNotOwner         = apperr.Forbidden("You do not manage this hotel")
)

type Service struct {
	hotels HotelRepository
	rooms  RoomTypeRepository
	log    *zap.Logger
}

func NewService(hotels HotelRepository, rooms RoomTypeRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{hotels: hotels, rooms: rooms, log: log}
}

// CreateHotel registers a new property in pending; it becomes bookable only
// after moderation approves it.
func (s *Service) CreateHotel(ctx context.Context, ownerID int64, req CreateHotelRequest) (*domain.Hotel, error) {
	h := &domain.Hotel{
		OwnerID:            ownerID,
		Name:               req.Name,
		Description:        req.Description,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Pincode:            req.Pincode,
		Amenities:          req.Amenities,
		Status:             domain.HotelPending,
		CancellationPolicy: req.CancellationPolicy,
	}
	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, apperr.Internal("Failed to create hotel", err)
	}

	s.log.Info("hotel submitted for moderation",
		zap.Int64("hotel_id", h.ID), zap.Int64("owner_id", ownerID))
	return h, nil
}

// GetHotel returns approved hotels to anyone; unapproved ones only to their
// owner and to moderation.
func (s *Service) GetHotel(ctx context.Context, id, actorID int64, role string) (*domain.Hotel, error) {
	h, err := s.loadHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.Status != domain.HotelApproved && !canModerate(role) && h.OwnerID != actorID {
		return nil, ErrHotelNotFound
	}
	return h, nil
}

// ListHotels is the public search: approved hotels only.
func (s *Service) ListHotels(ctx context.Context, q ListHotelsQuery) ([]domain.Hotel, int64, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	hotels, total, err := s.hotels.GetAll(ctx, repository.HotelFilters{
		City:     q.City,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Status:   domain.HotelApproved,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list hotels", err)
	}
	return hotels, total, nil
}

func (s *Service) UpdateHotel(ctx context.Context, id, actorID int64, role string, req UpdateHotelRequest) (*domain.Hotel, error) {
	h, err := s.loadHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != actorID && role != string(domain.RoleAdmin) {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.Address != nil {
		h.Address = *req.Address
	}
	if req.City != nil {
		h.City = *req.City
	}
	if req.State != nil {
		h.State = *req.State
	}
	if req.Pincode != nil {
		h.Pincode = *req.Pincode
	}
	if req.Amenities != nil {
		h.Amenities = *req.Amenities
	}
	if req.CancellationPolicy != nil {
		h.CancellationPolicy = *req.CancellationPolicy
	}

	if err := s.hotels.Update(ctx, h); err != nil {
		return nil, apperr.Internal("Failed to update hotel", err)
	}
	return h, nil
}

func (s *Service) DeleteHotel(ctx context.Context, id int64, role string) error {
	if !canModerate(role) {
		return apperr.Forbidden("Moderator access required")
	}
	if _, err := s.loadHotel(ctx, id); err != nil {
		return err
	}
	if err := s.hotels.SoftDelete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete hotel", err)
	}
	return nil
}

// CreateRoomType adds a bookable category under the caller's hotel. Available
// rooms start equal to total rooms; afterwards only the inventory ledger moves
// the count.
func (s *Service) CreateRoomType(ctx context.Context, hotelID, actorID int64, role string, req CreateRoomTypeRequest) (*domain.RoomType, error) {
	h, err := s.loadHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != actorID && role != string(domain.RoleAdmin) {
		return nil, ErrNotOwner
	}

	rt := &domain.RoomType{
		HotelID:                 hotelID,
		Name:                    req.Name,
		Description:             req.Description,
		CapacityAdults:          req.CapacityAdults,
		CapacityChildren:        req.CapacityChildren,
		BasePrice:               req.BasePrice,
		PricePerAdditionalGuest: req.PricePerAdditionalGuest,
		TotalRooms:              req.TotalRooms,
		AvailableRooms:          req.TotalRooms,
		Amenities:               req.Amenities,
		BedType:                 req.BedType,
		Discount: domain.Discount{
			Percentage: req.Discount.Percentage,
			ValidFrom:  req.Discount.ValidFrom,
			ValidTo:    req.Discount.ValidTo,
		},
		IsActive: true,
	}
	if err := s.rooms.Create(ctx, rt); err != nil {
		return nil, apperr.Internal("Failed to create room type", err)
	}
	return rt, nil
}

func (s *Service) ListRoomTypes(ctx context.Context, hotelID int64) ([]domain.RoomType, error) {
	if _, err := s.loadHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	rts, err := s.rooms.GetByHotel(ctx, hotelID)
	if err != nil {
		return nil, apperr.Internal("Failed to list room types", err)
	}
	return rts, nil
}

// UpdateRoomType edits rates, capacity and the discount window. Room counts
// are deliberately absent here: total_rooms is fixed at creation and
// available_rooms belongs to the ledger.
func (s *Service) UpdateRoomType(ctx context.Context, id, actorID int64, role string, req UpdateRoomTypeRequest) (*domain.RoomType, error) {
	rt, h, err := s.loadRoomWithHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != actorID && role != string(domain.RoleAdmin) {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		rt.Name = *req.Name
	}
	if req.Description != nil {
		rt.Description = *req.Description
	}
	if req.CapacityAdults != nil {
		if *req.CapacityAdults < 1 {
			return nil, apperr.Validation("Adult capacity must be at least 1")
		}
		rt.CapacityAdults = *req.CapacityAdults
	}
	if req.CapacityChildren != nil {
		rt.CapacityChildren = *req.CapacityChildren
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, apperr.Validation("Base price cannot be negative")
		}
		rt.BasePrice = *req.BasePrice
	}
	if req.PricePerAdditionalGuest != nil {
		rt.PricePerAdditionalGuest = *req.PricePerAdditionalGuest
	}
	if req.Amenities != nil {
		rt.Amenities = *req.Amenities
	}
	if req.BedType != nil {
		rt.BedType = *req.BedType
	}
	if req.Discount != nil {
		if req.Discount.Percentage < 0 || req.Discount.Percentage > 100 {
			return nil, apperr.Validation("Discount percentage must be between 0 and 100")
		}
		rt.Discount = domain.Discount{
			Percentage: req.Discount.Percentage,
			ValidFrom:  req.Discount.ValidFrom,
			ValidTo:    req.Discount.ValidTo,
		}
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}

	if err := s.rooms.Update(ctx, rt); err != nil {
		return nil, apperr.Internal("Failed to update room type", err)
	}
	return rt, nil
}

func (s *Service) DeleteRoomType(ctx context.Context, id, actorID int64, role string) error {
	rt, h, err := s.loadRoomWithHotel(ctx, id)
	if err != nil {
		return err
	}
	if h.OwnerID != actorID && role != string(domain.RoleAdmin) {
		return ErrNotOwner
	}
	if err := s.rooms.SoftDelete(ctx, rt.ID); err != nil {
		return apperr.Internal("Failed to delete room type", err)
	}
	return nil
}

func (s *Service) loadHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, apperr.Internal("Failed to load hotel", err)
	}
	return h, nil
}

func (s *Service) loadRoomWithHotel(ctx context.Context, id int64) (*domain.RoomType, *domain.Hotel, error) {
	rt, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRoomTypeNotFound
		}
		return nil, nil, apperr.Internal("Failed to load room type", err)
	}
	h, err := s.loadHotel(ctx, rt.HotelID)
	if err != nil {
		return nil, nil, err
	}
	return rt, h, nil
}

func canModerate(role string) bool {
	return role == string(domain.RoleAdmin) || role == string(domain.RoleModerator)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
