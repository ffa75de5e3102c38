// Package packages manages the tour catalogue and its group-size pricing.
package packages

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourstay/internal/domain"
	"tourstay/internal/modules/pricing"
	"tourstay/internal/pkg/apperr"
	"tourstay/internal/repository"
)

type PackageRepository interface {
	Create(ctx context.Context, p *domain.TourPackage) error
	GetByID(ctx context.Context, id int64) (*domain.TourPackage, error)
	GetBySlug(ctx context.Context, slug string) (*domain.TourPackage, error)
	GetAll(ctx context.Context, category string, limit, offset int) ([]domain.TourPackage, int64, error)
	Update(ctx context.Context, p *domain.TourPackage) error
	SoftDelete(ctx context.Context, id int64) error
}

var ErrPackageNotFound = apperr.NotFound("Package not found")

type Service struct {
	packages PackageRepository
	log      *zap.Logger
}

func NewService(packages PackageRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{packages: packages, log: log}
}

func (s *Service) Create(ctx context.Context, req CreatePackageRequest) (*domain.TourPackage, error) {
	if err := validateBands(req.GroupDiscounts); err != nil {
		return nil, err
	}

	perPerson := true
	if req.PricePerPerson != nil {
		perPerson = *req.PricePerPerson
	}
	groupMin := req.GroupSizeMin
	if groupMin < 1 {
		groupMin = 1
	}

	p := &domain.TourPackage{
		Title:              req.Title,
		Slug:               req.Slug,
		Description:        req.Description,
		Category:           req.Category,
		DurationDays:       req.DurationDays,
		DurationNights:     req.DurationNights,
		BasePrice:          req.BasePrice,
		DiscountPercentage: req.DiscountPercentage,
		PricePerPerson:     perPerson,
		GroupDiscounts:     toBands(req.GroupDiscounts),
		GroupSizeMin:       groupMin,
		GroupSizeMax:       req.GroupSizeMax,
		Highlights:         req.Highlights,
		Inclusions:         req.Inclusions,
		IsActive:           true,
	}
	if err := s.packages.Create(ctx, p); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.Conflict("A package with this slug already exists")
		}
		return nil, apperr.Internal("Failed to create package", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.TourPackage, error) {
	return s.load(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.TourPackage, error) {
	p, err := s.packages.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, apperr.Internal("Failed to load package", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, category string, page, limit int) ([]domain.TourPackage, int64, error) {
	items, total, err := s.packages.GetAll(ctx, category, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list packages", err)
	}
	return items, total, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdatePackageRequest) (*domain.TourPackage, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.DurationDays != nil {
		p.DurationDays = *req.DurationDays
	}
	if req.DurationNights != nil {
		p.DurationNights = *req.DurationNights
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, apperr.Validation("Base price cannot be negative")
		}
		p.BasePrice = *req.BasePrice
	}
	if req.DiscountPercentage != nil {
		if *req.DiscountPercentage < 0 || *req.DiscountPercentage > 100 {
			return nil, apperr.Validation("Discount percentage must be between 0 and 100")
		}
		p.DiscountPercentage = *req.DiscountPercentage
	}
	if req.PricePerPerson != nil {
		p.PricePerPerson = *req.PricePerPerson
	}
	if req.GroupDiscounts != nil {
		if err := validateBands(*req.GroupDiscounts); err != nil {
			return nil, err
		}
		p.GroupDiscounts = toBands(*req.GroupDiscounts)
		for i := range p.GroupDiscounts {
			p.GroupDiscounts[i].PackageID = p.ID
		}
	}
	if req.GroupSizeMin != nil {
		p.GroupSizeMin = *req.GroupSizeMin
	}
	if req.GroupSizeMax != nil {
		p.GroupSizeMax = *req.GroupSizeMax
	}
	if req.Highlights != nil {
		p.Highlights = *req.Highlights
	}
	if req.Inclusions != nil {
		p.Inclusions = *req.Inclusions
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.packages.Update(ctx, p); err != nil {
		return nil, apperr.Internal("Failed to update package", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.packages.SoftDelete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete package", err)
	}
	return nil
}

// Quote prices the package for a group. The group size must fit the package's
// advertised range.
func (s *Service) Quote(ctx context.Context, id int64, groupSize int) (*pricing.PackageQuote, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if groupSize < 1 {
		return nil, apperr.Validation("Group size must be at least 1")
	}
	if groupSize < p.GroupSizeMin || groupSize > p.GroupSizeMax {
		return nil, apperr.Newf(apperr.KindValidation,
			"Group size must be between %d and %d for this package", p.GroupSizeMin, p.GroupSizeMax)
	}

	quote := pricing.QuotePackage(p, groupSize)
	return &quote, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.TourPackage, error) {
	p, err := s.packages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, apperr.Internal("Failed to load package", err)
	}
	return p, nil
}

func validateBands(bands []GroupDiscountRequest) error {
	for _, b := range bands {
		if b.MaxPeople < b.MinPeople {
			return apperr.Validation("Group discount band has max_people below min_people")
		}
	}
	return nil
}

func toBands(reqs []GroupDiscountRequest) []domain.GroupDiscount {
	bands := make([]domain.GroupDiscount, 0, len(reqs))
	for i, b := range reqs {
		bands = append(bands, domain.GroupDiscount{
			Position:           i,
			MinPeople:          b.MinPeople,
			MaxPeople:          b.MaxPeople,
			DiscountPercentage: b.DiscountPercentage,
		})
	}
	return bands
}
