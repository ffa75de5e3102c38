package packages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tourstay/internal/domain"
	"tourstay/internal/pkg/apperr"
)

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) Create(ctx context.Context, p *domain.TourPackage) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *MockPackageRepository) GetByID(ctx context.Context, id int64) (*domain.TourPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TourPackage), args.Error(1)
}

func (m *MockPackageRepository) GetBySlug(ctx context.Context, slug string) (*domain.TourPackage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TourPackage), args.Error(1)
}

func (m *MockPackageRepository) GetAll(ctx context.Context, category string, limit, offset int) ([]domain.TourPackage, int64, error) {
	args := m.Called(ctx, category, limit, offset)
	return args.Get(0).([]domain.TourPackage), args.Get(1).(int64), args.Error(2)
}

func (m *MockPackageRepository) Update(ctx context.Context, p *domain.TourPackage) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func backwatersPackage() *domain.TourPackage {
	return &domain.TourPackage{
		ID:             1,
		Title:          "Kerala Backwaters Escape",
		BasePrice:      8500,
		PricePerPerson: true,
		GroupSizeMin:   2,
		GroupSizeMax:   12,
		GroupDiscounts: []domain.GroupDiscount{
			{Position: 0, MinPeople: 4, MaxPeople: 6, DiscountPercentage: 10},
			{Position: 1, MinPeople: 7, MaxPeople: 12, DiscountPercentage: 15},
		},
	}
}

func TestQuoteAppliesBand(t *testing.T) {
	repo := new(MockPackageRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(backwatersPackage(), nil)

	svc := NewService(repo, nil)
	q, err := svc.Quote(context.Background(), 1, 5)

	assert.NoError(t, err)
	assert.Equal(t, 10.0, q.DiscountPercentage)
	assert.Equal(t, 7650.0, q.PerPersonPrice)
	assert.Equal(t, 38250.0, q.TotalPrice)
}

func TestQuoteOutsideGroupRange(t *testing.T) {
	repo := new(MockPackageRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(backwatersPackage(), nil)

	svc := NewService(repo, nil)

	_, err := svc.Quote(context.Background(), 1, 1)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Quote(context.Background(), 1, 20)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestQuoteUnknownPackage(t *testing.T) {
	repo := new(MockPackageRepository)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, nil)
	_, err := svc.Quote(context.Background(), 404, 4)

	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestCreateRejectsInvertedBand(t *testing.T) {
	svc := NewService(new(MockPackageRepository), nil)

	_, err := svc.Create(context.Background(), CreatePackageRequest{
		Title: "Bad", Slug: "bad", DurationDays: 1, BasePrice: 100, GroupSizeMax: 10,
		GroupDiscounts: []GroupDiscountRequest{{MinPeople: 6, MaxPeople: 4, DiscountPercentage: 10}},
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateAssignsBandPositions(t *testing.T) {
	repo := new(MockPackageRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.TourPackage) bool {
		return len(p.GroupDiscounts) == 2 &&
			p.GroupDiscounts[0].Position == 0 &&
			p.GroupDiscounts[1].Position == 1
	})).Return(nil)

	svc := NewService(repo, nil)
	p, err := svc.Create(context.Background(), CreatePackageRequest{
		Title: "Trail", Slug: "trail", DurationDays: 2, BasePrice: 5600, GroupSizeMax: 8,
		GroupDiscounts: []GroupDiscountRequest{
			{MinPeople: 2, MaxPeople: 4, DiscountPercentage: 5},
			{MinPeople: 5, MaxPeople: 8, DiscountPercentage: 12},
		},
	})

	assert.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, 1, p.GroupSizeMin, "group size floor defaults to 1")
	repo.AssertExpectations(t)
}
