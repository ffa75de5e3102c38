package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tourstay/internal/domain"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(ctx context.Context, p *domain.TourPackage) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*domain.TourPackage, error) {
	var p domain.TourPackage
	if err := r.db.WithContext(ctx).
		Preload("GroupDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("deleted_at IS NULL").
		First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) GetBySlug(ctx context.Context, slug string) (*domain.TourPackage, error) {
	var p domain.TourPackage
	if err := r.db.WithContext(ctx).
		Preload("GroupDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("slug = ? AND deleted_at IS NULL", slug).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) GetAll(ctx context.Context, category string, limit, offset int) ([]domain.TourPackage, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.TourPackage{}).
		Where("is_active = ? AND deleted_at IS NULL", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var packages []domain.TourPackage
	if err := q.Preload("GroupDiscounts", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&packages).Error; err != nil {
		return nil, 0, err
	}
	return packages, total, nil
}

func (r *PackageRepository) Update(ctx context.Context, p *domain.TourPackage) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (r *PackageRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.TourPackage{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}
