package packages

import "tourstay/internal/domain"

type GroupDiscountRequest struct {
	MinPeople          int     `json:"min_people" validate:"gte=1"`
	MaxPeople          int     `json:"max_people" validate:"gte=1"`
	DiscountPercentage float64 `json:"discount_percentage" validate:"gte=0,lte=100"`
}

type CreatePackageRequest struct {
	Title              string                 `json:"title" validate:"required"`
	Slug               string                 `json:"slug" validate:"required"`
	Description        string                 `json:"description"`
	Category           domain.PackageCategory `json:"category"`
	DurationDays       int                    `json:"duration_days" validate:"required,gte=1"`
	DurationNights     int                    `json:"duration_nights" validate:"gte=0"`
	BasePrice          float64                `json:"base_price" validate:"required,gte=0"`
	DiscountPercentage float64                `json:"discount_percentage" validate:"gte=0,lte=100"`
	PricePerPerson     *bool                  `json:"price_per_person"`
	GroupDiscounts     []GroupDiscountRequest `json:"group_discounts" validate:"dive"`
	GroupSizeMin       int                    `json:"group_size_min" validate:"gte=0"`
	GroupSizeMax       int                    `json:"group_size_max" validate:"required,gte=1"`
	Highlights         []string               `json:"highlights"`
	Inclusions         []string               `json:"inclusions"`
}

type UpdatePackageRequest struct {
	Title              *string                 `json:"title"`
	Description        *string                 `json:"description"`
	Category           *domain.PackageCategory `json:"category"`
	DurationDays       *int                    `json:"duration_days"`
	DurationNights     *int                    `json:"duration_nights"`
	BasePrice          *float64                `json:"base_price"`
	DiscountPercentage *float64                `json:"discount_percentage"`
	PricePerPerson     *bool                   `json:"price_per_person"`
	GroupDiscounts     *[]GroupDiscountRequest `json:"group_discounts"`
	GroupSizeMin       *int                    `json:"group_size_min"`
	GroupSizeMax       *int                    `json:"group_size_max"`
	Highlights         *[]string               `json:"highlights"`
	Inclusions         *[]string               `json:"inclusions"`
	IsActive           *bool                   `json:"is_active"`
}
