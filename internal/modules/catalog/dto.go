package catalog

import (
	"time"

	"tourstay/internal/domain"
)

type CreateHotelRequest struct {
	Name               string                    `json:"name" validate:"required,min=3,max=100"`
	Description        string                    `json:"description"`
	Address            string                    `json:"address"`
	City               string                    `json:"city" validate:"required"`
	State              string                    `json:"state"`
	Pincode            string                    `json:"pincode"`
	Amenities          []string                  `json:"amenities"`
	CancellationPolicy domain.CancellationPolicy `json:"cancellation_policy"`
}

type UpdateHotelRequest struct {
	Name               *string                    `json:"name"`
	Description        *string                    `json:"description"`
	Address            *string                    `json:"address"`
	City               *string                    `json:"city"`
	State              *string                    `json:"state"`
	Pincode            *string                    `json:"pincode"`
	Amenities          *[]string                  `json:"amenities"`
	CancellationPolicy *domain.CancellationPolicy `json:"cancellation_policy"`
}

type ListHotelsQuery struct {
	City     string  `form:"city"`
	MinPrice float64 `form:"min_price"`
	MaxPrice float64 `form:"max_price"`
	Page     int     `form:"page"`
	Limit    int     `form:"limit"`
}

type DiscountRequest struct {
	Percentage float64    `json:"percentage" validate:"gte=0,lte=100"`
	ValidFrom  *time.Time `json:"valid_from"`
	ValidTo    *time.Time `json:"valid_to"`
}

type CreateRoomTypeRequest struct {
	Name                    string          `json:"name" validate:"required"`
	Description             string          `json:"description"`
	CapacityAdults          int             `json:"capacity_adults" validate:"required,gte=1"`
	CapacityChildren        int             `json:"capacity_children" validate:"gte=0"`
	BasePrice               float64         `json:"base_price" validate:"required,gte=0"`
	PricePerAdditionalGuest float64         `json:"price_per_additional_guest" validate:"gte=0"`
	TotalRooms              int             `json:"total_rooms" validate:"required,gte=1"`
	Amenities               []string        `json:"amenities"`
	BedType                 string          `json:"bed_type"`
	Discount                DiscountRequest `json:"discount"`
}

type UpdateRoomTypeRequest struct {
	Name                    *string          `json:"name"`
	Description             *string          `json:"description"`
	CapacityAdults          *int             `json:"capacity_adults"`
	CapacityChildren        *int             `json:"capacity_children"`
	BasePrice               *float64         `json:"base_price"`
	PricePerAdditionalGuest *float64         `json:"price_per_additional_guest"`
	Amenities               *[]string        `json:"amenities"`
	BedType                 *string          `json:"bed_type"`
	Discount                *DiscountRequest `json:"discount"`
	IsActive                *bool            `json:"is_active"`
}
