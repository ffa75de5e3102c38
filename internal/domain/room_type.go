package domain

import "time"

// Discount is a time-boxed percentage off the base nightly rate. It applies
// only while now is inside [ValidFrom, ValidTo].
type Discount struct {
	Percentage float64    `json:"percentage" gorm:"column:discount_percentage;default:0" validate:"gte=0,lte=100"`
	ValidFrom  *time.Time `json:"valid_from,omitempty" gorm:"column:discount_valid_from"`
	ValidTo    *time.Time `json:"valid_to,omitempty" gorm:"column:discount_valid_to"`
}

// RoomType is a bookable category of rooms within a hotel. AvailableRooms is
// mutated only through the inventory ledger's guarded reserve/release updates,
// never by plain writes.
type RoomType struct {
	ID                      int64      `json:"id" gorm:"primaryKey"`
	HotelID                 int64      `json:"hotel_id" gorm:"index;not null"`
	Name                    string     `json:"name" gorm:"not null" validate:"required"`
	Description             string     `json:"description,omitempty" gorm:"type:text"`
	CapacityAdults          int        `json:"capacity_adults" gorm:"not null" validate:"required,gte=1"`
	CapacityChildren        int        `json:"capacity_children" gorm:"default:0"`
	BasePrice               float64    `json:"base_price" gorm:"not null" validate:"required,gte=0"`
	PricePerAdditionalGuest float64    `json:"price_per_additional_guest" gorm:"default:0"`
	TotalRooms              int        `json:"total_rooms" gorm:"not null" validate:"required,gte=0"`
	AvailableRooms          int        `json:"available_rooms" gorm:"not null"`
	Amenities               []string   `json:"amenities,omitempty" gorm:"serializer:json"`
	BedType                 string     `json:"bed_type,omitempty"`
	Discount                Discount   `json:"discount" gorm:"embedded"`
	IsActive                bool       `json:"is_active" gorm:"default:true"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	DeletedAt               *time.Time `json:"-" gorm:"index"`
}

func (RoomType) TableName() string { return "room_types" }
