package domain

import "time"

type PackageCategory string

const (
	CategoryAdventure  PackageCategory = "Adventure"
	CategoryRelaxation PackageCategory = "Relaxation"
	CategoryCultural   PackageCategory = "Cultural"
	CategoryFamily     PackageCategory = "Family"
	CategoryHoneymoon  PackageCategory = "Honeymoon"
	CategoryWildlife   PackageCategory = "Wildlife"
	CategoryHeritage   PackageCategory = "Heritage"
)

// GroupDiscount is one group-size pricing band. Position preserves declaration
// order: when bands overlap, the first matching band wins.
type GroupDiscount struct {
	ID                 int64   `json:"id" gorm:"primaryKey"`
	PackageID          int64   `json:"-" gorm:"index;not null"`
	Position           int     `json:"-" gorm:"not null"`
	MinPeople          int     `json:"min_people"`
	MaxPeople          int     `json:"max_people"`
	DiscountPercentage float64 `json:"discount_percentage" validate:"gte=0,lte=100"`
}

func (GroupDiscount) TableName() string { return "package_group_discounts" }

type TourPackage struct {
	ID                 int64           `json:"id" gorm:"primaryKey"`
	Title              string          `json:"title" gorm:"not null" validate:"required"`
	Slug               string          `json:"slug" gorm:"uniqueIndex"`
	Description        string          `json:"description,omitempty" gorm:"type:text"`
	Category           PackageCategory `json:"category" gorm:"type:varchar(20)"`
	DurationDays       int             `json:"duration_days" validate:"required,gte=1"`
	DurationNights     int             `json:"duration_nights" validate:"gte=0"`
	BasePrice          float64         `json:"base_price" gorm:"not null" validate:"required,gte=0"`
	DiscountPercentage float64         `json:"discount_percentage" gorm:"default:0" validate:"gte=0,lte=100"`
	PricePerPerson     bool            `json:"price_per_person" gorm:"default:true"`
	GroupDiscounts     []GroupDiscount `json:"group_discounts,omitempty" gorm:"foreignKey:PackageID"`
	GroupSizeMin       int             `json:"group_size_min" gorm:"default:1"`
	GroupSizeMax       int             `json:"group_size_max" gorm:"not null" validate:"required,gte=1"`
	Highlights         []string        `json:"highlights,omitempty" gorm:"serializer:json"`
	Inclusions         []string        `json:"inclusions,omitempty" gorm:"serializer:json"`
	IsActive           bool            `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          *time.Time      `json:"-" gorm:"index"`
}

func (TourPackage) TableName() string { return "tour_packages" }
