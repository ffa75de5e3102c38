package domain

import "time"

type HotelStatus string

const (
	HotelPending  HotelStatus = "pending"
	HotelApproved HotelStatus = "approved"
	HotelRejected HotelStatus = "rejected"
)

// CancellationPolicy is snapshotted onto bookings at creation time; changing the
// hotel policy never affects existing bookings.
type CancellationPolicy struct {
	FreeCancelDays int    `json:"free_cancel_days" gorm:"column:free_cancel_days;default:0"`
	Description    string `json:"description,omitempty" gorm:"column:policy_description;type:text"`
}

type Hotel struct {
	ID                 int64              `json:"id" gorm:"primaryKey"`
	OwnerID            int64              `json:"owner_id" gorm:"index;not null"`
	Name               string             `json:"name" gorm:"not null" validate:"required,min=3,max=100"`
	Description        string             `json:"description" gorm:"type:text"`
	Address            string             `json:"address"`
	City               string             `json:"city" gorm:"index"`
	State              string             `json:"state,omitempty"`
	Pincode            string             `json:"pincode,omitempty"`
	Amenities          []string           `json:"amenities,omitempty" gorm:"serializer:json"`
	Status             HotelStatus        `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason    string             `json:"rejection_reason,omitempty" gorm:"type:text"`
	CancellationPolicy CancellationPolicy `json:"cancellation_policy" gorm:"embedded"`
	RatingAverage      float64            `json:"rating_average" gorm:"default:0"`
	RatingCount        int                `json:"rating_count" gorm:"default:0"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          *time.Time         `json:"-" gorm:"index"`

	RoomTypes []RoomType `json:"room_types,omitempty" gorm:"foreignKey:HotelID"`
}

func (Hotel) TableName() string { return "hotels" }
