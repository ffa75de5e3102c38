package domain

import "time"

type UserRole string

const (
	RoleUser        UserRole = "user"
	RoleHotelOwner  UserRole = "hotel_owner"
	RoleContributor UserRole = "contributor"
	RoleModerator   UserRole = "moderator"
	RoleAdmin       UserRole = "admin"
)

// Valid reports whether r is one of the roles the platform issues. Tokens
// carrying anything else are rejected at the door.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleHotelOwner, RoleContributor, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);default:'user';index"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
