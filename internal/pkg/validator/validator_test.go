package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user hotel_owner"`
	Guests   int    `json:"number_of_guests" validate:"gte=1"`
}

func TestValidatePasses(t *testing.T) {
	errs := Validate(registerForm{
		Email:    "ananya@gmail.com",
		Password: "supersecret",
		Role:     "hotel_owner",
		Guests:   2,
	})
	assert.Nil(t, errs)
}

func TestValidateKeysByJSONFieldName(t *testing.T) {
	errs := Validate(registerForm{Email: "not-an-address", Password: "short", Guests: 1})

	assert.Equal(t, "Must be a valid email address", errs["email"])
	assert.Equal(t, "Must have a length of at least 8", errs["password"])
	assert.NotContains(t, errs, "Email")
}

func TestValidateEnumAndBoundMessages(t *testing.T) {
	errs := Validate(registerForm{
		Email:    "ananya@gmail.com",
		Password: "supersecret",
		Role:     "moderator",
		Guests:   0,
	})

	assert.Equal(t, "Must be one of: user, hotel_owner", errs["role"])
	assert.Equal(t, "Must be at least 1", errs["number_of_guests"])
}
