package activecampaign

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// User is an account user.
type User struct {
	ID        string `json:"id"                  yaml:"id"`
	Username  string `json:"username"            yaml:"username"`
	FirstName string `json:"firstName,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"lastName,omitempty"  yaml:"last_name,omitempty"`
	Email     string `json:"email"               yaml:"email"`
	Phone     string `json:"phone,omitempty"     yaml:"phone,omitempty"`
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"`
	Links     Links  `json:"links,omitempty"     yaml:"links,omitempty"`
}

// UserCreateRequest is the body of a user creation.
type UserCreateRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Group     int    `json:"group"`
	Password  string `json:"password"`
}

// Validate checks the request.
func (r *UserCreateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Group, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}
