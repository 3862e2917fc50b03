package handlers

import (
	"github.com/nfrund/authpanel/internal/forms"
)

// CustomValidator wraps the form validator to implement Echo's Validator interface.
type CustomValidator struct {
	validator *forms.Validator
}

// NewValidator creates a new CustomValidator.
func NewValidator(v *forms.Validator) *CustomValidator {
	return &CustomValidator{validator: v}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// submitRequest is a bound form submission.
type submitRequest interface {
	Values() map[forms.FieldName]string
}

// LoginRequest defines the DTO for the login form.
type LoginRequest struct {
	Email    string `form:"email" validate:"shape_email"`
	Password string `form:"password" validate:"utf16min=6"`
}

// Values returns the submitted values keyed by field.
func (r *LoginRequest) Values() map[forms.FieldName]string {
	return map[forms.FieldName]string{
		forms.Email:    r.Email,
		forms.Password: r.Password,
	}
}

// RegisterRequest defines the DTO for the registration form.
type RegisterRequest struct {
	FullName string `form:"fullname" validate:"not_blank"`
	Email    string `form:"email" validate:"shape_email"`
	Password string `form:"password" validate:"utf16min=6"`
}

// Values returns the submitted values keyed by field.
func (r *RegisterRequest) Values() map[forms.FieldName]string {
	return map[forms.FieldName]string{
		forms.FullName: r.FullName,
		forms.Email:    r.Email,
		forms.Password: r.Password,
	}
}

func newSubmitRequest(v forms.FormView) submitRequest {
	if v == forms.ViewRegister {
		return &RegisterRequest{}
	}
	return &LoginRequest{}
}

// StrengthRequest defines the DTO for the strength endpoint.
type StrengthRequest struct {
	Password string `form:"password" json:"password"`
}
