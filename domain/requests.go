package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"homerent_service/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	err := v.RegisterValidation("password", passwordField)
	if err != nil {
		panic(err)
	}

	return v
}

// Password policy: at least 8 characters, a letter, a digit, an '@' and no
// whitespace anywhere.
func passwordField(fl validator.FieldLevel) bool {
	s := fl.Field().String()

	hasLetter := false
	hasDigit := false
	hasAt := false

	for _, c := range s {
		switch {
		case unicode.IsSpace(c):
			return false
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsNumber(c):
			hasDigit = true
		case c == '@':
			hasAt = true
		}
	}

	return len(s) >= 8 && hasLetter && hasDigit && hasAt
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (r *RegisterRequest) Validate() error {
	return toValidationError(validate.Struct(r))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *LoginRequest) Validate() error {
	return toValidationError(validate.Struct(r))
}

// UpdateUserRequest carries a partial identity update. Every field is
// optional but validated when present.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phoneNumber,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	return toValidationError(validate.Struct(r))
}

type ListingRequest struct {
	Location     string    `json:"location" validate:"required"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	Rent         int       `json:"rent" validate:"required,gt=0"`
	Contact      string    `json:"contact"`
	PropertyType string    `json:"propertyType" validate:"required"`
	Requirements []string  `json:"requirements"`
	Images       []string  `json:"images"`
	StartDate    time.Time `json:"startDate" validate:"required"`
	EndDate      time.Time `json:"endDate" validate:"required"`
}

func (r *ListingRequest) Validate() error {
	if err := toValidationError(validate.Struct(r)); err != nil {
		return err
	}
	if r.StartDate.After(r.EndDate) {
		return &errors.ValidationError{Message: errors.InvalidDateRange}
	}
	return nil
}

type BookingRequest struct {
	HomeID     int64     `json:"homeId" validate:"required,gt=0"`
	UserID     int64     `json:"userId" validate:"required,gt=0"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	TotalPrice int       `json:"totalPrice" validate:"required,gt=0"`
}

func (r *BookingRequest) Validate() error {
	return toValidationError(validate.Struct(r))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &errors.ValidationError{Message: err.Error()}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		switch fieldError.Tag() {
		case "password":
			messages = append(messages, errors.InvalidPasswordFormat)
		case "eqfield":
			messages = append(messages, errors.PasswordsNotMatching)
		default:
			messages = append(messages, fmt.Sprintf("Field %s failed validation on %s", fieldError.Field(), fieldError.Tag()))
		}
	}

	return &errors.ValidationError{Message: strings.Join(messages, "; ")}
}
