package user

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// Signup and profile messages
const (
	msgFillAllFields = "Please fill in all fields"
	msgInvalidMobile = "Enter a valid 10-digit mobile number"
	msgInvalidEmail  = "Enter a valid email address"
	msgShortPassword = "Password must be at least 6 characters long"
	msgInvalidAvatar = "Enter a valid avatar URL"
	msgUserExists    = "User already exists with same email, mobile or username"
	msgInvalidLogin  = "Invalid credentials"
	msgUserNotFound  = "User not found"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	return v
}

// validationError turns validator output into the message a shopper sees
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Validation(err.Error())
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperr.Validation(msgFillAllFields)
		}
	}

	switch fieldErrs[0].Field() {
	case "Mobile":
		return apperr.Validation(msgInvalidMobile)
	case "Email":
		return apperr.Validation(msgInvalidEmail)
	case "Password":
		return apperr.Validation(msgShortPassword)
	case "Avatar":
		return apperr.Validation(msgInvalidAvatar)
	default:
		return apperr.Validation(fieldErrs[0].Error())
	}
}
