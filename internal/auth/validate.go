package auth

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSpecials = "!@#$%^&*"

// ValidEmail reports whether s looks like an address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// StrongPassword requires eight or more characters drawn from letters,
// digits and !@#$%^&*, with at least one upper-case letter, one digit and
// one of the special characters.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, digit, special bool
	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		case unicode.IsLower(r):
		default:
			return false
		}
	}
	return upper && digit && special
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("shopemail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return v
}

var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
	},
	"email": {
		"required":  "Email is required",
		"shopemail": "Please enter a valid email",
	},
	"password": {
		"required":       "Password is required",
		"strongpassword": "Must contain 8+ chars, 1 uppercase, 1 number, 1 special char",
	},
}

// validationError turns validator output into per-field messages.
func validationError(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return ErrInvalidRegistration.Wrap(err)
	}
	details := map[string]string{}
	for _, fe := range vErrs {
		field := strings.ToLower(fe.Field())
		msg, ok := fieldMessages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		if _, seen := details[field]; !seen {
			details[field] = msg
		}
	}
	return ErrInvalidRegistration.WithDetails(details)
}
