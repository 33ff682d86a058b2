package auth

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Password rules
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72 // bcrypt ignores everything past 72 bytes
	passwordSymbols   = "@$!%*?&"
)

// Validator tags registered by RegisterValidations.
const (
	EmailFormatTag      = "email_format"
	PasswordStrengthTag = "password_strength"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPassword reports whether s is at least 8 characters long and contains
// a lowercase letter, an uppercase letter, a digit and one of @$!%*?&.
func IsValidPassword(s string) bool {
	if len([]rune(s)) < MinPasswordLength || len(s) > MaxPasswordBytes {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// RegisterValidations adds the email_format and password_strength tags to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(EmailFormatTag, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation(PasswordStrengthTag, func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
}
