package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxPeriodLength = 64

var (
	periodRegex        = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)
	paymentMethodRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidPeriodID accepts identifiers that cannot collide with the cache key separator
func IsValidPeriodID(periodID string) bool {
	periodID = strings.TrimSpace(periodID)
	return len(periodID) <= maxPeriodLength && periodRegex.MatchString(periodID)
}

// IsValidPaymentMethod accepts lower-case method names such as "cash" or "bank_transfer"
func IsValidPaymentMethod(method string) bool {
	return paymentMethodRegex.MatchString(strings.TrimSpace(method))
}

// RegisterValidators adds the "period" and "payment_method" tags to v
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return IsValidPeriodID(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return IsValidPaymentMethod(fl.Field().String())
	})
}
