package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Validation errors
var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrInvalidDate    = errors.New("invalid date")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Validation constants
const (
	MaxTextFieldLength = 200
	MaxAmount          = "999999999.99"
)

// ParseAmount parses a user-entered amount. An empty string means unset.
// Amounts are non-negative and rounded to cents.
func ParseAmount(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	return ValidateAmount(amount)
}

// ValidateAmount checks bounds and rounds to cents.
func ValidateAmount(amount decimal.Decimal) (decimal.NullDecimal, error) {
	if amount.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}

	if amount.GreaterThan(decimal.RequireFromString(MaxAmount)) {
		return decimal.NullDecimal{}, fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return decimal.NewNullDecimal(amount.Round(2)), nil
}

// ParseDate parses a YYYY-MM-DD date. An empty string means unset.
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, nil
	}

	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return civil.Date{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}

	return d, nil
}

// FormatDate renders d as YYYY-MM-DD, or an empty string when unset.
func FormatDate(d civil.Date) string {
	if IsZeroDate(d) {
		return ""
	}
	return d.String()
}

// NormalizeText trims surrounding whitespace and converts to NFC so that
// precomposed and decomposed accents print the same way.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ValidateTextField validates free-text record fields. Length is counted in
// characters, not bytes.
func ValidateTextField(name, value string) error {
	if utf8.RuneCountInString(value) > MaxTextFieldLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrFieldTooLong, name, MaxTextFieldLength)
	}
	return nil
}
