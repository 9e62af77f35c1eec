package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxCustomerNameLength = 255
	MaxCustomerKeyLength  = 32
	MaxAddressLength      = 512
	AmountDisplayPlaces   = 2
)

// Accepted birth date layouts, ISO first.
var birthDateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// ValidateAmount validates a deposit/withdrawal amount.
func ValidateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	return amount, nil
}

// ParseAmount converts external input into an amount. Malformed input is
// reported as ErrInvalidAmount; the sign is checked when the transaction
// is applied.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}

	return amount, nil
}

// FormatAmount renders an amount with two-digit display precision.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountDisplayPlaces)
}

// ValidateCustomerKey validates a customer tax id.
func ValidateCustomerKey(key string) error {
	key = strings.TrimSpace(key)

	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidCustomer)
	}

	if len(key) > MaxCustomerKeyLength {
		return fmt.Errorf("%w: key exceeds %d characters", ErrInvalidCustomer, MaxCustomerKeyLength)
	}

	for _, r := range key {
		if !isKeyRune(r) {
			return fmt.Errorf("%w: key may only contain letters, digits, '.' and '-'", ErrInvalidCustomer)
		}
	}

	return nil
}

// Keys travel as a URL path segment, so they stay within an unreserved
// ASCII subset.
func isKeyRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == '.' || r == '-':
		return true
	default:
		return false
	}
}

// ValidateCustomerName validates a customer's full name.
func ValidateCustomerName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCustomer)
	}

	if len(name) > MaxCustomerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCustomer, MaxCustomerNameLength)
	}

	return nil
}

// ValidateAddress validates a postal address. Empty is allowed.
func ValidateAddress(address string) error {
	if len(address) > MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidCustomer, MaxAddressLength)
	}

	return nil
}

// ParseBirthDate parses a birth date in YYYY-MM-DD or DD-MM-YYYY form.
func ParseBirthDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: birth date cannot be empty", ErrInvalidCustomer)
	}

	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unrecognized birth date %q", ErrInvalidCustomer, raw)
}
