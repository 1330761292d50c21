// Package currency defines the currency code type used across the ledger.
// An account is denominated in exactly one currency, fixed at creation;
// every operation declares the currency it works in and the engine compares
// codes by strict string equality. No case or whitespace normalization is
// applied to account currency codes.
package currency

import "regexp"

// Code is an ISO 4217 currency code (3 uppercase letters).
type Code string

// DefaultCurrency is the code used when a caller does not declare one.
const DefaultCurrency Code = "CHF"

// Common codes, for convenience in callers and tests.
const (
	CHF Code = "CHF"
	EUR Code = "EUR"
	USD Code = "USD"
	GBP Code = "GBP"
)

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidFormat reports whether code has the ISO 4217 shape.
// The engine stores and compares codes opaquely, so shape is the only
// format requirement.
func IsValidFormat(code string) bool {
	return codeFormat.MatchString(code)
}

func (c Code) String() string {
	return string(c)
}
