package decimalx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotPositive = errors.New("must be greater than zero")

// ParsePositive parses a price or amount as typed by a user and rejects zero
// and negative values.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a decimal number: %q", s)
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return d, nil
}

// Canonical renders d without exponent or trailing zeros, which is the form
// the exchange accepts in string fields ("0.0100" -> "0.01").
func Canonical(d decimal.Decimal) string {
	return d.String()
}
