package draft

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyPattern is plain decimal notation: up to 12 integer digits and at
// most 2 fractional digits. Exponent forms are refused.
var moneyPattern = regexp.MustCompile(`^[0-9]{1,12}(\.[0-9]{0,2})?$`)

// ParseMoney reads an operator-entered amount. Blank input means absent.
func ParseMoney(field, raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	if strings.HasPrefix(raw, "-") {
		return decimal.NullDecimal{}, invalid(field, field+" must not be negative")
	}
	if !moneyPattern.MatchString(raw) {
		return decimal.NullDecimal{}, invalid(field, field+" must be an amount with at most 2 decimals")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, invalid(field, field+" must be a number")
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseStock reads a whole, non-negative stock count. Blank input means absent.
func ParseStock(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, invalid("stock", "stock must be a whole number")
	}
	return &n, nil
}

func formatMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func formatStock(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
