// Package pricing derives the discount percentage shown and submitted for a
// list price / offer price pair.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Quote is a price pair together with its derived discount.
type Quote struct {
	Price           decimal.Decimal
	OfferPrice      decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Derive computes the discount percentage for a price pair, rounded to two
// decimal places half away from zero. A price that is zero or negative has no
// discount concept and yields 0. An offer price above the list price yields a
// negative discount; callers decide whether that deserves a warning.
func Derive(price, offerPrice decimal.Decimal) Quote {
	q := Quote{Price: price, OfferPrice: offerPrice, DiscountPercent: decimal.Zero}
	if !price.IsPositive() {
		return q
	}
	q.DiscountPercent = price.Sub(offerPrice).Mul(hundred).DivRound(price, 2)
	return q
}

// DeriveOptional treats a missing price or offer price as zero, the same way
// blank form inputs are treated at submit time.
func DeriveOptional(price, offerPrice decimal.NullDecimal) Quote {
	return Derive(valueOrZero(price), valueOrZero(offerPrice))
}

// IsMarkup reports whether the offer price exceeds the list price.
func (q Quote) IsMarkup() bool {
	return q.DiscountPercent.IsNegative()
}

func valueOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
