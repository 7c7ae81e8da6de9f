package draft

import (
	"strings"

	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/pkg/pricing"
	"github.com/shopspring/decimal"
)

// Variant is one child of a ProductDraft, tagged by a single attribute value.
// The discount is never stored; it is derived from the price pair on read.
type Variant struct {
	LocalID          string
	AttributeTypeID  string
	AttributeValueID string
	DisplayLabel     string
	Name             string
	Price            decimal.NullDecimal
	OfferPrice       decimal.NullDecimal
	Stock            *int
	Weight           string
	Images           *ImageList
}

func (v *Variant) Quote() pricing.Quote {
	return pricing.DeriveOptional(v.Price, v.OfferPrice)
}

func (v *Variant) DiscountPercent() decimal.Decimal {
	return v.Quote().DiscountPercent
}

// VariantPatch carries raw operator input. Nil fields are left untouched.
type VariantPatch struct {
	Name       *string `json:"name"`
	Price      *string `json:"price"`
	OfferPrice *string `json:"offer_price"`
	Stock      *string `json:"stock"`
	Weight     *string `json:"weight"`
}

// variantFields is the parsed form of a VariantPatch
type variantFields struct {
	Name       string
	Price      decimal.NullDecimal
	OfferPrice decimal.NullDecimal
	Stock      *int
	Weight     string
}

// apply parses every set field first so a bad value changes nothing
func (p VariantPatch) apply(f *variantFields) error {
	next := *f
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Price != nil {
		price, err := ParseMoney("price", *p.Price)
		if err != nil {
			return err
		}
		next.Price = price
	}
	if p.OfferPrice != nil {
		offer, err := ParseMoney("offerPrice", *p.OfferPrice)
		if err != nil {
			return err
		}
		next.OfferPrice = offer
	}
	if p.Stock != nil {
		stock, err := ParseStock(*p.Stock)
		if err != nil {
			return err
		}
		next.Stock = stock
	}
	if p.Weight != nil {
		next.Weight = strings.TrimSpace(*p.Weight)
	}
	*f = next
	return nil
}

// Apply edits an already-added variant in place
func (v *Variant) Apply(p VariantPatch) error {
	f := variantFields{Name: v.Name, Price: v.Price, OfferPrice: v.OfferPrice, Stock: v.Stock, Weight: v.Weight}
	if err := p.apply(&f); err != nil {
		return err
	}
	if f.Name == "" {
		f.Name = v.DisplayLabel
	}
	v.Name, v.Price, v.OfferPrice, v.Stock, v.Weight = f.Name, f.Price, f.OfferPrice, f.Stock, f.Weight
	return nil
}

// VariantView is the JSON shape of a variant in a draft view
type VariantView struct {
	LocalID          string            `json:"local_id"`
	AttributeTypeID  string            `json:"attribute_type_id,omitempty"`
	AttributeValueID string            `json:"attribute_value_id,omitempty"`
	DisplayLabel     string            `json:"display_label"`
	Name             string            `json:"name"`
	Price            string            `json:"price"`
	OfferPrice       string            `json:"offer_price"`
	DiscountPercent  string            `json:"discount_percent"`
	Stock            *int              `json:"stock"`
	Weight           string            `json:"weight"`
	Images           []model.ImageView `json:"images"`
}

func (v *Variant) View() VariantView {
	return VariantView{
		LocalID:          v.LocalID,
		AttributeTypeID:  v.AttributeTypeID,
		AttributeValueID: v.AttributeValueID,
		DisplayLabel:     v.DisplayLabel,
		Name:             v.Name,
		Price:            formatMoney(v.Price),
		OfferPrice:       formatMoney(v.OfferPrice),
		DiscountPercent:  v.DiscountPercent().StringFixed(2),
		Stock:            v.Stock,
		Weight:           v.Weight,
		Images:           viewImages(v.Images),
	}
}

func viewImages(l *ImageList) []model.ImageView {
	items := l.Items()
	out := make([]model.ImageView, 0, len(items))
	for _, item := range items {
		out = append(out, model.ViewImage(item))
	}
	return out
}
