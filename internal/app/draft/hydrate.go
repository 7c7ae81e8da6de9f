package draft

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/ikkim/catalog-console/pkg/logger"
)

// FromProduct builds a draft for the edit flow. Persisted image URLs become
// persisted assets and every persisted variant gets a fresh local id. The
// slug starts out decoupled from the name. A product with variants is
// hydrated in variant mode without base images.
func FromProduct(p *catalog.Product, imageLimit int) (*ProductDraft, error) {
	d := New(imageLimit)
	d.name = p.Name
	d.slug = p.Slug
	d.slugOverridden = true
	d.originalSlug = p.Slug
	d.Description = p.Description
	d.Weight = string(p.Weight)
	d.Category = string(p.Category)
	d.Brand = string(p.Brand)
	d.IsBestSeller = p.IsBestSeller
	d.IsNewArrival = p.IsNewArrival
	d.SEO = SEO{MetaTitle: p.MetaTitle, MetaDescription: p.MetaDescription, CanonicalTag: p.CanonicalTag}

	var err error
	if d.Price, err = ParseMoney("price", string(p.Price)); err != nil {
		return nil, fmt.Errorf("hydrate %s: %w", p.Slug, err)
	}
	if d.OfferPrice, err = ParseMoney("offerPrice", string(p.OfferPrice)); err != nil {
		return nil, fmt.Errorf("hydrate %s: %w", p.Slug, err)
	}
	if d.Stock, err = ParseStock(string(p.Stock)); err != nil {
		return nil, fmt.Errorf("hydrate %s: %w", p.Slug, err)
	}

	for _, t := range p.Tags {
		_ = d.AddTag(t) // blanks and repeats in stored data are dropped
	}
	for _, k := range p.Keywords {
		_ = d.AddKeyword(k)
	}
	// Base images and variants are exclusive. Variants win; the stored
	// base images are left out of the draft.
	d.variantMode = len(p.Variants) > 0
	if !d.variantMode {
		d.images.AddPersisted(p.ProductImages...)
	} else if len(p.ProductImages) > 0 {
		logger.Warn("Dropping base images of a product with variants", map[string]interface{}{
			"slug":    p.Slug,
			"dropped": len(p.ProductImages),
		})
	}
	for _, pv := range p.Variants {
		v := &Variant{
			LocalID:      uuid.NewString(),
			DisplayLabel: pv.Type,
			Name:         strings.TrimSpace(pv.Name),
			Weight:       string(pv.Weight),
			Images:       NewImageList(imageLimit),
		}
		if v.Name == "" {
			v.Name = v.DisplayLabel
		}
		if v.Price, err = ParseMoney("price", string(pv.Price)); err != nil {
			return nil, fmt.Errorf("hydrate %s variant %s: %w", p.Slug, pv.Name, err)
		}
		if v.OfferPrice, err = ParseMoney("offerPrice", string(pv.OfferPrice)); err != nil {
			return nil, fmt.Errorf("hydrate %s variant %s: %w", p.Slug, pv.Name, err)
		}
		if v.Stock, err = ParseStock(string(pv.Stock)); err != nil {
			return nil, fmt.Errorf("hydrate %s variant %s: %w", p.Slug, pv.Name, err)
		}
		v.Images.AddPersisted(pv.VariantImages...)
		d.variants = append(d.variants, v)
	}
	return d, nil
}
