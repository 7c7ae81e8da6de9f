// Package draft holds the in-memory product being created or edited: the
// ProductDraft aggregate, per-owner image lists, the variant composer and the
// multipart encoder that turns a draft into the catalog's wire payload.
package draft

import (
	"strings"

	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/pkg/pricing"
	"github.com/ikkim/catalog-console/pkg/slug"
	"github.com/shopspring/decimal"
)

type SEO struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	CanonicalTag    string `json:"canonical_tag"`
}

// ProductDraft is the aggregate root of an editing session. It is not safe
// for concurrent use; the owning session serializes access.
type ProductDraft struct {
	name           string
	slug           string
	slugOverridden bool
	originalSlug   string

	Description  string
	Price        decimal.NullDecimal
	OfferPrice   decimal.NullDecimal
	Stock        *int
	Weight       string
	Category     string
	Brand        string
	IsBestSeller bool
	IsNewArrival bool
	SEO          SEO

	variantMode bool
	tags        []string
	keywords    []string
	images      *ImageList
	variants    []*Variant
	imageLimit  int
}

// New returns an empty draft for the create flow
func New(imageLimit int) *ProductDraft {
	images := NewImageList(imageLimit)
	return &ProductDraft{
		images:     images,
		imageLimit: images.Limit(),
		tags:       []string{},
		keywords:   []string{},
	}
}

func (d *ProductDraft) Name() string { return d.name }

func (d *ProductDraft) Slug() string { return d.slug }

func (d *ProductDraft) SlugOverridden() bool { return d.slugOverridden }

// OriginalSlug is the persisted slug in the edit flow, "" when creating
func (d *ProductDraft) OriginalSlug() string { return d.originalSlug }

func (d *ProductDraft) IsEdit() bool { return d.originalSlug != "" }

func (d *ProductDraft) ImageLimit() int { return d.imageLimit }

// SetName updates the name and, until the slug has been edited by hand,
// recomputes the slug from it.
func (d *ProductDraft) SetName(name string) {
	d.name = name
	if !d.slugOverridden {
		d.slug = slug.Make(name)
	}
}

// SetSlug stores an operator-chosen slug. From then on name edits no longer
// touch the slug.
func (d *ProductDraft) SetSlug(s string) {
	d.slug = slug.Make(s)
	d.slugOverridden = true
}

// Quote derives the base product's discount from its price pair
func (d *ProductDraft) Quote() pricing.Quote {
	return pricing.DeriveOptional(d.Price, d.OfferPrice)
}

func (d *ProductDraft) IsVariantMode() bool { return d.variantMode }

// SetVariantMode switches pricing modes. Enabling is refused while base
// images exist. Disabling discards every variant; the discarded variants are
// returned so their staged previews can be released.
func (d *ProductDraft) SetVariantMode(on bool) ([]*Variant, error) {
	if on == d.variantMode {
		return nil, nil
	}
	if on {
		if d.images.Len() > 0 {
			return nil, invalid("variant_mode", "Remove product images before enabling variants.")
		}
		d.variantMode = true
		return nil, nil
	}
	discarded := d.variants
	d.variants = nil
	d.variantMode = false
	return discarded, nil
}

func (d *ProductDraft) Tags() []string { return copyStrings(d.tags) }

func (d *ProductDraft) Keywords() []string { return copyStrings(d.keywords) }

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (d *ProductDraft) AddTag(tag string) error {
	next, err := addUnique(d.tags, "tags", "Tag", tag)
	if err != nil {
		return err
	}
	d.tags = next
	return nil
}

func (d *ProductDraft) RemoveTag(tag string) bool {
	var ok bool
	d.tags, ok = removeValue(d.tags, tag)
	return ok
}

func (d *ProductDraft) AddKeyword(keyword string) error {
	next, err := addUnique(d.keywords, "keywords", "Keyword", keyword)
	if err != nil {
		return err
	}
	d.keywords = next
	return nil
}

func (d *ProductDraft) RemoveKeyword(keyword string) bool {
	var ok bool
	d.keywords, ok = removeValue(d.keywords, keyword)
	return ok
}

func addUnique(list []string, field, noun, value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return list, invalid(field, noun+" cannot be empty!")
	}
	for _, existing := range list {
		if existing == value {
			return list, invalid(field, noun+" already added!")
		}
	}
	return append(list, value), nil
}

func removeValue(list []string, value string) ([]string, bool) {
	value = strings.TrimSpace(value)
	for i, existing := range list {
		if existing == value {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}

// Images is the base product's image list
func (d *ProductDraft) Images() *ImageList { return d.images }

// AddImages stages base product images. Refused in variant mode, where images
// belong to the individual variants.
func (d *ProductDraft) AddImages(files []*model.StagedImage) (accepted, rejected []*model.StagedImage, warn *QuotaWarning, err error) {
	if d.variantMode {
		return nil, files, nil, invalid("images", "Product images cannot be added while variants are enabled.")
	}
	accepted, rejected, warn = d.images.Add(files)
	return accepted, rejected, warn, nil
}

// Variants returns the variant collection in order
func (d *ProductDraft) Variants() []*Variant {
	return append([]*Variant(nil), d.variants...)
}

func (d *ProductDraft) Variant(localID string) (*Variant, error) {
	for _, v := range d.variants {
		if v.LocalID == localID {
			return v, nil
		}
	}
	return nil, ErrVariantNotFound
}

// RemoveVariant drops a variant and hands it back for preview release
func (d *ProductDraft) RemoveVariant(localID string) (*Variant, error) {
	for i, v := range d.variants {
		if v.LocalID == localID {
			d.variants = append(d.variants[:i:i], d.variants[i+1:]...)
			return v, nil
		}
	}
	return nil, ErrVariantNotFound
}

func (d *ProductDraft) appendVariant(v *Variant) {
	d.variants = append(d.variants, v)
}

// AllAssets lists every image of the draft, base and per variant
func (d *ProductDraft) AllAssets() []model.ImageAsset {
	out := d.images.Items()
	for _, v := range d.variants {
		out = append(out, v.Images.Items()...)
	}
	return out
}

// Fields is a patch of the draft's scalar fields with raw operator input.
// Nil fields are left untouched.
type Fields struct {
	Name            *string `json:"name"`
	Slug            *string `json:"slug"`
	Description     *string `json:"description"`
	Price           *string `json:"price"`
	OfferPrice      *string `json:"offer_price"`
	Stock           *string `json:"stock"`
	Weight          *string `json:"weight"`
	Category        *string `json:"category"`
	Brand           *string `json:"brand"`
	IsBestSeller    *bool   `json:"is_best_seller"`
	IsNewArrival    *bool   `json:"is_new_arrival"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	CanonicalTag    *string `json:"canonical_tag"`
}

// Apply validates the whole patch before changing anything. A slug in the
// same patch as a name wins over the derived one.
func (d *ProductDraft) Apply(f Fields) error {
	price, offer, stock := d.Price, d.OfferPrice, d.Stock
	var err error
	if f.Price != nil {
		if price, err = ParseMoney("price", *f.Price); err != nil {
			return err
		}
	}
	if f.OfferPrice != nil {
		if offer, err = ParseMoney("offerPrice", *f.OfferPrice); err != nil {
			return err
		}
	}
	if f.Stock != nil {
		if stock, err = ParseStock(*f.Stock); err != nil {
			return err
		}
	}

	d.Price, d.OfferPrice, d.Stock = price, offer, stock
	if f.Name != nil {
		d.SetName(*f.Name)
	}
	if f.Slug != nil {
		d.SetSlug(*f.Slug)
	}
	setString(&d.Description, f.Description)
	setString(&d.Weight, f.Weight)
	setString(&d.Category, f.Category)
	setString(&d.Brand, f.Brand)
	setString(&d.SEO.MetaTitle, f.MetaTitle)
	setString(&d.SEO.MetaDescription, f.MetaDescription)
	setString(&d.SEO.CanonicalTag, f.CanonicalTag)
	if f.IsBestSeller != nil {
		d.IsBestSeller = *f.IsBestSeller
	}
	if f.IsNewArrival != nil {
		d.IsNewArrival = *f.IsNewArrival
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// ValidateForSubmit checks the fields required before anything is sent
func (d *ProductDraft) ValidateForSubmit() error {
	if strings.TrimSpace(d.name) == "" {
		return invalid("name", "Product name is required!")
	}
	if d.Category == "" {
		return invalid("category", "Category is required!")
	}
	return nil
}

// View is the JSON shape of a draft returned to the operator
type View struct {
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	SlugOverridden  bool              `json:"slug_overridden"`
	OriginalSlug    string            `json:"original_slug,omitempty"`
	Description     string            `json:"description"`
	VariantMode     bool              `json:"variant_mode"`
	Price           string            `json:"price"`
	OfferPrice      string            `json:"offer_price"`
	DiscountPercent string            `json:"discount_percent"`
	Stock           *int              `json:"stock"`
	Weight          string            `json:"weight"`
	Category        string            `json:"category"`
	Brand           string            `json:"brand"`
	IsBestSeller    bool              `json:"is_best_seller"`
	IsNewArrival    bool              `json:"is_new_arrival"`
	Tags            []string          `json:"tags"`
	Keywords        []string          `json:"keywords"`
	Images          []model.ImageView `json:"images"`
	ImageLimit      int               `json:"image_limit"`
	Variants        []VariantView     `json:"variants"`
	SEO             SEO               `json:"seo"`
}

func (d *ProductDraft) View() View {
	variants := make([]VariantView, 0, len(d.variants))
	for _, v := range d.variants {
		variants = append(variants, v.View())
	}
	return View{
		Name:            d.name,
		Slug:            d.slug,
		SlugOverridden:  d.slugOverridden,
		OriginalSlug:    d.originalSlug,
		Description:     d.Description,
		VariantMode:     d.variantMode,
		Price:           formatMoney(d.Price),
		OfferPrice:      formatMoney(d.OfferPrice),
		DiscountPercent: d.Quote().DiscountPercent.StringFixed(2),
		Stock:           d.Stock,
		Weight:          d.Weight,
		Category:        d.Category,
		Brand:           d.Brand,
		IsBestSeller:    d.IsBestSeller,
		IsNewArrival:    d.IsNewArrival,
		Tags:            d.Tags(),
		Keywords:        d.Keywords(),
		Images:          viewImages(d.images),
		ImageLimit:      d.imageLimit,
		Variants:        variants,
		SEO:             d.SEO,
	}
}
