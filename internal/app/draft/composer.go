package draft

import (
	"github.com/google/uuid"
	"github.com/ikkim/catalog-console/internal/app/model"
)

type ComposerState string

const (
	StateIdle          ComposerState = "idle"
	StateTypeSelected  ComposerState = "type_selected"
	StateValueSelected ComposerState = "value_selected"
	StateCreatingValue ComposerState = "creating_value"
	StateReadyToAdd    ComposerState = "ready_to_add"
)

// Composer builds one variant at a time before it is added to the draft.
// Its state is derived from what has been selected, so it cannot drift.
type Composer struct {
	attrType *model.AttributeType
	value    *model.AttributeValue
	creating bool
	fields   variantFields
	images   *ImageList
	limit    int
}

func NewComposer(imageLimit int) *Composer {
	images := NewImageList(imageLimit)
	return &Composer{images: images, limit: images.Limit()}
}

func (c *Composer) State() ComposerState {
	switch {
	case c.attrType == nil:
		return StateIdle
	case c.creating:
		return StateCreatingValue
	case c.value == nil:
		return StateTypeSelected
	case c.fields.Price.Valid:
		return StateReadyToAdd
	default:
		return StateValueSelected
	}
}

func (c *Composer) Type() (model.AttributeType, bool) {
	if c.attrType == nil {
		return model.AttributeType{}, false
	}
	return *c.attrType, true
}

func (c *Composer) Value() (model.AttributeValue, bool) {
	if c.value == nil {
		return model.AttributeValue{}, false
	}
	return *c.value, true
}

func (c *Composer) Images() *ImageList { return c.images }

// SelectType picks the attribute type of the next variant. The previous
// value selection and the staged images of the draft variant are dropped;
// the dropped images are returned for preview release.
func (c *Composer) SelectType(t model.AttributeType) []model.ImageAsset {
	c.attrType = &t
	c.value = nil
	c.creating = false
	return c.images.Clear()
}

// SelectValue picks an existing value of the selected type
func (c *Composer) SelectValue(v model.AttributeValue) error {
	if c.attrType == nil {
		return invalid("type", "Please select a variant type!")
	}
	if v.TypeID != c.attrType.ID {
		return invalid("value", "Selected value does not belong to "+c.attrType.Name+".")
	}
	c.value = &v
	c.creating = false
	return nil
}

// BeginCreateValue enters the value creation sub-flow
func (c *Composer) BeginCreateValue() error {
	if c.attrType == nil {
		return invalid("type", "Please select a variant type!")
	}
	c.creating = true
	return nil
}

// CompleteCreateValue auto-selects a freshly created value
func (c *Composer) CompleteCreateValue(v model.AttributeValue) error {
	if err := c.SelectValue(v); err != nil {
		return err
	}
	c.creating = false
	return nil
}

func (c *Composer) CancelCreateValue() {
	c.creating = false
}

// Apply edits the draft variant's fields
func (c *Composer) Apply(p VariantPatch) error {
	return p.apply(&c.fields)
}

// Commit turns the draft variant into a Variant and appends it to d. The
// type selection survives so several values of one type can be added in a
// row; every other field is reset.
func (c *Composer) Commit(d *ProductDraft) (*Variant, error) {
	if !d.IsVariantMode() {
		return nil, invalid("variant_mode", "Enable variants before adding one!")
	}
	if c.attrType == nil {
		return nil, invalid("type", "Please select a variant type!")
	}
	if c.value == nil || c.creating {
		return nil, invalid("value", "Please select or create a variant value!")
	}
	if !c.fields.Price.Valid {
		return nil, invalid("price", "Price is required!")
	}

	name := c.fields.Name
	if name == "" {
		name = c.value.Label
	}
	v := &Variant{
		LocalID:          uuid.NewString(),
		AttributeTypeID:  c.attrType.ID,
		AttributeValueID: c.value.ID,
		DisplayLabel:     c.value.Label,
		Name:             name,
		Price:            c.fields.Price,
		OfferPrice:       c.fields.OfferPrice,
		Stock:            c.fields.Stock,
		Weight:           c.fields.Weight,
		Images:           c.images,
	}
	d.appendVariant(v)

	c.value = nil
	c.fields = variantFields{}
	c.images = NewImageList(c.limit)
	return v, nil
}

// Reset drops everything, including the type selection
func (c *Composer) Reset() []model.ImageAsset {
	c.attrType = nil
	c.value = nil
	c.creating = false
	c.fields = variantFields{}
	return c.images.Clear()
}

// ComposerView is the JSON shape of the composer
type ComposerView struct {
	State           ComposerState         `json:"state"`
	Type            *model.AttributeType  `json:"type,omitempty"`
	Value           *model.AttributeValue `json:"value,omitempty"`
	Name            string                `json:"name"`
	Price           string                `json:"price"`
	OfferPrice      string                `json:"offer_price"`
	DiscountPercent string                `json:"discount_percent"`
	Stock           *int                  `json:"stock"`
	Weight          string                `json:"weight"`
	Images          []model.ImageView     `json:"images"`
}

func (c *Composer) View() ComposerView {
	preview := Variant{Price: c.fields.Price, OfferPrice: c.fields.OfferPrice}
	return ComposerView{
		State:           c.State(),
		Type:            c.attrType,
		Value:           c.value,
		Name:            c.fields.Name,
		Price:           formatMoney(c.fields.Price),
		OfferPrice:      formatMoney(c.fields.OfferPrice),
		DiscountPercent: preview.DiscountPercent().StringFixed(2),
		Stock:           c.fields.Stock,
		Weight:          c.fields.Weight,
		Images:          viewImages(c.images),
	}
}
