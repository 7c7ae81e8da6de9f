package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
)

// AttributeType is a variant attribute category such as Color or Size
type AttributeType struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	DisplayType string `json:"displayType"`
}

// TypeName is one concrete value of an AttributeType
type TypeName struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	ColorCode string `json:"colorCode,omitempty"`
	Unit      string `json:"unit,omitempty"`
}

// NewTypeName is the body of one entry in a value creation request
type NewTypeName struct {
	Name      string `json:"name"`
	ColorCode string `json:"colorCode"`
	Unit      string `json:"unit"`
}

// CreateTypeNamesRequest represents the request body for POST /admin/type-names
type CreateTypeNamesRequest struct {
	TypeID string        `json:"typeId"`
	Names  []NewTypeName `json:"names"`
}

// Option is a dropdown entry (brand or subcategory)
type Option struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Ref holds a document id that the API sends either as a plain string or as
// a populated object with an _id field.
type Ref string

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = Ref(obj.ID)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Ref(s)
	return nil
}

// Text accepts a JSON string or number and keeps its literal text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Keywords accepts either a JSON array or a comma-separated string.
type Keywords []string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		out := Keywords{}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*k = out
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*k = list
	return nil
}

// ProductVariant is a persisted variant as returned by GET /admin/product/:slug
type ProductVariant struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Price         Text     `json:"price"`
	OfferPrice    Text     `json:"offerPrice"`
	Stock         Text     `json:"stock"`
	Weight        Text     `json:"weight"`
	VariantImages []string `json:"variantImages"`
}

// Product is a persisted product as returned by GET /admin/product/:slug
type Product struct {
	ID              string           `json:"_id"`
	Name            string           `json:"name"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	Price           Text             `json:"price"`
	OfferPrice      Text             `json:"offerPrice"`
	Stock           Text             `json:"stock"`
	Weight          Text             `json:"weight"`
	Category        Ref              `json:"category"`
	Brand           Ref              `json:"brand"`
	Tags            []string         `json:"tags"`
	Keywords        Keywords         `json:"keywords"`
	ProductImages   []string         `json:"productImages"`
	IsBestSeller    bool             `json:"isBestSeller"`
	IsNewArrival    bool             `json:"isNewArrival"`
	Variants        []ProductVariant `json:"variants"`
	MetaTitle       string           `json:"metaTitle"`
	MetaDescription string           `json:"metaDescription"`
	CanonicalTag    string           `json:"canonicalTag"`
}

// Ack is the acknowledgment returned by create and update calls
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}
