package draft

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/shopspring/decimal"
)

// Field is one entry of the flattened payload. Exactly one of Value and File
// is meaningful: File is set for binary parts.
type Field struct {
	Name  string
	Value string
	File  *model.StagedImage
}

// Payload is the ordered multipart field set sent to the catalog
type Payload struct {
	Fields []Field
}

// Encode flattens the draft into the catalog's field naming scheme. It reads
// the draft only.
func Encode(d *ProductDraft) *Payload {
	p := &Payload{}

	price, offer := formatMoney(d.Price), formatMoney(d.OfferPrice)
	quote := d.Quote()
	if d.variantMode {
		// Zero tells the catalog that prices live on the variants.
		price, offer = "0", "0"
		quote.DiscountPercent = decimal.Zero
	}

	p.add("name", d.name)
	p.add("description", d.Description)
	p.add("price", price)
	p.add("slug", d.slug)
	p.add("offerPrice", offer)
	p.add("discount", quote.DiscountPercent.String())
	p.add("stock", formatStock(d.Stock))
	p.add("weight", d.Weight)
	p.add("category", d.Category)
	p.add("brand", d.Brand)
	p.add("isBestSeller", strconv.FormatBool(d.IsBestSeller))
	p.add("isNewArrival", strconv.FormatBool(d.IsNewArrival))
	p.add("metaTitle", d.SEO.MetaTitle)
	p.add("metaDescription", d.SEO.MetaDescription)
	p.add("canonicalTag", d.SEO.CanonicalTag)
	for _, k := range d.keywords {
		p.add("keywords[]", k)
	}
	for _, t := range d.tags {
		p.add("tags[]", t)
	}
	p.addImages(d.images, "productImages", "existingImages")

	for i, v := range d.variants {
		prefix := fmt.Sprintf("variants[%d]", i)
		p.addImages(v.Images, prefix+"[variantImages]", prefix+"[existingVariantImages]")
		p.add(prefix+"[name]", v.Name)
		p.add(prefix+"[type]", v.DisplayLabel)
		p.add(prefix+"[price]", formatMoney(v.Price))
		p.add(prefix+"[offerPrice]", formatMoney(v.OfferPrice))
		p.add(prefix+"[discount]", v.DiscountPercent().String())
		p.add(prefix+"[stock]", formatStock(v.Stock))
		p.add(prefix+"[weight]", v.Weight)
	}
	return p
}

func (p *Payload) add(name, value string) {
	p.Fields = append(p.Fields, Field{Name: name, Value: value})
}

func (p *Payload) addImages(l *ImageList, stagedName, persistedName string) {
	for _, item := range l.Items() {
		switch img := item.(type) {
		case *model.StagedImage:
			p.Fields = append(p.Fields, Field{Name: stagedName, File: img})
		case model.PersistedImage:
			p.add(persistedName, img.Reference)
		}
	}
}

// Names lists every field name in emission order, repeats included
func (p *Payload) Names() []string {
	out := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Values returns the text values emitted under name
func (p *Payload) Values(name string) []string {
	var out []string
	for _, f := range p.Fields {
		if f.Name == name && f.File == nil {
			out = append(out, f.Value)
		}
	}
	return out
}

// Value returns the first text value emitted under name
func (p *Payload) Value(name string) (string, bool) {
	vals := p.Values(name)
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Files returns the binary parts emitted under name
func (p *Payload) Files(name string) []*model.StagedImage {
	var out []*model.StagedImage
	for _, f := range p.Fields {
		if f.Name == name && f.File != nil {
			out = append(out, f.File)
		}
	}
	return out
}

// VariantGroups counts distinct variants[i] prefixes
func (p *Payload) VariantGroups() int {
	seen := map[string]bool{}
	for _, f := range p.Fields {
		if !strings.HasPrefix(f.Name, "variants[") {
			continue
		}
		if end := strings.Index(f.Name, "]"); end > 0 {
			seen[f.Name[:end+1]] = true
		}
	}
	return len(seen)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode writes the payload as multipart/form-data and returns the content
// type including the boundary.
func (p *Payload) Encode(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, f := range p.Fields {
		if f.File == nil {
			if err := mw.WriteField(f.Name, f.Value); err != nil {
				return "", fmt.Errorf("failed to write field %s: %w", f.Name, err)
			}
			continue
		}

		contentType := f.File.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Name), quoteEscaper.Replace(f.File.Filename)))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return "", fmt.Errorf("failed to create part %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.File.Data); err != nil {
			return "", fmt.Errorf("failed to write part %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return mw.FormDataContentType(), nil
}
