package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	productsSheet = "products"
	variantsSheet = "variants"
)

// ProductRow is one line of the products sheet
type ProductRow struct {
	Line            int
	Key             string // slug when given, otherwise name
	Name            string
	Slug            string
	Description     string
	Price           string
	OfferPrice      string
	Stock           string
	Weight          string
	Category        string
	Brand           string
	Tags            []string
	Keywords        []string
	IsBestSeller    bool
	IsNewArrival    bool
	MetaTitle       string
	MetaDescription string
	CanonicalTag    string
	Variants        []VariantRow
}

// VariantRow is one line of the variants sheet
type VariantRow struct {
	Line       int
	Product    string
	Type       string
	Value      string
	Name       string
	Price      string
	OfferPrice string
	Stock      string
	Weight     string
}

// header maps a lower-cased column title to its index
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, title := range row {
		key := strings.ToLower(strings.TrimSpace(title))
		key = strings.ReplaceAll(key, " ", "_")
		if key != "" {
			h[key] = i
		}
	}
	return h
}

func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "o", "x":
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

// readProductsFromXLSX reads the products sheet (or the first sheet when no
// sheet is named "products") and attaches rows of the optional variants sheet.
func readProductsFromXLSX(filePath string) ([]*ProductRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := productsSheet
	if idx, _ := f.GetSheetIndex(productsSheet); idx < 0 {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data found in sheet %q", sheetName)
	}

	h := newHeader(rows[0])
	if _, ok := h["name"]; !ok {
		return nil, fmt.Errorf("sheet %q has no name column", sheetName)
	}

	var products []*ProductRow
	byKey := make(map[string]*ProductRow)
	for i, row := range rows[1:] {
		p := &ProductRow{
			Line:            i + 2,
			Name:            h.get(row, "name"),
			Slug:            h.get(row, "slug"),
			Description:     h.get(row, "description"),
			Price:           h.get(row, "price"),
			OfferPrice:      h.get(row, "offer_price"),
			Stock:           h.get(row, "stock"),
			Weight:          h.get(row, "weight"),
			Category:        h.get(row, "category"),
			Brand:           h.get(row, "brand"),
			Tags:            splitList(h.get(row, "tags")),
			Keywords:        splitList(h.get(row, "keywords")),
			IsBestSeller:    parseFlag(h.get(row, "best_seller")),
			IsNewArrival:    parseFlag(h.get(row, "new_arrival")),
			MetaTitle:       h.get(row, "meta_title"),
			MetaDescription: h.get(row, "meta_description"),
			CanonicalTag:    h.get(row, "canonical_tag"),
		}
		if p.Name == "" {
			continue
		}
		p.Key = p.Slug
		if p.Key == "" {
			p.Key = p.Name
		}
		products = append(products, p)
		byKey[strings.ToLower(p.Key)] = p
	}

	if idx, _ := f.GetSheetIndex(variantsSheet); idx < 0 {
		return products, nil
	}
	vrows, err := f.GetRows(variantsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read variant rows: %w", err)
	}
	if len(vrows) < 2 {
		return products, nil
	}

	vh := newHeader(vrows[0])
	for i, row := range vrows[1:] {
		v := VariantRow{
			Line:       i + 2,
			Product:    vh.get(row, "product"),
			Type:       vh.get(row, "type"),
			Value:      vh.get(row, "value"),
			Name:       vh.get(row, "name"),
			Price:      vh.get(row, "price"),
			OfferPrice: vh.get(row, "offer_price"),
			Stock:      vh.get(row, "stock"),
			Weight:     vh.get(row, "weight"),
		}
		if v.Product == "" {
			continue
		}
		p, ok := byKey[strings.ToLower(v.Product)]
		if !ok {
			return nil, fmt.Errorf("variants row %d: unknown product %q", v.Line, v.Product)
		}
		p.Variants = append(p.Variants, v)
	}
	return products, nil
}
