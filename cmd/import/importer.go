package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/internal/app/service"
	"github.com/ikkim/catalog-console/pkg/logger"
)

// Importer replays spreadsheet rows through editing sessions so imported
// products get the same validation and wire format as hand-edited ones.
type Importer struct {
	editor service.EditorService
}

func NewImporter(editor service.EditorService) *Importer {
	return &Importer{editor: editor}
}

// Import builds and submits one product. The session is discarded when any
// step fails.
func (im *Importer) Import(ctx context.Context, p *ProductRow) (result *service.SubmitResult, err error) {
	view, err := im.editor.Open(ctx, "")
	if err != nil {
		return nil, err
	}
	id := view.ID
	defer func() {
		if err == nil {
			return
		}
		if derr := im.editor.Discard(ctx, id); derr != nil && !errors.Is(derr, service.ErrSessionNotFound) {
			logger.Warn("Failed to discard import session", map[string]interface{}{
				"session_id": id,
				"error":      derr.Error(),
			})
		}
	}()

	if _, err = im.editor.UpdateFields(id, p.fields()); err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	for _, tag := range p.Tags {
		if _, err = im.editor.AddTag(id, tag); err != nil {
			return nil, fmt.Errorf("tag %q: %w", tag, err)
		}
	}
	for _, kw := range p.Keywords {
		if _, err = im.editor.AddKeyword(id, kw); err != nil {
			return nil, fmt.Errorf("keyword %q: %w", kw, err)
		}
	}

	if len(p.Variants) > 0 {
		if _, _, err = im.editor.SetVariantMode(ctx, id, true); err != nil {
			return nil, fmt.Errorf("variant mode: %w", err)
		}
		for _, v := range p.Variants {
			if err = im.addVariant(ctx, id, v); err != nil {
				return nil, fmt.Errorf("variants row %d: %w", v.Line, err)
			}
		}
	}

	result, err = im.editor.Submit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	return result, nil
}

func (im *Importer) addVariant(ctx context.Context, id string, v VariantRow) error {
	attrType, err := im.findType(ctx, id, v.Type)
	if err != nil {
		return err
	}
	if _, err := im.editor.SelectType(ctx, id, attrType.ID); err != nil {
		return err
	}

	value, err := im.findValue(ctx, id, attrType.ID, v.Value)
	if err != nil {
		return err
	}
	if value != nil {
		if _, err := im.editor.SelectValue(ctx, id, value.ID); err != nil {
			return err
		}
	} else {
		created, _, err := im.editor.CreateValue(ctx, id, valuePayload(attrType.DisplayKind, v.Value))
		if err != nil {
			return err
		}
		logger.Info("Created attribute value during import", map[string]interface{}{
			"type":     attrType.Name,
			"value_id": created.ID,
			"label":    created.DisplayLabel(),
		})
	}

	if _, err := im.editor.UpdateComposer(id, v.patch()); err != nil {
		return err
	}
	_, _, err = im.editor.CommitVariant(id)
	return err
}

func (im *Importer) findType(ctx context.Context, id, name string) (*model.AttributeType, error) {
	types, err := im.editor.ListTypes(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range types {
		if strings.EqualFold(types[i].Name, name) || types[i].ID == name {
			return &types[i], nil
		}
	}
	return nil, fmt.Errorf("unknown variant type %q", name)
}

func (im *Importer) findValue(ctx context.Context, id, typeID, label string) (*model.AttributeValue, error) {
	values, err := im.editor.ListValues(ctx, id, typeID)
	if err != nil {
		return nil, err
	}
	for i := range values {
		v := &values[i]
		if strings.EqualFold(v.DisplayLabel(), label) || strings.EqualFold(v.Label, label) || v.ID == label {
			return v, nil
		}
		if v.Unit != "" && strings.EqualFold(v.Label+" "+v.Unit, label) {
			return v, nil
		}
	}
	return nil, nil
}

// valuePayload turns a cell such as "#ff0000", "500 ml" or "Cotton" into the
// creation payload for the type's display kind.
func valuePayload(kind model.DisplayKind, cell string) model.ValuePayload {
	switch kind {
	case model.DisplayColor:
		return model.ColorPayload{ColorCode: cell}
	case model.DisplayUnit:
		label, unit := cell, ""
		if i := strings.LastIndex(cell, " "); i > 0 {
			label, unit = strings.TrimSpace(cell[:i]), strings.TrimSpace(cell[i+1:])
		}
		return model.UnitPayload{Label: label, Unit: unit}
	default:
		return model.TextPayload{Label: cell}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (p *ProductRow) fields() draft.Fields {
	return draft.Fields{
		Name:            optional(p.Name),
		Slug:            optional(p.Slug),
		Description:     optional(p.Description),
		Price:           optional(p.Price),
		OfferPrice:      optional(p.OfferPrice),
		Stock:           optional(p.Stock),
		Weight:          optional(p.Weight),
		Category:        optional(p.Category),
		Brand:           optional(p.Brand),
		IsBestSeller:    &p.IsBestSeller,
		IsNewArrival:    &p.IsNewArrival,
		MetaTitle:       optional(p.MetaTitle),
		MetaDescription: optional(p.MetaDescription),
		CanonicalTag:    optional(p.CanonicalTag),
	}
}

func (v VariantRow) patch() draft.VariantPatch {
	return draft.VariantPatch{
		Name:       optional(v.Name),
		Price:      optional(v.Price),
		OfferPrice: optional(v.OfferPrice),
		Stock:      optional(v.Stock),
		Weight:     optional(v.Weight),
	}
}
