package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/ikkim/catalog-console/pkg/colorname"
	"github.com/ikkim/catalog-console/pkg/logger"
	"github.com/ikkim/catalog-console/pkg/metrics"
)

var (
	ErrTypeNotFound        = errors.New("attribute type not found")
	ErrValueNotFound       = errors.New("attribute value not found")
	ErrCreatedValueMissing = errors.New("created value not returned by catalog")
)

// AttributeRegistry is a read-through cache of attribute types and their
// values, scoped to one editing session. Types are fetched once; values are
// fetched per type on first use and refetched after a value is created.
type AttributeRegistry struct {
	api CatalogAPI

	mu     sync.Mutex
	types  []model.AttributeType
	loaded bool
	values map[string][]model.AttributeValue
}

func NewAttributeRegistry(api CatalogAPI) *AttributeRegistry {
	return &AttributeRegistry{
		api:    api,
		values: make(map[string][]model.AttributeValue),
	}
}

// ListTypes returns the session's snapshot of attribute types
func (r *AttributeRegistry) ListTypes(ctx context.Context) ([]model.AttributeType, error) {
	r.mu.Lock()
	if r.loaded {
		out := append([]model.AttributeType(nil), r.types...)
		r.mu.Unlock()
		return out, nil
	}
	r.mu.Unlock()

	remote, err := r.api.ListTypes(ctx)
	if err != nil {
		logger.Error("Failed to fetch attribute types", err)
		return nil, err
	}

	types := make([]model.AttributeType, 0, len(remote))
	for _, t := range remote {
		types = append(types, model.AttributeType{
			ID:          t.ID,
			Name:        t.Name,
			DisplayKind: model.ParseDisplayKind(t.DisplayType),
		})
	}

	r.mu.Lock()
	if !r.loaded {
		r.types, r.loaded = types, true
	}
	out := append([]model.AttributeType(nil), r.types...)
	r.mu.Unlock()

	logger.Debug("Attribute types loaded", map[string]interface{}{
		"count": len(out),
	})
	return out, nil
}

func (r *AttributeRegistry) Type(ctx context.Context, typeID string) (model.AttributeType, error) {
	types, err := r.ListTypes(ctx)
	if err != nil {
		return model.AttributeType{}, err
	}
	for _, t := range types {
		if t.ID == typeID {
			return t, nil
		}
	}
	return model.AttributeType{}, ErrTypeNotFound
}

// ValuesFor returns the values of one type, fetching them on first use
func (r *AttributeRegistry) ValuesFor(ctx context.Context, typeID string) ([]model.AttributeValue, error) {
	attrType, err := r.Type(ctx, typeID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if cached, ok := r.values[typeID]; ok {
		out := append([]model.AttributeValue(nil), cached...)
		r.mu.Unlock()
		return out, nil
	}
	r.mu.Unlock()

	return r.fetchValues(ctx, attrType)
}

func (r *AttributeRegistry) fetchValues(ctx context.Context, attrType model.AttributeType) ([]model.AttributeValue, error) {
	remote, err := r.api.ListValues(ctx, attrType.ID)
	if err != nil {
		logger.Error("Failed to fetch attribute values", err, map[string]interface{}{
			"type_id": attrType.ID,
		})
		return nil, err
	}

	values := make([]model.AttributeValue, 0, len(remote))
	for _, tn := range remote {
		values = append(values, toValue(attrType, tn))
	}

	r.mu.Lock()
	r.values[attrType.ID] = values
	r.mu.Unlock()

	logger.Debug("Attribute values loaded", map[string]interface{}{
		"type_id": attrType.ID,
		"count":   len(values),
	})
	return append([]model.AttributeValue(nil), values...), nil
}

func (r *AttributeRegistry) Value(ctx context.Context, typeID, valueID string) (model.AttributeValue, error) {
	values, err := r.ValuesFor(ctx, typeID)
	if err != nil {
		return model.AttributeValue{}, err
	}
	for _, v := range values {
		if v.ID == valueID {
			return v, nil
		}
	}
	return model.AttributeValue{}, ErrValueNotFound
}

// CreateValue validates the payload against the type's display kind, creates
// the value remotely and refreshes the type's cached values. The returned
// value carries its catalog id.
func (r *AttributeRegistry) CreateValue(ctx context.Context, typeID string, payload model.ValuePayload) (model.AttributeValue, error) {
	attrType, err := r.Type(ctx, typeID)
	if err != nil {
		return model.AttributeValue{}, err
	}
	name, err := newTypeName(attrType, payload)
	if err != nil {
		return model.AttributeValue{}, err
	}

	r.mu.Lock()
	known := make(map[string]bool, len(r.values[typeID]))
	for _, v := range r.values[typeID] {
		known[v.ID] = true
	}
	r.mu.Unlock()

	logger.Info("Creating attribute value", map[string]interface{}{
		"type_id": typeID,
		"kind":    attrType.DisplayKind,
		"name":    name.Name,
	})

	if _, err := r.api.CreateValue(ctx, typeID, []catalog.NewTypeName{name}); err != nil {
		logger.Error("Failed to create attribute value", err, map[string]interface{}{
			"type_id": typeID,
		})
		return model.AttributeValue{}, err
	}
	metrics.ValuesCreated.WithLabelValues(string(attrType.DisplayKind)).Inc()

	r.mu.Lock()
	delete(r.values, typeID)
	r.mu.Unlock()

	values, err := r.fetchValues(ctx, attrType)
	if err != nil {
		return model.AttributeValue{}, err
	}

	created, ok := findCreated(values, name, known)
	if !ok {
		logger.Warn("Created attribute value not found after refresh", map[string]interface{}{
			"type_id": typeID,
			"name":    name.Name,
		})
		return model.AttributeValue{}, ErrCreatedValueMissing
	}
	return created, nil
}

// newTypeName validates a payload locally; nothing reaches the network when
// it fails.
func newTypeName(attrType model.AttributeType, payload model.ValuePayload) (catalog.NewTypeName, error) {
	if payload == nil || payload.Kind() != attrType.DisplayKind {
		return catalog.NewTypeName{}, &draft.ValidationError{
			Field:   "payload",
			Message: attrType.Name + " values must be entered as " + string(attrType.DisplayKind) + ".",
		}
	}

	switch p := payload.(type) {
	case model.ColorPayload:
		code := colorname.Normalize(p.ColorCode)
		if code == "" {
			return catalog.NewTypeName{}, &draft.ValidationError{Field: "color_code", Message: "A valid hex color is required!"}
		}
		return catalog.NewTypeName{Name: code, ColorCode: code}, nil
	case model.UnitPayload:
		label, unit := strings.TrimSpace(p.Label), strings.TrimSpace(p.Unit)
		if label == "" {
			return catalog.NewTypeName{}, &draft.ValidationError{Field: "label", Message: "Name is required!"}
		}
		if unit == "" {
			return catalog.NewTypeName{}, &draft.ValidationError{Field: "unit", Message: "Unit is required!"}
		}
		return catalog.NewTypeName{Name: label, Unit: unit}, nil
	case model.TextPayload:
		label := strings.TrimSpace(p.Label)
		if label == "" {
			return catalog.NewTypeName{}, &draft.ValidationError{Field: "label", Message: "Name is required!"}
		}
		return catalog.NewTypeName{Name: label}, nil
	default:
		return catalog.NewTypeName{}, &draft.ValidationError{Field: "payload", Message: "Unsupported value payload."}
	}
}

// findCreated picks the refreshed value matching what was sent, preferring
// one whose id was not known before the create.
func findCreated(values []model.AttributeValue, sent catalog.NewTypeName, known map[string]bool) (model.AttributeValue, bool) {
	var fallback *model.AttributeValue
	for i := range values {
		v := values[i]
		if !strings.EqualFold(v.Label, sent.Name) || v.Unit != sent.Unit {
			continue
		}
		if !known[v.ID] {
			return v, true
		}
		fallback = &values[i]
	}
	if fallback != nil {
		return *fallback, true
	}
	return model.AttributeValue{}, false
}

func toValue(attrType model.AttributeType, tn catalog.TypeName) model.AttributeValue {
	v := model.AttributeValue{
		ID:        tn.ID,
		TypeID:    attrType.ID,
		Label:     tn.Name,
		ColorCode: tn.ColorCode,
		Unit:      tn.Unit,
	}
	// older color values carry the hex only in their name
	if v.ColorCode == "" && v.Unit == "" && attrType.DisplayKind == model.DisplayColor {
		v.ColorCode = colorname.Normalize(v.Label)
	}
	if v.ColorCode != "" {
		v.ColorName = colorname.Nearest(v.ColorCode)
	}
	return v
}
