package model

import "strings"

// DisplayKind governs how values of an attribute type are captured and rendered
type DisplayKind string

const (
	DisplayColor DisplayKind = "color"
	DisplayUnit  DisplayKind = "unit"
	DisplayText  DisplayKind = "text"
)

// ParseDisplayKind maps the catalog's displayType string onto a DisplayKind.
// Anything unrecognized is rendered as plain text.
func ParseDisplayKind(s string) DisplayKind {
	switch DisplayKind(strings.ToLower(strings.TrimSpace(s))) {
	case DisplayColor:
		return DisplayColor
	case DisplayUnit:
		return DisplayUnit
	default:
		return DisplayText
	}
}

// AttributeType is an operator-defined variant category (Color, Size, ...)
type AttributeType struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	DisplayKind DisplayKind `json:"display_kind"`
}

// AttributeValue is one concrete value of an AttributeType
type AttributeValue struct {
	ID        string `json:"id"`
	TypeID    string `json:"type_id"`
	Label     string `json:"label"`
	ColorCode string `json:"color_code,omitempty"`
	Unit      string `json:"unit,omitempty"`
	ColorName string `json:"color_name,omitempty"` // decorative nearest named color
}

// DisplayLabel renders the value the way the value selector shows it
func (v AttributeValue) DisplayLabel() string {
	if v.Unit != "" {
		return strings.TrimSpace(v.Label + " (" + v.Unit + ")")
	}
	return v.Label
}

// Swatch returns the color to paint next to the label, if any
func (v AttributeValue) Swatch() string {
	return v.ColorCode
}

// ValuePayload is the kind-specific input for creating an AttributeValue.
// The set of implementations is closed: ColorPayload, UnitPayload, TextPayload.
type ValuePayload interface {
	Kind() DisplayKind
	isValuePayload()
}

// ColorPayload creates a color value; the label is the color code itself
type ColorPayload struct {
	ColorCode string
}

// UnitPayload creates a quantity value such as "500" + "ml"
type UnitPayload struct {
	Label string
	Unit  string
}

// TextPayload creates a free-text value
type TextPayload struct {
	Label string
}

func (ColorPayload) Kind() DisplayKind { return DisplayColor }
func (UnitPayload) Kind() DisplayKind  { return DisplayUnit }
func (TextPayload) Kind() DisplayKind  { return DisplayText }

func (ColorPayload) isValuePayload() {}
func (UnitPayload) isValuePayload()  {}
func (TextPayload) isValuePayload()  {}
