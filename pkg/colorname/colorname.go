// Package colorname finds a human-readable name for a hex color code.
// The result is decorative only; an empty string means no name was found.
package colorname

import (
	"math"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	shortHex = regexp.MustCompile(`^#?[0-9A-Fa-f]{3}$`)
	alphaHex = regexp.MustCompile(`^#?[0-9A-Fa-f]{4}$`)
	longHex  = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
	rgbaHex  = regexp.MustCompile(`^#?[0-9A-Fa-f]{8}$`)
)

type entry struct {
	name  string
	color colorful.Color
}

var palette = buildPalette()

func buildPalette() []entry {
	out := make([]entry, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		c, ok := colorful.MakeColor(colornames.Map[name])
		if !ok {
			continue
		}
		out = append(out, entry{name: name, color: c})
	}
	return out
}

// Normalize turns a 3-, 4-, 6- or 8-digit hex code into the 6-digit
// "#rrggbb" form. Alpha digits are dropped. It returns "" for anything that is not hex.
func Normalize(code string) string {
	hex := strings.TrimPrefix(strings.TrimSpace(code), "#")
	switch {
	case shortHex.MatchString(hex):
		hex = double(hex)
	case alphaHex.MatchString(hex):
		hex = double(hex[:3])
	case longHex.MatchString(hex):
	case rgbaHex.MatchString(hex):
		hex = hex[:6]
	default:
		return ""
	}
	return "#" + strings.ToLower(hex)
}

func double(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

// Nearest returns the name of the closest named color by CIEDE2000 distance.
func Nearest(code string) string {
	hex := Normalize(code)
	if hex == "" {
		return ""
	}
	target, err := colorful.Hex(hex)
	if err != nil {
		return ""
	}

	best, bestDist := "", math.MaxFloat64
	for _, e := range palette {
		if dist := target.DistanceCIEDE2000(e.color); dist < bestDist {
			best, bestDist = e.name, dist
		}
	}
	return best
}
