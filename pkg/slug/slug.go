package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make creates a URL-friendly slug from the given text.
// Diacritics are stripped and every run of other symbols becomes one hyphen.
//
// Examples:
//   - "Red Shoes" → "red-shoes"
//   - "Crème Brûlée  (500g)" → "creme-brulee-500g"
//   - "--Hello, World!--" → "hello-world"
func Make(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}

	s := strings.ToLower(strings.TrimSpace(folded))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
