package canonical

import (
	"math"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/mosaic-etl/salesledger/pkg/table"
)

// articulDigits is how many digits a valid articul carries: 4+3+2.
const articulDigits = 9

// NormalizeArticul canonicalizes a product code to the DDDD-DDD-DD form.
// Absent input stays absent. Text is transliterated and trimmed, then
// all decimal digits are extracted regardless of separators; fewer than
// nine digits cannot form a code and yield absent. Longer runs are
// truncated to the first nine. Idempotent on already-canonical codes.
func NormalizeArticul(c table.Cell) table.Cell {
	if c.IsAbsent() {
		return table.Absent()
	}
	if c.Kind() == table.KindFloat && math.IsNaN(c.Float64()) {
		return table.Absent()
	}

	text := strings.TrimSpace(unidecode.Unidecode(articulText(c)))
	if text == "" {
		return table.Absent()
	}

	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < articulDigits {
		return table.Absent()
	}
	d = d[:articulDigits]

	return table.String(d[0:4] + "-" + d[4:7] + "-" + d[7:9])
}

// CheckArticul normalizes a product code and reports whether the value
// was invalid: normalization produced absence even though the original
// held non-blank text. Absent input is missing, not invalid.
func CheckArticul(c table.Cell) (table.Cell, bool) {
	normalized := NormalizeArticul(c)
	if !normalized.IsAbsent() {
		return normalized, false
	}
	if c.IsAbsent() {
		return normalized, false
	}
	if c.Kind() == table.KindFloat && math.IsNaN(c.Float64()) {
		return normalized, false
	}
	return normalized, strings.TrimSpace(articulText(c)) != ""
}

// articulText renders a cell for digit extraction. Floats use plain
// notation: scientific form would leak exponent digits into the code.
func articulText(c table.Cell) string {
	switch c.Kind() {
	case table.KindFloat:
		return strconv.FormatFloat(c.Float64(), 'f', -1, 64)
	default:
		return c.Render()
	}
}
