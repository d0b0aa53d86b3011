package canonical

import (
	"math"
	"strconv"
	"strings"

	"github.com/mosaic-etl/salesledger/pkg/table"
)

// numericReplacer strips the spacing characters that show up inside
// numbers exported from spreadsheets: regular spaces and non-breaking
// spaces used as thousands separators.
var numericReplacer = strings.NewReplacer(" ", "", " ", "")

// CoerceInt forces a cell into an integer quantity. Blank and dash
// values mean zero; fractional values truncate; unparseable text falls
// back to zero rather than failing the row.
func CoerceInt(c table.Cell) table.Cell {
	switch c.Kind() {
	case table.KindAbsent:
		return table.Int(0)
	case table.KindInt:
		return c
	case table.KindFloat:
		f := c.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return table.Int(0)
		}
		return table.Int(int64(f))
	case table.KindBool:
		if c.Boolean() {
			return table.Int(1)
		}
		return table.Int(0)
	default:
		text := strings.TrimSpace(c.Str())
		if text == "" || text == "-" {
			return table.Int(0)
		}
		text = numericReplacer.Replace(text)
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return table.Int(v)
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return table.Int(int64(f))
		}
		return table.Int(0)
	}
}

// CoerceFloat forces a cell into a monetary amount. Decimal commas are
// normalized to points before parsing ("1 234,56" parses as 1234.56);
// blank, dash, and unparseable values fall back to zero.
func CoerceFloat(c table.Cell) table.Cell {
	switch c.Kind() {
	case table.KindAbsent:
		return table.Float(0)
	case table.KindInt:
		return table.Float(float64(c.Int64()))
	case table.KindFloat:
		if math.IsNaN(c.Float64()) {
			return table.Float(0)
		}
		return c
	case table.KindBool:
		if c.Boolean() {
			return table.Float(1)
		}
		return table.Float(0)
	default:
		text := strings.TrimSpace(c.Str())
		if text == "" || text == "-" {
			return table.Float(0)
		}
		text = numericReplacer.Replace(text)
		text = strings.ReplaceAll(text, ",", ".")
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(f) {
			return table.Float(0)
		}
		return table.Float(f)
	}
}

// CleanStoreKey trims a store code and nulls out blanks so empty store
// cells do not split the composite key into "" vs absent.
func CleanStoreKey(c table.Cell) table.Cell {
	if c.IsAbsent() {
		return table.Absent()
	}
	text := strings.TrimSpace(c.Render())
	if text == "" {
		return table.Absent()
	}
	return table.String(text)
}
