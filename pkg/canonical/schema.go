// Package canonical defines the fixed target schema weekly marketplace
// extracts are mapped onto, and the normalization rules that get them
// there: header canonicalization against per-platform alias tables,
// articul (product code) validation, and numeric coercion.
package canonical

// Canonical column names. Every prepared batch carries exactly these
// columns first, in this order, regardless of what the source file had.
const (
	ColIDKey               = "id_key"
	ColArticulProduct      = "articul_product"
	ColArticulStore        = "articul_store"
	ColPlayground          = "playground"
	ColOrdered             = "ordered"
	ColOrderedForTheAmount = "ordered_for_the_amount"
	ColReportPeriodStart   = "report_period_start"
	ColReportPeriodEnd     = "report_period_end"
	ColReportWeek          = "report_week"
	ColFileSource          = "file_source"
	ColNameProduct         = "name_product"
)

// OtherPrefix marks columns that did not match any canonical field and
// pass through untouched.
const OtherPrefix = "Other_"

// columns is the canonical order. Immutable.
var columns = []string{
	ColIDKey,
	ColArticulProduct,
	ColArticulStore,
	ColPlayground,
	ColOrdered,
	ColOrderedForTheAmount,
	ColReportPeriodStart,
	ColReportPeriodEnd,
	ColReportWeek,
	ColFileSource,
}

// keyColumns is the composite business key: one marketplace row is
// identified by product code, store code, period start, and platform.
var keyColumns = []string{
	ColArticulProduct,
	ColArticulStore,
	ColReportPeriodStart,
	ColPlayground,
}

// Columns returns the canonical column names in output order.
func Columns() []string {
	return append([]string(nil), columns...)
}

// KeyColumns returns the composite-key column names.
func KeyColumns() []string {
	return append([]string(nil), keyColumns...)
}
