package report

import (
	"strings"

	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// Enrich left-joins product names onto the report by business code.
// The second return value holds the rows that carry a code but ended up
// without a name, projected to the identifying columns and deduplicated
// for the unmatched-products quarantine.
func Enrich(report, master *table.Table) (enriched, unmatched *table.Table) {
	if report.IsEmpty() {
		return report, table.New(report.Columns()...)
	}

	names := make(map[string]table.Cell, master.NumRows())
	for r := 0; r < master.NumRows(); r++ {
		code := master.Cell(r, canonical.ColArticulProduct)
		if code.IsAbsent() {
			continue
		}
		if _, ok := names[code.Render()]; !ok {
			names[code.Render()] = master.Cell(r, canonical.ColNameProduct)
		}
	}

	enriched = report.Clone()
	enriched.AddColumn(canonical.ColNameProduct, table.Absent())
	for r := 0; r < enriched.NumRows(); r++ {
		code := enriched.Cell(r, canonical.ColArticulProduct)
		if code.IsAbsent() {
			continue
		}
		if name, ok := names[code.Render()]; ok {
			enriched.SetCell(r, canonical.ColNameProduct, name)
		}
	}

	missing := enriched.FilterRows(func(r int) bool {
		return enriched.Cell(r, canonical.ColNameProduct).IsAbsent() &&
			!enriched.Cell(r, canonical.ColArticulProduct).IsAbsent()
	})
	unmatched = dedupeRows(missing.Select(
		canonical.ColArticulProduct,
		canonical.ColArticulStore,
		canonical.ColPlayground,
		canonical.ColReportWeek,
	))
	return enriched, unmatched
}

// dedupeRows drops repeated rows, keeping the first occurrence. Absent
// cells compare equal to each other.
func dedupeRows(tbl *table.Table) *table.Table {
	seen := make(map[string]bool, tbl.NumRows())
	return tbl.FilterRows(func(r int) bool {
		parts := make([]string, tbl.NumCols())
		for i, cell := range tbl.Row(r) {
			if cell.IsAbsent() {
				parts[i] = "\x00"
				continue
			}
			parts[i] = cell.Render()
		}
		key := strings.Join(parts, "\x1f")
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}
