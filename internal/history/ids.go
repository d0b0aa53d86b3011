package history

import (
	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// AssignIncrementalIDs fills the surrogate id column of a prepared
// batch, continuing the sequence found in the existing sheet. When the
// batch already carries some ids, only absent and zero cells are
// filled; otherwise the whole column is numbered. Every id cell ends
// up integer typed.
func AssignIncrementalIDs(tbl, existing *table.Table, idColumn string) {
	if tbl.IsEmpty() {
		return
	}
	next := NextID(existing, idColumn)

	tbl.AddColumn(idColumn, table.Absent())

	hasAny := false
	for r := 0; r < tbl.NumRows(); r++ {
		if !tbl.Cell(r, idColumn).IsAbsent() {
			hasAny = true
			break
		}
	}

	for r := 0; r < tbl.NumRows(); r++ {
		cell := tbl.Cell(r, idColumn)
		id := canonical.CoerceInt(cell)
		if !hasAny || cell.IsAbsent() || id.Int64() == 0 {
			tbl.SetCell(r, idColumn, table.Int(next))
			next++
			continue
		}
		tbl.SetCell(r, idColumn, id)
	}
}

// NextID returns one greater than the largest id recorded in the
// existing sheet, or 1 when the sheet is empty or has no id column.
func NextID(existing *table.Table, idColumn string) int64 {
	var max int64
	if existing != nil && !existing.IsEmpty() && existing.HasColumn(idColumn) {
		for r := 0; r < existing.NumRows(); r++ {
			cell := existing.Cell(r, idColumn)
			if cell.IsAbsent() {
				continue
			}
			if v := canonical.CoerceInt(cell).Int64(); v > max {
				max = v
			}
		}
	}
	return max + 1
}
