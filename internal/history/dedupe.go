package history

import (
	"strings"

	"github.com/mosaic-etl/salesledger/pkg/table"
)

// Dedupe removes repeated rows from a freshly prepared batch. Within
// the batch the last occurrence of each key wins; rows whose key is
// already present in the existing sheet are split off as duplicates.
// Rows with an absent key field never match the existing sheet, but
// two such rows do collapse within the batch.
func Dedupe(fresh, existing *table.Table, keys []string) (kept, duplicates *table.Table) {
	if fresh.IsEmpty() {
		return fresh, table.New(fresh.Columns()...)
	}

	last := make(map[string]int, fresh.NumRows())
	for r := 0; r < fresh.NumRows(); r++ {
		k, _ := rowKey(fresh, r, keys)
		last[k] = r
	}
	unique := fresh.FilterRows(func(r int) bool {
		k, _ := rowKey(fresh, r, keys)
		return last[k] == r
	})

	if existing == nil || existing.IsEmpty() {
		return unique, table.New(fresh.Columns()...)
	}

	existingKeys := make(map[string]bool, existing.NumRows())
	for r := 0; r < existing.NumRows(); r++ {
		if k, complete := rowKey(existing, r, keys); complete {
			existingKeys[k] = true
		}
	}

	isDuplicate := func(r int) bool {
		k, complete := rowKey(unique, r, keys)
		return complete && existingKeys[k]
	}
	kept = unique.FilterRows(func(r int) bool { return !isDuplicate(r) })
	duplicates = unique.FilterRows(isDuplicate)
	return kept, duplicates
}

// rowKey renders the composite dedup key for one row. Absent cells get
// a marker so they compare equal to each other; complete is false when
// any key field is absent.
func rowKey(tbl *table.Table, r int, keys []string) (key string, complete bool) {
	parts := make([]string, len(keys))
	complete = true
	for i, col := range keys {
		cell := tbl.Cell(r, col)
		if cell.IsAbsent() {
			parts[i] = "\x00"
			complete = false
			continue
		}
		parts[i] = cell.Render()
	}
	return strings.Join(parts, "\x1f"), complete
}
