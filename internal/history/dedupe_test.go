package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-etl/salesledger/internal/history"
	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

func batchRow(articul, store, start, playground string) []table.Cell {
	return []table.Cell{
		table.String(articul),
		table.String(store),
		table.String(start),
		table.String(playground),
	}
}

func newBatch(rows ...[]table.Cell) *table.Table {
	tbl := table.New("articul_product", "articul_store", "report_period_start", "playground")
	for _, row := range rows {
		tbl.AppendRow(row...)
	}
	return tbl
}

func TestDedupe(t *testing.T) {
	keys := canonical.KeyColumns()

	t.Run("splits history duplicates from new rows", func(t *testing.T) {
		existing := newBatch(batchRow("1234-567-89", "store", "2025-09-08", "OZ"))
		fresh := newBatch(
			batchRow("1234-567-89", "store", "2025-09-08", "OZ"),
			batchRow("1234-567-90", "store", "2025-09-08", "OZ"),
		)

		kept, duplicates := history.Dedupe(fresh, existing, keys)

		require.Equal(t, 1, kept.NumRows())
		assert.Equal(t, "1234-567-90", kept.Cell(0, "articul_product").Str())
		require.Equal(t, 1, duplicates.NumRows())
		assert.Equal(t, "1234-567-89", duplicates.Cell(0, "articul_product").Str())
	})

	t.Run("last occurrence wins within batch", func(t *testing.T) {
		fresh := newBatch(
			batchRow("1234-567-89", "store", "2025-09-08", "OZ"),
			batchRow("1234-567-90", "store", "2025-09-08", "OZ"),
			batchRow("1234-567-89", "store", "2025-09-08", "OZ"),
		)
		fresh.AddColumn("ordered", table.Absent())
		fresh.SetCell(0, "ordered", table.Int(1))
		fresh.SetCell(2, "ordered", table.Int(7))

		kept, duplicates := history.Dedupe(fresh, table.New(), keys)

		require.Equal(t, 2, kept.NumRows())
		assert.Equal(t, "1234-567-90", kept.Cell(0, "articul_product").Str())
		assert.Equal(t, "1234-567-89", kept.Cell(1, "articul_product").Str())
		assert.Equal(t, int64(7), kept.Cell(1, "ordered").Int64())
		assert.True(t, duplicates.IsEmpty())
	})

	t.Run("kept and duplicates partition the batch", func(t *testing.T) {
		existing := newBatch(
			batchRow("1234-567-89", "store", "2025-09-08", "OZ"),
			batchRow("1234-567-91", "store", "2025-09-08", "OZ"),
		)
		fresh := newBatch(
			batchRow("1234-567-89", "store", "2025-09-08", "OZ"),
			batchRow("1234-567-90", "store", "2025-09-08", "OZ"),
			batchRow("1234-567-91", "store", "2025-09-08", "OZ"),
			batchRow("1234-567-90", "store", "2025-09-08", "OZ"),
		)

		kept, duplicates := history.Dedupe(fresh, existing, keys)

		assert.Equal(t, 3, kept.NumRows()+duplicates.NumRows())
		assert.Equal(t, 1, kept.NumRows())
		assert.Equal(t, "1234-567-90", kept.Cell(0, "articul_product").Str())
		assert.Equal(t, 2, duplicates.NumRows())
	})

	t.Run("absent key never matches history", func(t *testing.T) {
		existing := newBatch([]table.Cell{
			table.Absent(),
			table.String("store"),
			table.String("2025-09-08"),
			table.String("OZ"),
		})
		fresh := newBatch([]table.Cell{
			table.Absent(),
			table.String("store"),
			table.String("2025-09-08"),
			table.String("OZ"),
		})

		kept, duplicates := history.Dedupe(fresh, existing, keys)

		assert.Equal(t, 1, kept.NumRows())
		assert.True(t, duplicates.IsEmpty())
	})

	t.Run("absent keys collapse within batch", func(t *testing.T) {
		fresh := newBatch(
			[]table.Cell{table.Absent(), table.String("store"), table.String("2025-09-08"), table.String("OZ")},
			[]table.Cell{table.Absent(), table.String("store"), table.String("2025-09-08"), table.String("OZ")},
		)

		kept, duplicates := history.Dedupe(fresh, table.New(), keys)

		assert.Equal(t, 1, kept.NumRows())
		assert.True(t, duplicates.IsEmpty())
	})

	t.Run("empty batch", func(t *testing.T) {
		fresh := newBatch()
		kept, duplicates := history.Dedupe(fresh, newBatch(), canonical.KeyColumns())

		assert.True(t, kept.IsEmpty())
		assert.True(t, duplicates.IsEmpty())
	})
}
