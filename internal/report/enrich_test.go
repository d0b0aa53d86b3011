package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-etl/salesledger/internal/report"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

func reportTable(articuls ...string) *table.Table {
	tbl := table.New("articul_product", "articul_store", "playground", "report_week")
	for _, articul := range articuls {
		var code table.Cell
		if articul == "" {
			code = table.Absent()
		} else {
			code = table.String(articul)
		}
		tbl.AppendRow(code, table.String("store"), table.String("OZ"), table.String("202536"))
	}
	return tbl
}

func masterTable(pairs ...[2]string) *table.Table {
	tbl := table.New("articul_product", "name_product")
	for _, p := range pairs {
		tbl.AppendRow(table.String(p[0]), table.String(p[1]))
	}
	return tbl
}

func TestEnrich(t *testing.T) {
	t.Run("attaches names and collects unmatched", func(t *testing.T) {
		rpt := reportTable("1234-567-89", "1234-567-90")
		master := masterTable([2]string{"1234-567-89", "Товар"})

		enriched, unmatched := report.Enrich(rpt, master)

		require.True(t, enriched.HasColumn("name_product"))
		assert.Equal(t, "Товар", enriched.Cell(0, "name_product").Str())
		assert.True(t, enriched.Cell(1, "name_product").IsAbsent())

		require.Equal(t, 1, unmatched.NumRows())
		assert.Equal(t, "1234-567-90", unmatched.Cell(0, "articul_product").Str())
		assert.Equal(t, []string{"articul_product", "articul_store", "playground", "report_week"}, unmatched.Columns())
	})

	t.Run("absent codes are not unmatched", func(t *testing.T) {
		rpt := reportTable("", "1234-567-90")

		_, unmatched := report.Enrich(rpt, masterTable())

		require.Equal(t, 1, unmatched.NumRows())
		assert.Equal(t, "1234-567-90", unmatched.Cell(0, "articul_product").Str())
	})

	t.Run("unmatched rows deduplicated", func(t *testing.T) {
		rpt := reportTable("1234-567-90", "1234-567-90", "1234-567-91")

		_, unmatched := report.Enrich(rpt, masterTable())

		assert.Equal(t, 2, unmatched.NumRows())
	})

	t.Run("empty report", func(t *testing.T) {
		rpt := reportTable()

		enriched, unmatched := report.Enrich(rpt, masterTable())

		assert.True(t, enriched.IsEmpty())
		assert.True(t, unmatched.IsEmpty())
	})

	t.Run("master name placeholder still unmatched", func(t *testing.T) {
		rpt := reportTable("1234-567-89")
		master := table.New("articul_product", "name_product")
		master.AppendRow(table.String("1234-567-89"), table.Absent())

		enriched, unmatched := report.Enrich(rpt, master)

		assert.True(t, enriched.Cell(0, "name_product").IsAbsent())
		assert.Equal(t, 1, unmatched.NumRows())
	})
}
