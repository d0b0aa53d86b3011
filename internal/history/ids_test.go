package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-etl/salesledger/internal/history"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

func TestAssignIncrementalIDs(t *testing.T) {
	t.Run("numbers whole batch from existing maximum", func(t *testing.T) {
		existing := table.New("id_key", "articul_product")
		existing.AppendRow(table.Int(4), table.String("1234-567-89"))
		existing.AppendRow(table.Int(7), table.String("1234-567-90"))

		batch := table.New("articul_product")
		batch.AppendRow(table.String("1234-567-91"))
		batch.AppendRow(table.String("1234-567-92"))

		history.AssignIncrementalIDs(batch, existing, "id_key")

		require.True(t, batch.HasColumn("id_key"))
		assert.Equal(t, table.Int(8), batch.Cell(0, "id_key"))
		assert.Equal(t, table.Int(9), batch.Cell(1, "id_key"))
	})

	t.Run("starts at one without history", func(t *testing.T) {
		batch := table.New("articul_product")
		batch.AppendRow(table.String("1234-567-89"))

		history.AssignIncrementalIDs(batch, table.New(), "id_key")

		assert.Equal(t, table.Int(1), batch.Cell(0, "id_key"))
	})

	t.Run("fills only absent and zero ids", func(t *testing.T) {
		existing := table.New("id_key")
		existing.AppendRow(table.Int(10))

		batch := table.New("id_key", "articul_product")
		batch.AppendRow(table.Int(3), table.String("a"))
		batch.AppendRow(table.Absent(), table.String("b"))
		batch.AppendRow(table.Int(0), table.String("c"))
		batch.AppendRow(table.String("5"), table.String("d"))

		history.AssignIncrementalIDs(batch, existing, "id_key")

		assert.Equal(t, table.Int(3), batch.Cell(0, "id_key"))
		assert.Equal(t, table.Int(11), batch.Cell(1, "id_key"))
		assert.Equal(t, table.Int(12), batch.Cell(2, "id_key"))
		assert.Equal(t, table.Int(5), batch.Cell(3, "id_key"))
	})

	t.Run("string ids in history extend the sequence", func(t *testing.T) {
		existing := table.New("id_key")
		existing.AppendRow(table.String("41"))

		batch := table.New("articul_product")
		batch.AppendRow(table.String("x"))

		history.AssignIncrementalIDs(batch, existing, "id_key")

		assert.Equal(t, table.Int(42), batch.Cell(0, "id_key"))
	})

	t.Run("empty batch untouched", func(t *testing.T) {
		batch := table.New("articul_product")
		history.AssignIncrementalIDs(batch, table.New(), "id_key")

		assert.False(t, batch.HasColumn("id_key"))
	})
}

func TestNextID(t *testing.T) {
	t.Run("no history", func(t *testing.T) {
		assert.Equal(t, int64(1), history.NextID(table.New(), "id_key"))
		assert.Equal(t, int64(1), history.NextID(nil, "id_key"))
	})

	t.Run("missing column", func(t *testing.T) {
		existing := table.New("articul_product")
		existing.AppendRow(table.String("1234-567-89"))

		assert.Equal(t, int64(1), history.NextID(existing, "id_key"))
	})
}
