package canonical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

func TestNormalizeArticul(t *testing.T) {
	tests := []struct {
		name string
		in   table.Cell
		want table.Cell
	}{
		{"bare digits", table.String("123456789"), table.String("1234-567-89")},
		{"space separated", table.String("1234 567 89"), table.String("1234-567-89")},
		{"already canonical", table.String("1234-567-89"), table.String("1234-567-89")},
		{"surrounded by text", table.String("арт. 1234/567/89 (осн.)"), table.String("1234-567-89")},
		{"longer digit run truncates", table.String("12345678901"), table.String("1234-567-89")},
		{"numeric cell", table.Int(123456789), table.String("1234-567-89")},
		{"float cell keeps plain digits", table.Float(123456789), table.String("1234-567-89")},
		{"too few digits", table.String("12345678"), table.Absent()},
		{"letters only", table.String("abc"), table.Absent()},
		{"blank", table.String("   "), table.Absent()},
		{"absent", table.Absent(), table.Absent()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canonical.NormalizeArticul(tt.in)
			assert.True(t, tt.want.Equal(got), "got %q", got.Render())
		})
	}
}

func TestNormalizeArticulIdempotent(t *testing.T) {
	once := canonical.NormalizeArticul(table.String("1234 567 89"))
	twice := canonical.NormalizeArticul(once)
	assert.Equal(t, once, twice)
}

func TestCheckArticul(t *testing.T) {
	t.Run("valid code is not invalid", func(t *testing.T) {
		normalized, invalid := canonical.CheckArticul(table.String("123456789"))
		assert.Equal(t, "1234-567-89", normalized.Render())
		assert.False(t, invalid)
	})

	t.Run("absent is missing not invalid", func(t *testing.T) {
		normalized, invalid := canonical.CheckArticul(table.Absent())
		assert.True(t, normalized.IsAbsent())
		assert.False(t, invalid)
	})

	t.Run("blank text is missing not invalid", func(t *testing.T) {
		_, invalid := canonical.CheckArticul(table.String("  "))
		assert.False(t, invalid)
	})

	t.Run("non-numeric text is invalid", func(t *testing.T) {
		normalized, invalid := canonical.CheckArticul(table.String("abc"))
		assert.True(t, normalized.IsAbsent())
		assert.True(t, invalid)
	})

	t.Run("short digit run is invalid", func(t *testing.T) {
		_, invalid := canonical.CheckArticul(table.String("12"))
		assert.True(t, invalid)
	})

	t.Run("short numeric cell is invalid", func(t *testing.T) {
		_, invalid := canonical.CheckArticul(table.Int(12345))
		assert.True(t, invalid)
	})
}
