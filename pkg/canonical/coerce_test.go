package canonical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name string
		in   table.Cell
		want int64
	}{
		{"absent", table.Absent(), 0},
		{"blank", table.String(""), 0},
		{"dash", table.String("-"), 0},
		{"plain digits", table.String("10"), 10},
		{"spaced thousands", table.String("1 234"), 1234},
		{"decimal text truncates", table.String("12.7"), 12},
		{"int passes", table.Int(42), 42},
		{"float truncates", table.Float(12.7), 12},
		{"negative float truncates toward zero", table.Float(-12.7), -12},
		{"bool true", table.Bool(true), 1},
		{"garbage", table.String("n/a"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canonical.CoerceInt(tt.in)
			assert.Equal(t, table.KindInt, got.Kind())
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name string
		in   table.Cell
		want float64
	}{
		{"absent", table.Absent(), 0},
		{"blank", table.String(""), 0},
		{"dash", table.String("-"), 0},
		{"decimal comma", table.String("1234,56"), 1234.56},
		{"spaced thousands with comma", table.String("1 234,56"), 1234.56},
		{"nbsp thousands", table.String("1 234,56"), 1234.56},
		{"decimal point", table.String("99.90"), 99.9},
		{"int widens", table.Int(42), 42},
		{"float passes", table.Float(12.5), 12.5},
		{"garbage", table.String("много"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canonical.CoerceFloat(tt.in)
			assert.Equal(t, table.KindFloat, got.Kind())
			assert.InDelta(t, tt.want, got.Float64(), 0.0001)
		})
	}
}

func TestCleanStoreKey(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		got := canonical.CleanStoreKey(table.String(" store-01 "))
		assert.Equal(t, table.String("store-01"), got)
	})

	t.Run("blank becomes absent", func(t *testing.T) {
		assert.True(t, canonical.CleanStoreKey(table.String("   ")).IsAbsent())
		assert.True(t, canonical.CleanStoreKey(table.Absent()).IsAbsent())
	})

	t.Run("numeric keys render as text", func(t *testing.T) {
		assert.Equal(t, table.String("101"), canonical.CleanStoreKey(table.Int(101)))
	})
}
