// Package parquet exports the enriched report for analytical tooling.
//
// The report's column set varies run to run, so the file schema is
// derived from the table: integer-only columns become int64, numeric
// columns with fractions become double, boolean columns stay boolean,
// and everything else is written as text. All fields are optional;
// absent cells become nulls.
package parquet

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// Export writes the table to a parquet file at path, creating parent
// directories as needed.
func Export(path string, tbl *table.Table) error {
	if tbl.NumCols() == 0 {
		return errors.ErrEmptyTable
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create directory", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = f.Close() }()

	kinds := columnKinds(tbl)
	group := parquet.Group{}
	for _, col := range tbl.Columns() {
		group[col] = parquet.Optional(kinds[col].node())
	}
	schema := parquet.NewSchema("report", group)

	rows := make([]map[string]any, tbl.NumRows())
	for r := range rows {
		row := make(map[string]any, tbl.NumCols())
		for _, col := range tbl.Columns() {
			if value, ok := kinds[col].value(tbl.Cell(r, col)); ok {
				row[col] = value
			}
		}
		rows[r] = row
	}

	w := parquet.NewGenericWriter[map[string]any](f, schema)
	if _, err := w.Write(rows); err != nil {
		_ = w.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := w.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}

type columnKind int

const (
	kindText columnKind = iota
	kindInteger
	kindDouble
	kindBoolean
)

func (k columnKind) node() parquet.Node {
	switch k {
	case kindInteger:
		return parquet.Int(64)
	case kindDouble:
		return parquet.Leaf(parquet.DoubleType)
	case kindBoolean:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

// value converts a cell to the Go value for its column kind; ok is
// false for absent cells, which become nulls.
func (k columnKind) value(c table.Cell) (any, bool) {
	if c.IsAbsent() {
		return nil, false
	}
	switch k {
	case kindInteger:
		return c.Int64(), true
	case kindDouble:
		if c.Kind() == table.KindInt {
			return float64(c.Int64()), true
		}
		return c.Float64(), true
	case kindBoolean:
		return c.Boolean(), true
	default:
		return c.Render(), true
	}
}

// columnKinds infers each column's parquet type from the cells it
// actually holds.
func columnKinds(tbl *table.Table) map[string]columnKind {
	kinds := make(map[string]columnKind, tbl.NumCols())
	for _, col := range tbl.Columns() {
		ints, floats, bools, texts := 0, 0, 0, 0
		for r := 0; r < tbl.NumRows(); r++ {
			switch tbl.Cell(r, col).Kind() {
			case table.KindInt:
				ints++
			case table.KindFloat:
				floats++
			case table.KindBool:
				bools++
			case table.KindString:
				texts++
			}
		}
		switch {
		case texts > 0 || (bools > 0 && ints+floats > 0):
			kinds[col] = kindText
		case floats > 0:
			kinds[col] = kindDouble
		case ints > 0:
			kinds[col] = kindInteger
		case bools > 0:
			kinds[col] = kindBoolean
		default:
			kinds[col] = kindText
		}
	}
	return kinds
}
