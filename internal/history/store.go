// Package history manages the accumulated sales ledger workbook.
//
// The ledger is a multi-sheet workbook with one sheet per platform plus
// a consolidated REPORT sheet. Each run reads it, appends the week's
// deduplicated rows, assigns surrogate ids that continue the existing
// sequence, and rewrites the whole workbook. Sheets that the run does
// not touch are carried over unchanged.
package history

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/mosaic-etl/salesledger/internal/ingest"
	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/logging"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// Store holds the sheets of the ledger workbook in a stable order:
// required sheets first, then any other sheets found in the file.
type Store struct {
	order  []string
	sheets map[string]*table.Table
}

// Open loads the ledger workbook. Required sheets that are missing are
// created empty; a missing workbook yields a store of empty required
// sheets and the file is created on the next write.
func Open(path string, required []string) (*Store, error) {
	s := &Store{sheets: make(map[string]*table.Table)}

	if _, err := os.Stat(path); err != nil {
		logging.Warn().Str("path", path).Msg("Base workbook not found, a new file will be created")
		for _, name := range required {
			s.SetSheet(name, table.New())
		}
		return s, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	for _, name := range required {
		if !present[name] {
			s.SetSheet(name, table.New())
			continue
		}
		tbl, err := ingest.SheetTable(f, name)
		if err != nil {
			return nil, errors.WrapParse("xlsx", path, err)
		}
		s.SetSheet(name, tbl)
	}
	for _, name := range f.GetSheetList() {
		if s.Has(name) {
			continue
		}
		tbl, err := ingest.SheetTable(f, name)
		if err != nil {
			return nil, errors.WrapParse("xlsx", path, err)
		}
		s.SetSheet(name, tbl)
	}
	return s, nil
}

// Names returns the sheet names in store order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether the store holds a sheet with the given name.
func (s *Store) Has(name string) bool {
	_, ok := s.sheets[name]
	return ok
}

// Sheet returns the named sheet, or an empty table when absent.
func (s *Store) Sheet(name string) *table.Table {
	if tbl, ok := s.sheets[name]; ok {
		return tbl
	}
	return table.New()
}

// SetSheet stores a sheet, appending it to the order when new.
func (s *Store) SetSheet(name string, tbl *table.Table) {
	if _, ok := s.sheets[name]; !ok {
		s.order = append(s.order, name)
	}
	s.sheets[name] = tbl
}

// WriteTo rewrites the ledger workbook at path with every sheet in
// store order, creating parent directories as needed.
func (s *Store) WriteTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create directory", filepath.Dir(path), err)
	}
	return WriteWorkbook(path, s.order, s.sheets)
}

// WriteWorkbook writes the given sheets to an xlsx workbook in the
// given order. Cell values keep their types so numeric columns stay
// numeric in the saved file.
func WriteWorkbook(path string, order []string, sheets map[string]*table.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return errors.WrapResource("create", "sheet", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return errors.WrapResource("create", "sheet", name, err)
			}
		}
		if err := writeSheet(f, name, sheets[name]); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, tbl *table.Table) error {
	if tbl == nil || tbl.NumCols() == 0 {
		return nil
	}

	header := make([]interface{}, tbl.NumCols())
	for i, col := range tbl.Columns() {
		header[i] = col
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}

	for r := 0; r < tbl.NumRows(); r++ {
		values := make([]interface{}, tbl.NumCols())
		for i, cell := range tbl.Row(r) {
			values[i] = cellValue(cell)
		}
		if err := setRow(f, name, r+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.WrapResource("write", "sheet", sheet, err)
	}
	if err := f.SetSheetRow(sheet, ref, &values); err != nil {
		return errors.WrapResource("write", "sheet", sheet, err)
	}
	return nil
}

func cellValue(c table.Cell) interface{} {
	switch c.Kind() {
	case table.KindInt:
		return c.Int64()
	case table.KindFloat:
		return c.Float64()
	case table.KindString:
		return c.Str()
	case table.KindBool:
		return c.Boolean()
	default:
		return nil
	}
}
