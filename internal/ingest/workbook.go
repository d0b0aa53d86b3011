package ingest

import (
	"github.com/xuri/excelize/v2"

	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// ReadWorkbook reads one worksheet of an xlsx workbook into a table.
// An empty sheet name selects the first worksheet. Raw stored values
// are used so that numeric cells keep their full precision instead of
// their display formatting.
func ReadWorkbook(path, sheet string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	name := sheet
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewNotFoundError("worksheet", path)
		}
		name = sheets[0]
	}
	return SheetTable(f, name)
}

// SheetTable reads one worksheet of an already open workbook.
func SheetTable(f *excelize.File, sheet string) (*table.Table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapParse("xlsx", sheet, err)
	}
	if len(rows) == 0 {
		return table.New(), nil
	}

	// Trailing empty cells are trimmed per row, so the sheet width is
	// the widest row, not the header row.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, rows[0])

	tbl := table.New(uniqueHeaders(header)...)
	for _, row := range rows[1:] {
		tbl.AppendRow(rowCells(row, width)...)
	}
	return tbl, nil
}
