// Package extract materializes an Excel workbook as one SQLite database
// per sheet plus a JSON dictionary describing the workbook structure.
// It backs the extract-workbook command used for ad-hoc inspection of
// marketplace exports before they enter the weekly pipeline.
package extract

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xuri/excelize/v2"

	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/logging"
)

// DictionaryFilename is the JSON document written next to the databases.
const DictionaryFilename = "sheet_dictionary.json"

// tableName is the single table every sheet database carries.
const tableName = "sheet_data"

// SheetData is one sheet extracted from a workbook: its header in both
// raw and SQLite-safe form, the typed body rows, and the database the
// sheet was materialized into.
type SheetData struct {
	Name              string
	OriginalColumns   []string
	NormalizedColumns []string
	Rows              [][]any
	RowCount          int
	DatabasePath      string
}

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// normalizeColumns derives SQLite column names from a header row: blank
// cells become column_<n>, everything else goes to lower snake case,
// and duplicates get numeric suffixes to stay unique.
func normalizeColumns(header []string) []string {
	normalized := make([]string, 0, len(header))
	seen := make(map[string]bool, len(header))

	for i, value := range header {
		candidate := ""
		if strings.TrimSpace(value) != "" {
			candidate = strings.ToLower(strings.Trim(nonWordRe.ReplaceAllString(value, "_"), "_"))
		}
		if candidate == "" {
			candidate = fmt.Sprintf("column_%d", i+1)
		}

		unique := candidate
		for suffix := 2; seen[unique]; suffix++ {
			unique = fmt.Sprintf("%s_%d", candidate, suffix)
		}
		seen[unique] = true
		normalized = append(normalized, unique)
	}
	return normalized
}

// safeFileComponent reduces a sheet name to a filesystem-safe token.
func safeFileComponent(name string) string {
	simplified := strings.Trim(nonWordRe.ReplaceAllString(name, "_"), "_")
	if simplified == "" {
		return "sheet"
	}
	return simplified
}

// quoteIdentifier quotes a column name for use in SQLite DDL.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ReadWorkbook reads every sheet of the workbook at path, keeping cell
// types: numeric cells come back as int64 or float64, text cells as
// strings, boolean cells as bools, and empty cells as nil.
func ReadWorkbook(path string) ([]*SheetData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapResource("open", "workbook", path, err)
	}
	defer func() { _ = f.Close() }()

	var sheets []*SheetData
	for _, name := range f.GetSheetList() {
		sheet, err := readSheet(f, name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func readSheet(f *excelize.File, name string) (*SheetData, error) {
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapResource("read", "sheet", name, err)
	}
	if len(raw) == 0 {
		return &SheetData{
			Name:              name,
			OriginalColumns:   []string{},
			NormalizedColumns: []string{},
		}, nil
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}

	header := make([]string, width)
	copy(header, raw[0])

	sheet := &SheetData{
		Name:              name,
		OriginalColumns:   header,
		NormalizedColumns: normalizeColumns(header),
	}

	for r := 1; r < len(raw); r++ {
		row := make([]any, width)
		for c := 0; c < width; c++ {
			var value string
			if c < len(raw[r]) {
				value = raw[r][c]
			}
			cell, err := typedValue(f, name, c+1, r+1, value)
			if err != nil {
				return nil, err
			}
			row[c] = cell
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	sheet.RowCount = len(sheet.Rows)
	return sheet, nil
}

// typedValue recovers a typed cell from its raw string. The declared
// cell type keeps text that merely looks numeric from becoming a number.
func typedValue(f *excelize.File, sheet string, col, row int, raw string) (any, error) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, errors.WrapResource("address", "cell", fmt.Sprintf("%s!%d,%d", sheet, col, row), err)
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return nil, errors.WrapResource("inspect", "cell", fmt.Sprintf("%s!%s", sheet, axis), err)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return raw, nil
	case excelize.CellTypeBool:
		return raw == "1", nil
	default:
		if raw == "" {
			return nil, nil
		}
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v, nil
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v, nil
		}
		return raw, nil
	}
}

// WriteDatabases creates one SQLite database per sheet under outputDir
// and records each path back onto its sheet. Every database carries a
// single sheet_data table mirroring the sheet's columns.
func WriteDatabases(ctx context.Context, sheets []*SheetData, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.WrapIO("create directory", outputDir, err)
	}
	for i, sheet := range sheets {
		filename := fmt.Sprintf("%02d_%s.db", i+1, safeFileComponent(sheet.Name))
		path := filepath.Join(outputDir, filename)
		if err := writeDatabase(ctx, sheet, path); err != nil {
			return err
		}
		sheet.DatabasePath = path
	}
	return nil
}

func writeDatabase(ctx context.Context, sheet *SheetData, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.WrapResource("open", "database", path, err)
	}
	defer func() { _ = db.Close() }()

	if len(sheet.NormalizedColumns) == 0 {
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (placeholder INTEGER)", tableName)
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return errors.WrapResource("create", "table", path, err)
		}
		return nil
	}

	columns := make([]string, len(sheet.NormalizedColumns))
	marks := make([]string, len(sheet.NormalizedColumns))
	for i, column := range sheet.NormalizedColumns {
		columns[i] = quoteIdentifier(column) + " NUMERIC"
		marks[i] = "?"
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(columns, ", "))
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return errors.WrapResource("create", "table", path, err)
	}
	if len(sheet.Rows) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapResource("begin", "transaction", path, err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", tableName, strings.Join(marks, ", ")))
	if err != nil {
		_ = tx.Rollback()
		return errors.WrapResource("prepare", "insert", path, err)
	}
	for _, row := range sheet.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return errors.WrapResource("insert", "row", path, err)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return errors.WrapResource("close", "statement", path, err)
	}
	if err := tx.Commit(); err != nil {
		return errors.WrapResource("commit", "transaction", path, err)
	}
	return nil
}

type sheetEntry struct {
	RowCount          int      `json:"row_count"`
	OriginalColumns   []string `json:"original_columns"`
	NormalizedColumns []string `json:"normalized_columns"`
	Database          *string  `json:"database"`
}

type dictionary struct {
	Workbook   string                 `json:"workbook"`
	SheetCount int                    `json:"sheet_count"`
	Sheets     map[string]*sheetEntry `json:"sheets"`
}

// WriteDictionary writes the JSON document describing every sheet and
// returns its path. Databases must be written first for their paths to
// appear in the document.
func WriteDictionary(workbookPath string, sheets []*SheetData, outputDir string) (string, error) {
	doc := dictionary{
		Workbook:   workbookPath,
		SheetCount: len(sheets),
		Sheets:     make(map[string]*sheetEntry, len(sheets)),
	}
	for _, sheet := range sheets {
		entry := &sheetEntry{
			RowCount:          sheet.RowCount,
			OriginalColumns:   sheet.OriginalColumns,
			NormalizedColumns: sheet.NormalizedColumns,
		}
		if sheet.DatabasePath != "" {
			path := sheet.DatabasePath
			entry.Database = &path
		}
		doc.Sheets[sheet.Name] = entry
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.WrapIO("create directory", outputDir, err)
	}
	path := filepath.Join(outputDir, DictionaryFilename)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.WrapIO("create", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		_ = f.Close()
		return "", errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return "", errors.WrapIO("close", path, err)
	}
	return path, nil
}

// Process extracts the workbook into per-sheet databases plus the JSON
// dictionary and returns the dictionary path. An empty outputDir puts
// the results in an output directory next to the workbook.
func Process(ctx context.Context, workbookPath, outputDir string) (string, error) {
	abs, err := filepath.Abs(workbookPath)
	if err != nil {
		return "", errors.WrapIO("resolve", workbookPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFoundError("workbook", abs)
		}
		return "", errors.WrapIO("stat", abs, err)
	}
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(abs), "output")
	}

	sheets, err := ReadWorkbook(abs)
	if err != nil {
		return "", err
	}
	if err := WriteDatabases(ctx, sheets, filepath.Join(outputDir, "databases")); err != nil {
		return "", err
	}
	path, err := WriteDictionary(abs, sheets, outputDir)
	if err != nil {
		return "", err
	}

	logging.Info().
		Int("sheets", len(sheets)).
		Str("workbook", abs).
		Str("dictionary", path).
		Msg("Workbook extracted")
	return path, nil
}
