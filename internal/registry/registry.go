// Package registry tracks every unmapped source column ever seen.
//
// The registry is an append-only workbook with one sheet per platform.
// Each row records a column that arrived outside the canonical mapping:
// its assigned name, the raw header it came from, and when and in which
// file it first appeared. Analysts review it to decide which spellings
// deserve an alias entry.
package registry

import (
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mosaic-etl/salesledger/internal/history"
	"github.com/mosaic-etl/salesledger/internal/ingest"
	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/logging"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// Sheet column names, in write order.
const (
	ColMappedName    = "mapped_name"
	ColOriginalName  = "original_name"
	ColFirstSeenDate = "first_seen_date"
	ColFirstSeenFile = "first_seen_file"
)

// Column is one unmapped source column to record.
type Column struct {
	Mapped   string
	Original string
}

// Registry accumulates per-platform column sightings between Open and
// Flush.
type Registry struct {
	path   string
	order  []string
	sheets map[string]*table.Table
}

// Open loads the registry workbook at path. A missing file yields an
// empty registry; an unreadable one is logged and treated as empty so
// a damaged registry never blocks a run.
func Open(path string) *Registry {
	r := &Registry{path: path, sheets: make(map[string]*table.Table)}

	if _, err := os.Stat(path); err != nil {
		return r
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Failed to read existing columns registry")
		return r
	}
	defer func() { _ = f.Close() }()

	for _, name := range f.GetSheetList() {
		tbl, err := ingest.SheetTable(f, name)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Str("sheet", name).Msg("Failed to read existing columns registry")
			r.order = nil
			r.sheets = make(map[string]*table.Table)
			return r
		}
		r.order = append(r.order, name)
		r.sheets[name] = tbl
	}
	return r
}

// Register records the columns not yet known for the platform and
// returns how many were new. Columns are matched by their raw header,
// so a renamed assignment for a header seen before is not re-recorded.
func (r *Registry) Register(platform string, columns []Column, sourceFile string) int {
	if len(columns) == 0 {
		return 0
	}

	sheet, ok := r.sheets[platform]
	if !ok {
		sheet = table.New(ColMappedName, ColOriginalName, ColFirstSeenDate, ColFirstSeenFile)
	}

	recorded := make(map[string]bool, sheet.NumRows())
	for row := 0; row < sheet.NumRows(); row++ {
		recorded[sheet.Cell(row, ColOriginalName).Render()] = true
	}

	today := time.Now().Format("2006-01-02")
	added := 0
	for _, col := range columns {
		if recorded[col.Original] {
			continue
		}
		sheet.AppendRow(
			table.String(col.Mapped),
			table.String(col.Original),
			table.String(today),
			table.String(sourceFile),
		)
		recorded[col.Original] = true
		added++
	}

	if added > 0 {
		if !ok {
			r.order = append(r.order, platform)
		}
		r.sheets[platform] = sheet
		logging.Info().Int("count", added).Str("platform", platform).Msg("Registered new columns")
	}
	return added
}

// Flush writes the registry workbook back to disk. Nothing is written
// when no sheet was ever loaded or recorded.
func (r *Registry) Flush() error {
	if len(r.order) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return errors.WrapIO("create directory", filepath.Dir(r.path), err)
	}
	return history.WriteWorkbook(r.path, r.order, r.sheets)
}
