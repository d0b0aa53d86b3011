// Package ingest reads weekly marketplace exports into tables.
//
// Source files arrive as spreadsheet workbooks or delimited text with
// unpredictable encodings, so the package probes a fixed set of
// encoding and delimiter combinations for text files and reads the
// first worksheet for workbooks. Headers are taken from the first row;
// duplicate or blank header labels are disambiguated so every column
// has a unique name before canonicalization.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mosaic-etl/salesledger/pkg/table"
)

// ReadTable loads a single source file, dispatching on its extension.
// Delimited text is probed for encoding and delimiter; anything else is
// read as a workbook.
func ReadTable(path string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(path)
	}
	return ReadWorkbook(path, "")
}

// uniqueHeaders assigns every column a distinct label. Blank labels
// become "Unnamed: N" by position, repeats get a ".1", ".2" suffix.
func uniqueHeaders(raw []string) []string {
	out := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	for i, h := range raw {
		name := h
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for n := 1; taken[candidate]; n++ {
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}

// rowCells converts one record of rendered values into cells, mapping
// empty fields to absent.
func rowCells(record []string, width int) []table.Cell {
	cells := make([]table.Cell, width)
	for i := range cells {
		if i >= len(record) || record[i] == "" {
			cells[i] = table.Absent()
			continue
		}
		cells[i] = table.String(record[i])
	}
	return cells
}
