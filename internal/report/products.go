package report

import (
	"os"

	"github.com/mosaic-etl/salesledger/internal/ingest"
	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/logging"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// LoadProductMaster reads the product lookup table and reduces it to
// one row per business code. A missing file yields an empty lookup so
// enrichment degrades to marking everything unmatched. A lookup
// without the business-code column is a hard error; a missing name
// column only warns and produces absent names.
func LoadProductMaster(path string) (*table.Table, error) {
	if _, err := os.Stat(path); err != nil {
		logging.Warn().Str("path", path).Msg("Product lookup file not found")
		return table.New(canonical.ColArticulProduct, canonical.ColNameProduct), nil
	}

	tbl, err := ingest.ReadTable(path)
	if err != nil {
		return nil, err
	}
	if !tbl.HasColumn(canonical.ColArticulProduct) {
		return nil, errors.NewValidationError(canonical.ColArticulProduct, path, "product lookup must contain the business code column")
	}
	if !tbl.HasColumn(canonical.ColNameProduct) {
		logging.Warn().Str("path", path).Msg("Product lookup missing name column, a placeholder will be used")
		tbl.AddColumn(canonical.ColNameProduct, table.Absent())
	}

	master := tbl.Select(canonical.ColArticulProduct, canonical.ColNameProduct)

	// Codes are compared by their rendered text, so numeric cells are
	// made textual and repeated codes keep their first row.
	out := table.New(canonical.ColArticulProduct, canonical.ColNameProduct)
	seen := make(map[string]bool, master.NumRows())
	for r := 0; r < master.NumRows(); r++ {
		code := master.Cell(r, canonical.ColArticulProduct)
		key := code.Render()
		if seen[key] {
			continue
		}
		seen[key] = true
		codeCell := code
		if !code.IsAbsent() {
			codeCell = table.String(key)
		}
		out.AppendRow(codeCell, master.Cell(r, canonical.ColNameProduct))
	}
	return out, nil
}
