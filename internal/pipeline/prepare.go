package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/mosaic-etl/salesledger/internal/registry"
	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/logging"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// invalidSampleLimit caps how many offending values an abort message
// carries.
const invalidSampleLimit = 5

// FileContext carries the run parameters stamped onto every prepared
// row of one source file.
type FileContext struct {
	StartDate  time.Time
	EndDate    time.Time
	ReportWeek string
	FilePath   string
	Platform   string

	// DropInvalid excludes rows with invalid business codes from the
	// prepared batch; they still appear in the quarantine table.
	DropInvalid bool
}

// PrepareResult is one source file after canonicalization: the batch
// ready for the ledger, the quarantine rows, and the columns that fell
// outside the canonical mapping.
type PrepareResult struct {
	Table           *table.Table
	InvalidArticuls *table.Table
	InvalidSamples  []string
	OtherColumns    []registry.Column
}

// Prepare canonicalizes one source table: headers are renamed through
// the alias table, quantity and amount columns are coerced, business
// codes are normalized with rejects quarantined, and the run context
// is stamped onto every row. The caller decides whether rejects abort
// the run.
func Prepare(src *table.Table, aliases *canonical.AliasTable, ctx FileContext) *PrepareResult {
	logging.Info().
		Str("platform", ctx.Platform).
		Str("file", ctx.FilePath).
		Msg("Preparing source table")

	canonicalMap, otherMap := canonical.MapColumns(src.Columns(), aliases)

	rename := make(map[string]string, len(canonicalMap)+len(otherMap))
	for raw, name := range canonicalMap {
		rename[raw] = name
	}
	for raw, name := range otherMap {
		rename[raw] = name
	}

	prepared := src.Clone()
	prepared.Rename(rename)
	prepared.EnsureColumns(canonical.Columns()...)

	for r := 0; r < prepared.NumRows(); r++ {
		prepared.SetCell(r, canonical.ColOrdered, canonical.CoerceInt(prepared.Cell(r, canonical.ColOrdered)))
		prepared.SetCell(r, canonical.ColOrderedForTheAmount, canonical.CoerceFloat(prepared.Cell(r, canonical.ColOrderedForTheAmount)))
		prepared.SetCell(r, canonical.ColArticulStore, canonical.CleanStoreKey(prepared.Cell(r, canonical.ColArticulStore)))
	}

	// Normalize business codes, remembering which rows failed so the
	// quarantine keeps the file's original shape.
	invalidMask := make([]bool, prepared.NumRows())
	normalized := make([]table.Cell, prepared.NumRows())
	var samples []string
	for r := 0; r < prepared.NumRows(); r++ {
		raw := prepared.Cell(r, canonical.ColArticulProduct)
		norm, invalid := canonical.CheckArticul(raw)
		normalized[r] = norm
		invalidMask[r] = invalid
		if invalid && len(samples) < invalidSampleLimit {
			samples = append(samples, strings.TrimSpace(raw.Render()))
		}
		prepared.SetCell(r, canonical.ColArticulProduct, norm)
	}

	quarantine := src.Clone()
	quarantine.AddColumn("articul_product_normalized", table.Absent())
	for r := 0; r < quarantine.NumRows(); r++ {
		quarantine.SetCell(r, "articul_product_normalized", normalized[r])
	}
	invalid := quarantine.FilterRows(func(r int) bool { return invalidMask[r] })

	if ctx.DropInvalid {
		prepared = prepared.FilterRows(func(r int) bool { return !invalidMask[r] })
	}

	prepared.SetColumn(canonical.ColPlayground, table.String(ctx.Platform))
	prepared.SetColumn(canonical.ColReportPeriodStart, table.String(ctx.StartDate.Format("2006-01-02")))
	prepared.SetColumn(canonical.ColReportPeriodEnd, table.String(ctx.EndDate.Format("2006-01-02")))
	prepared.SetColumn(canonical.ColReportWeek, table.String(ctx.ReportWeek))
	prepared.SetColumn(canonical.ColFileSource, table.String(ctx.FilePath))

	var otherNames []string
	for _, name := range otherMap {
		otherNames = append(otherNames, name)
	}
	sort.Strings(otherNames)
	prepared.Reorder(append(canonical.Columns(), otherNames...)...)

	var otherColumns []registry.Column
	for _, raw := range src.Columns() {
		if name, ok := otherMap[raw]; ok {
			otherColumns = append(otherColumns, registry.Column{Mapped: name, Original: raw})
		}
	}

	return &PrepareResult{
		Table:           prepared,
		InvalidArticuls: invalid,
		InvalidSamples:  samples,
		OtherColumns:    otherColumns,
	}
}
