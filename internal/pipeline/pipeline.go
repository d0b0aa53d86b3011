// Package pipeline orchestrates the weekly marketplace load: it reads
// every platform's input files, canonicalizes and validates them,
// deduplicates against the accumulated ledger, assigns surrogate ids,
// and writes the report, ledger, and quarantine artifacts.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mosaic-etl/salesledger/internal/config"
	"github.com/mosaic-etl/salesledger/internal/history"
	"github.com/mosaic-etl/salesledger/internal/ingest"
	"github.com/mosaic-etl/salesledger/internal/parquet"
	"github.com/mosaic-etl/salesledger/internal/registry"
	"github.com/mosaic-etl/salesledger/internal/report"
	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/errors"
	"github.com/mosaic-etl/salesledger/pkg/logging"
	"github.com/mosaic-etl/salesledger/pkg/table"
)

// reportSheetName is the sheet carrying the cross-platform report in
// both the weekly report file and the ledger workbook.
const reportSheetName = "REPORT"

// quarantineSheetName is the single sheet of quarantine workbooks.
const quarantineSheetName = "Sheet1"

// Pipeline executes the weekly marketplace load end to end.
type Pipeline struct {
	config *config.Config
	out    io.Writer
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithOutput redirects user-facing console output, which goes to
// stdout by default.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

// New returns a Pipeline bound to the given configuration.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		config: cfg,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run loads one reporting week across the selected platforms and
// returns the collected metrics. In dry-run mode everything is
// computed and reported but nothing is written.
func (p *Pipeline) Run(ctx context.Context, opts ...RunOption) (*report.RunStats, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := NewRunOptions(opts...)
	if options.StartDate.IsZero() {
		return nil, errors.NewValidationError("start", "", "start date is required")
	}
	startedAt := time.Now()

	// Step 2: Resolve run parameters against the configuration
	basePath := options.BasePath
	if basePath == "" {
		basePath = p.config.Paths.BaseFile
	}
	outputDir := options.OutputDir
	if outputDir == "" {
		outputDir = p.config.Paths.OutputDir
	}
	endDate := options.EndDate
	if endDate.IsZero() {
		endDate = options.StartDate.AddDate(0, 0, 6)
	}
	week := options.ReportWeek
	if week == "" {
		year, isoWeek := options.StartDate.ISOWeek()
		week = fmt.Sprintf("%d%02d", year, isoWeek)
	}
	platforms := p.config.Processing.DefaultPlatforms
	if options.Platform != "" {
		platforms = []string{options.Platform}
	}

	for _, dir := range []string{outputDir, p.config.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WrapIO("create directory", dir, err)
		}
	}

	reg := registry.Open(p.config.Paths.ColumnsRegistry)
	stats := report.NewRunStats()

	logging.Info().
		Str("week", week).
		Str("start", options.StartDate.Format("2006-01-02")).
		Str("end", endDate.Format("2006-01-02")).
		Strs("platforms", platforms).
		Msg("Starting weekly load")

	// Step 3: Read and prepare every platform's input files
	platformData := make(map[string]*table.Table, len(platforms))
	invalidCombined := table.New()
	duplicatesCombined := table.New()

	for _, platform := range platforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		metrics := stats.ForPlatform(platform)
		aliasPath := p.config.Mappings.Aliases[platform]
		if aliasPath == "" {
			fmt.Fprintf(p.out, "Нет файла соответствий для площадки %s. Пропуск.\n", platform)
			continue
		}
		aliases, err := canonical.LoadAliasFile(aliasPath)
		if err != nil {
			return nil, err
		}

		files := ingest.Discover(p.config.Paths.InputDir, platform)
		metrics.FilesProcessed = len(files)

		batch := table.New()
		for _, file := range files {
			src, err := ingest.ReadTable(file)
			if err != nil {
				logging.Error().Err(err).Str("file", file).Msg("Failed to read input file")
				continue
			}
			if src.IsEmpty() {
				logging.Warn().Str("file", file).Msg("Input file is empty, skipping")
				continue
			}
			metrics.RowsRead += src.NumRows()

			result := Prepare(src, aliases, FileContext{
				StartDate:   options.StartDate,
				EndDate:     endDate,
				ReportWeek:  week,
				FilePath:    file,
				Platform:    platform,
				DropInvalid: p.config.Processing.DropInvalid,
			})
			if invalid := result.InvalidArticuls.NumRows(); invalid > 0 && options.FailOnInvalidArticul {
				err := errors.NewInvalidArticulsError(file, invalid, result.InvalidSamples)
				logging.Error().Err(err).Str("file", file).Msg("Aborting run on invalid articuls")
				return nil, err
			}

			added := reg.Register(platform, result.OtherColumns, file)
			metrics.NewColumns += added
			stats.RegistryNewColumns += added

			if result.InvalidArticuls.NumRows() > 0 {
				result.InvalidArticuls.SetColumn(canonical.ColPlayground, table.String(platform))
				result.InvalidArticuls.SetColumn("source_file", table.String(file))
				invalidCombined.AppendTable(result.InvalidArticuls)
				metrics.InvalidArticuls += result.InvalidArticuls.NumRows()
			}

			batch.AppendTable(result.Table)
		}
		platformData[platform] = batch
	}

	// Step 4: Load the accumulated ledger workbook
	required := append([]string(nil), platforms...)
	if !slices.Contains(required, reportSheetName) {
		required = append(required, reportSheetName)
	}
	store, err := history.Open(basePath, required)
	if err != nil {
		return nil, err
	}

	// Step 5: Deduplicate against the ledger and assign surrogate ids
	keys := canonical.KeyColumns()
	for _, platform := range platforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, ok := platformData[platform]
		if !ok || batch.IsEmpty() {
			continue
		}
		metrics := stats.ForPlatform(platform)
		existing := store.Sheet(platform)

		kept, duplicates := history.Dedupe(batch, existing, keys)
		if duplicates.NumRows() > 0 {
			duplicates.SetColumn(canonical.ColPlayground, table.String(platform))
			duplicatesCombined.AppendTable(duplicates)
			metrics.Duplicates += duplicates.NumRows()
		}

		history.AssignIncrementalIDs(kept, existing, p.config.Processing.IDColumn)
		metrics.RowsLoaded += kept.NumRows()

		merged := existing.Clone()
		merged.AppendTable(kept)
		store.SetSheet(platform, merged)
	}

	// Step 6: Build the cross-platform report and enrich it
	reportSheets := make(map[string]*table.Table, len(p.config.Processing.DefaultPlatforms))
	for _, platform := range p.config.Processing.DefaultPlatforms {
		reportSheets[platform] = store.Sheet(platform)
	}
	reportTable := report.Build(p.config.Processing.DefaultPlatforms, reportSheets)

	master, err := report.LoadProductMaster(p.config.Paths.LookupProduct)
	if err != nil {
		return nil, err
	}
	enriched, unmatched := report.Enrich(reportTable, master)
	stats.UnmatchedProducts = unmatched.NumRows()

	// Step 7: Compute artifact paths and record them in the stats
	dateTag := options.StartDate.Format("20060102")
	reportPath := filepath.Join(outputDir, fmt.Sprintf("report_%s.xlsx", week))
	parquetPath := filepath.Join(outputDir, fmt.Sprintf("report_%s.parquet", week))
	invalidPath := filepath.Join(outputDir, fmt.Sprintf("invalid_articuls_%s.xlsx", dateTag))
	duplicatesPath := filepath.Join(outputDir, fmt.Sprintf("duplicates_%s.xlsx", dateTag))
	unmatchedPath := filepath.Join(outputDir, fmt.Sprintf("unmatched_products_%s.xlsx", dateTag))
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("run_summary_%s.md", dateTag))

	stats.OutputReportPath = reportPath
	stats.BasePath = basePath
	if invalidCombined.NumRows() > 0 {
		stats.InvalidPath = invalidPath
	}
	if duplicatesCombined.NumRows() > 0 {
		stats.DuplicatesPath = duplicatesPath
	}
	if unmatched.NumRows() > 0 {
		stats.UnmatchedPath = unmatchedPath
	}

	// Step 8: Print the console summary
	if err := report.RenderConsole(p.out, stats); err != nil {
		return nil, err
	}

	// Step 9: Stop before any writes in dry-run mode
	if options.DryRun {
		fmt.Fprintln(p.out, "Режим dry-run: файлы не будут записаны.")
		return stats, nil
	}

	// Step 10: Write the weekly report workbook
	if err := os.MkdirAll(filepath.Dir(reportPath), 0o755); err != nil {
		return nil, errors.WrapIO("create directory", filepath.Dir(reportPath), err)
	}
	reportOrder := append([]string(nil), p.config.Processing.DefaultPlatforms...)
	if !slices.Contains(reportOrder, reportSheetName) {
		reportOrder = append(reportOrder, reportSheetName)
	}
	reportSheets[reportSheetName] = enriched
	if err := history.WriteWorkbook(reportPath, reportOrder, reportSheets); err != nil {
		return nil, err
	}

	// Step 11: Write the updated ledger with the report sheet refreshed
	store.SetSheet(reportSheetName, enriched)
	if err := store.WriteTo(basePath); err != nil {
		return nil, err
	}

	// Step 12: Write quarantine workbooks for rows that need attention
	if invalidCombined.NumRows() > 0 {
		if err := writeQuarantine(invalidPath, invalidCombined); err != nil {
			return nil, err
		}
	}
	if duplicatesCombined.NumRows() > 0 {
		if err := writeQuarantine(duplicatesPath, duplicatesCombined); err != nil {
			return nil, err
		}
	}
	if unmatched.NumRows() > 0 {
		if err := writeQuarantine(unmatchedPath, unmatched); err != nil {
			return nil, err
		}
	}

	// Step 13: Export the parquet copy when enabled
	if p.config.Processing.EnableParquet && !options.SkipParquet && !enriched.IsEmpty() {
		if err := parquet.Export(parquetPath, enriched); err != nil {
			return nil, err
		}
		stats.OutputParquetPath = parquetPath
	}

	// Step 14: Flush the column registry
	if err := reg.Flush(); err != nil {
		return nil, err
	}

	// Step 15: Write the run summary and report where everything went
	summary, err := os.Create(summaryPath)
	if err != nil {
		return nil, errors.WrapIO("create", summaryPath, err)
	}
	if err := report.WriteMarkdown(summary, stats, startedAt); err != nil {
		_ = summary.Close()
		return nil, err
	}
	if err := summary.Close(); err != nil {
		return nil, errors.WrapIO("close", summaryPath, err)
	}

	logging.Info().
		Int("files", stats.TotalFiles()).
		Int("loaded", stats.TotalLoaded()).
		Int("duplicates", stats.TotalDuplicates()).
		Msg("Weekly load finished")

	fmt.Fprintf(p.out, "Отчёт сохранён в %s\n", reportPath)
	fmt.Fprintf(p.out, "Итоги сохранены в %s\n", summaryPath)

	return stats, nil
}

func writeQuarantine(path string, tbl *table.Table) error {
	return history.WriteWorkbook(path, []string{quarantineSheetName}, map[string]*table.Table{
		quarantineSheetName: tbl,
	})
}
