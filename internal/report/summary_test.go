package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-etl/salesledger/internal/report"
)

func sampleStats() *report.RunStats {
	stats := report.NewRunStats()
	oz := stats.ForPlatform("OZ")
	oz.FilesProcessed = 2
	oz.RowsRead = 120
	oz.RowsLoaded = 100
	oz.Duplicates = 15
	oz.InvalidArticuls = 5
	oz.NewColumns = 1
	wb := stats.ForPlatform("WB")
	wb.FilesProcessed = 1
	wb.RowsRead = 40
	wb.RowsLoaded = 40
	stats.UnmatchedProducts = 3
	stats.RegistryNewColumns = 1
	stats.OutputReportPath = "/data/output/report_202536.xlsx"
	stats.BasePath = "/data/base.xlsx"
	return stats
}

func TestRunStatsTotals(t *testing.T) {
	stats := sampleStats()

	assert.Equal(t, []string{"OZ", "WB"}, stats.Platforms())
	assert.Equal(t, 3, stats.TotalFiles())
	assert.Equal(t, 140, stats.TotalLoaded())
	assert.Equal(t, 15, stats.TotalDuplicates())
}

func TestRenderConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.RenderConsole(&buf, sampleStats()))

	out := buf.String()
	assert.Contains(t, out, "Итоги обработки")
	assert.Contains(t, out, "OZ")
	assert.Contains(t, out, "Всего файлов: 3, загружено строк: 140, дубликатов: 15")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	startedAt := time.Date(2025, 9, 8, 10, 30, 0, 0, time.UTC)

	require.NoError(t, report.WriteMarkdown(&buf, sampleStats(), startedAt))

	out := buf.String()
	assert.Contains(t, out, "# Run Summary")
	assert.Contains(t, out, "Дата запуска: 2025-09-08 10:30:00")
	assert.Contains(t, out, "## Метрики по площадкам")
	assert.Contains(t, out, "## Итого")
	assert.Contains(t, out, "Всего файлов: 3")
	assert.Contains(t, out, "Итоговый отчёт: /data/output/report_202536.xlsx")
	assert.NotContains(t, out, "Parquet")
}
