package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
)

// RenderConsole prints the end-of-run summary table. Labels are in the
// operators' working language, matching the summary document.
func RenderConsole(w io.Writer, stats *RunStats) error {
	fmt.Fprintln(w, "Итоги обработки")

	tbl := tablewriter.NewTable(w)
	tbl.Header("Площадка", "Файлов", "Строк", "Загружено", "Дубликаты", "Неверные артикулы", "Новые колонки")
	for _, platform := range stats.Platforms() {
		m := stats.ForPlatform(platform)
		if err := tbl.Append(
			platform,
			strconv.Itoa(m.FilesProcessed),
			strconv.Itoa(m.RowsRead),
			strconv.Itoa(m.RowsLoaded),
			strconv.Itoa(m.Duplicates),
			strconv.Itoa(m.InvalidArticuls),
			strconv.Itoa(m.NewColumns),
		); err != nil {
			return err
		}
	}
	if err := tbl.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Всего файлов: %d, загружено строк: %d, дубликатов: %d\n",
		stats.TotalFiles(), stats.TotalLoaded(), stats.TotalDuplicates())
	return nil
}

// WriteMarkdown writes the run summary document.
func WriteMarkdown(w io.Writer, stats *RunStats, startedAt time.Time) error {
	rows := make([][]string, 0, len(stats.Platforms()))
	for _, platform := range stats.Platforms() {
		m := stats.ForPlatform(platform)
		rows = append(rows, []string{
			platform,
			strconv.Itoa(m.FilesProcessed),
			strconv.Itoa(m.RowsRead),
			strconv.Itoa(m.RowsLoaded),
			strconv.Itoa(m.Duplicates),
			strconv.Itoa(m.InvalidArticuls),
			strconv.Itoa(m.NewColumns),
		})
	}

	totals := []string{
		fmt.Sprintf("Всего файлов: %d", stats.TotalFiles()),
		fmt.Sprintf("Загружено строк: %d", stats.TotalLoaded()),
		fmt.Sprintf("Удалено дублей: %d", stats.TotalDuplicates()),
		fmt.Sprintf("Несопоставленные товары: %d", stats.UnmatchedProducts),
		fmt.Sprintf("Новые колонки в реестре: %d", stats.RegistryNewColumns),
	}
	for _, artifact := range []struct{ label, path string }{
		{"Итоговый отчёт", stats.OutputReportPath},
		{"Parquet", stats.OutputParquetPath},
		{"Обновлённая база", stats.BasePath},
		{"Файл дублей", stats.DuplicatesPath},
		{"Неверные артикулы", stats.InvalidPath},
		{"Не найденные в мастере", stats.UnmatchedPath},
	} {
		if artifact.path != "" {
			totals = append(totals, fmt.Sprintf("%s: %s", artifact.label, artifact.path))
		}
	}

	return md.NewMarkdown(w).
		H1("Run Summary").
		PlainTextf("Дата запуска: %s", startedAt.Format("2006-01-02 15:04:05")).
		LF().
		H2("Метрики по площадкам").
		Table(md.TableSet{
			Header: []string{"Площадка", "Файлы", "Прочитано строк", "Загрузка", "Дубликаты", "Неверные артикулы", "Новые колонки"},
			Rows:   rows,
		}).
		H2("Итого").
		BulletList(totals...).
		Build()
}
