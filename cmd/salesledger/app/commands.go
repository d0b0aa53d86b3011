package app

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/mosaic-etl/salesledger/internal/config"
	"github.com/mosaic-etl/salesledger/internal/extract"
	"github.com/mosaic-etl/salesledger/internal/pipeline"
	"github.com/mosaic-etl/salesledger/pkg/errors"
)

const dateLayout = "2006-01-02"

// createLoadWeekCommand creates the load-week command, the weekly load
// entry point. Flag help stays in Russian for the operators running it.
func (a *App) createLoadWeekCommand() *cobra.Command {
	var (
		start           string
		end             string
		week            string
		base            string
		saveTo          string
		platform        string
		configPath      string
		dryRun          bool
		failOnInvalid   bool
		noExportParquet bool
	)

	cmd := &cobra.Command{
		Use:   "load-week",
		Short: "Загрузить недельные выгрузки маркетплейсов",
		RunE: func(cmd *cobra.Command, _ []string) error {
			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				return errors.NewValidationError("start", start, "date must be in YYYY-MM-DD form")
			}
			var endDate time.Time
			if end != "" {
				endDate, err = time.Parse(dateLayout, end)
				if err != nil {
					return errors.NewValidationError("end", end, "date must be in YYYY-MM-DD form")
				}
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logPath, err := a.setupRunLog(cfg.Paths.LogsDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Лог-файл: %s\n", logPath)

			p := pipeline.New(cfg, pipeline.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run(cmd.Context(),
				pipeline.RunWithPeriod(startDate, endDate),
				pipeline.RunWithWeek(week),
				pipeline.RunWithBasePath(base),
				pipeline.RunWithOutputDir(saveTo),
				pipeline.RunWithPlatform(platform),
				pipeline.RunWithDryRun(dryRun),
				pipeline.RunWithFailOnInvalidArticul(failOnInvalid),
				pipeline.RunWithSkipParquet(noExportParquet),
			)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&start, "start", "", "Дата начала отчётной недели (YYYY-MM-DD)")
	flags.StringVar(&end, "end", "", "Дата окончания отчётной недели (по умолчанию +6 дней)")
	flags.StringVar(&base, "base", "", "Путь к базе Excel")
	flags.StringVar(&week, "week", "", "Номер недели в формате YYYYWW")
	flags.StringVar(&saveTo, "save-to", "", "Каталог для сохранения отчёта")
	flags.BoolVar(&dryRun, "dry-run", false, "Не записывать файлы")
	flags.BoolVar(&failOnInvalid, "fail-on-invalid-articul", false, "Остановить обработку при неверных артикулах")
	flags.BoolVar(&noExportParquet, "no-export-parquet", false, "Не экспортировать parquet")
	flags.StringVar(&platform, "platform", "", "Обработать только выбранную площадку")
	flags.StringVar(&configPath, "config", config.DefaultPath, "Путь к конфигурационному файлу")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// createExtractCommand creates the extract-workbook command for ad-hoc
// inspection of a workbook outside the weekly pipeline.
func (a *App) createExtractCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "extract-workbook <workbook>",
		Short: "Extract Excel data into SQLite databases and JSON metadata",
		Long: `Extract every sheet of an Excel workbook into its own SQLite
database and write a JSON dictionary describing the workbook's
structure: sheet names, row counts, and both the original and the
normalized column names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dictionaryPath, err := extract.Process(cmd.Context(), args[0], outputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dictionary created at %s\n", dictionaryPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for the databases and dictionary (defaults to a sibling 'output' directory)")
	return cmd
}

// createVersionCommand creates the version command.
func (a *App) createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "salesledger version %s\n", a.version)
			fmt.Fprintf(out, "commit: %s\n", a.commit)
			fmt.Fprintf(out, "built: %s\n", a.date)
			fmt.Fprintf(out, "built by: %s\n", a.builtBy)
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
