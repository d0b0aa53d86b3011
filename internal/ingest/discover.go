package ingest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/mosaic-etl/salesledger/pkg/logging"
)

// Discover lists the source files dropped for one platform, looking in
// the per-platform subdirectory of inputDir. Workbook and CSV files are
// merged into a single name-sorted list. A missing subdirectory is not
// an error; it means the platform shipped nothing this week.
func Discover(inputDir, platform string) []string {
	dir := filepath.Join(inputDir, platform)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logging.Warn().
			Str("platform", platform).
			Str("dir", dir).
			Msg("Input directory not found, skipping platform")
		return nil
	}

	var files []string
	for _, pattern := range []string{"*.xlsx", "*.csv"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	logging.Debug().
		Str("platform", platform).
		Int("count", len(files)).
		Msg("Discovered input files")
	return files
}
