package report

// PlatformMetrics counts what happened to one platform's files during a
// run.
type PlatformMetrics struct {
	FilesProcessed  int
	RowsRead        int
	RowsLoaded      int
	Duplicates      int
	InvalidArticuls int
	NewColumns      int
}

// RunStats aggregates per-platform metrics and the artifact paths of a
// run. Platforms keep the order in which they were first touched.
type RunStats struct {
	platforms []string
	metrics   map[string]*PlatformMetrics

	UnmatchedProducts  int
	RegistryNewColumns int

	OutputReportPath  string
	OutputParquetPath string
	BasePath          string
	DuplicatesPath    string
	InvalidPath       string
	UnmatchedPath     string
}

// NewRunStats returns empty run statistics.
func NewRunStats() *RunStats {
	return &RunStats{metrics: make(map[string]*PlatformMetrics)}
}

// ForPlatform returns the metrics bucket for a platform, creating it on
// first use.
func (s *RunStats) ForPlatform(platform string) *PlatformMetrics {
	if m, ok := s.metrics[platform]; ok {
		return m
	}
	m := &PlatformMetrics{}
	s.metrics[platform] = m
	s.platforms = append(s.platforms, platform)
	return m
}

// Platforms returns the platform names in first-use order.
func (s *RunStats) Platforms() []string {
	out := make([]string, len(s.platforms))
	copy(out, s.platforms)
	return out
}

// TotalFiles sums processed files across platforms.
func (s *RunStats) TotalFiles() int {
	total := 0
	for _, m := range s.metrics {
		total += m.FilesProcessed
	}
	return total
}

// TotalLoaded sums loaded rows across platforms.
func (s *RunStats) TotalLoaded() int {
	total := 0
	for _, m := range s.metrics {
		total += m.RowsLoaded
	}
	return total
}

// TotalDuplicates sums recognized duplicates across platforms.
func (s *RunStats) TotalDuplicates() int {
	total := 0
	for _, m := range s.metrics {
		total += m.Duplicates
	}
	return total
}
