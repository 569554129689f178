package eval

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poiesic/embedeval/core"
)

// ResultsPath returns the per-query results file path for a run name
// inside the results directory.
func ResultsPath(dir, runName string) string {
	return filepath.Join(dir, runName+"_results.csv")
}

// SummaryPath returns the merged summary table path inside the results
// directory.
func SummaryPath(dir string) string {
	return filepath.Join(dir, "summary.csv")
}

// WriteResultsCSV writes one row per query result. Retrieved document
// identifiers are joined with ';' to keep one row per query.
func WriteResultsCSV(path string, results []core.QueryResult) error {
	file, err := createReportFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"query_id", "expected", "retrieved", "hit"}); err != nil {
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	for _, r := range results {
		row := []string{
			r.QueryID,
			r.Expected,
			strings.Join(r.Retrieved, ";"),
			strconv.FormatBool(r.Hit),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing results %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	return nil
}

// WriteSummaryCSV writes one row per labeled summary for side-by-side
// comparison.
func WriteSummaryCSV(path string, summaries []Summary) error {
	file, err := createReportFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"label", "provider", "total", "hits", "hit_rate"}); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	for _, s := range summaries {
		row := []string{
			s.Label,
			s.Provider,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Hits),
			strconv.FormatFloat(s.HitRate, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing summary %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}

func createReportFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return file, nil
}
