package ir

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// MetricsPath returns the metrics file path for a run name inside the
// results directory.
func MetricsPath(dir, runName string) string {
	return filepath.Join(dir, runName+"_metrics.csv")
}

// WriteMetricsCSV persists one run's metric table as a single-row CSV:
// a run_name column followed by the metric names in sorted order.
func WriteMetricsCSV(path, runName string, metrics Metrics) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	names := metrics.Names()
	header := append([]string{"run_name"}, names...)
	row := []string{runName}
	for _, name := range names {
		row = append(row, strconv.FormatFloat(metrics[name], 'f', 6, 64))
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing metrics %s: %w", path, err)
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("writing metrics %s: %w", path, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing metrics %s: %w", path, err)
	}
	return nil
}
