package leads

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// TimestampLayout formats the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the first row of every lead log file.
var Header = []string{
	"timestamp",
	"client_name",
	"nam_name",
	"industry",
	"size",
	"annual_budget_inr",
	"products_already_sold",
	"recommended_products",
	"combined_pitch_generated",
}

// CSVWriter appends events to a CSV file, writing Header when the file is new
// or empty. Existing rows are never rewritten.
type CSVWriter struct {
	path string
	mu   sync.Mutex
}

// NewCSVWriter returns a writer for path. The file is created on first Record.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the log file location.
func (w *CSVWriter) Path() string {
	return w.path
}

// Record appends one row for ev.
func (w *CSVWriter) Record(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("lead log mkdir: %w", err)
		}
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("lead log open: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("lead log stat: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("lead log header: %w", err)
		}
	}
	if err := cw.Write(row(ev)); err != nil {
		return fmt.Errorf("lead log write: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("lead log flush: %w", err)
	}
	return nil
}

func row(ev Event) []string {
	size := ""
	if ev.Size != nil {
		size = strconv.Itoa(*ev.Size)
	}
	generated := "0"
	if ev.PitchGenerated {
		generated = "1"
	}
	return []string{
		ev.Timestamp.Format(TimestampLayout),
		ev.ClientName,
		ev.NAMName,
		ev.Industry,
		size,
		strconv.FormatInt(ev.AnnualBudget, 10),
		strings.Join(ev.SoldIDs, ","),
		strings.Join(ev.RecommendedIDs, ","),
		generated,
	}
}
