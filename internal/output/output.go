// Package output writes the merged catalog and run reports to disk.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
)

// utf8BOM prefixes the CSV so spreadsheet tools pick up the encoding.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Writer persists pipeline results.
type Writer struct {
	logger logger.Interface
}

// NewWriter creates a new output writer.
func NewWriter(log logger.Interface) *Writer {
	return &Writer{logger: log.WithComponent("output")}
}

// WriteCSV writes the merged catalog as UTF-8-with-BOM CSV in canonical
// column order. Null optionals become empty cells.
func (w *Writer) WriteCSV(path string, records []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(domain.CanonicalFields); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		if err := cw.Write(row(record)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	w.logger.Info("Wrote merged catalog",
		"path", path,
		"rows", len(records),
	)
	return nil
}

// WriteReport saves the run report as indented JSON next to the catalog.
func (w *Writer) WriteReport(path string, report any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	w.logger.Info("Wrote run report", "path", path)
	return nil
}

// row renders one record in canonical column order.
func row(r domain.Record) []string {
	return []string{
		string(r.DataSource),
		r.GameTitle,
		r.ReleaseDate,
		r.Rating.String(),
		intCell(r.ReviewCount),
		floatCell(r.OriginalPrice),
		floatCell(r.DiscountedPrice),
		floatCell(r.DiscountPercentage),
		r.Genres,
		r.Platform,
		r.Developer,
		r.Publisher,
		r.Description,
		r.GameURL,
		string(r.ReleaseStatus),
	}
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
