// Package ingest loads per-source scraped batches from disk into raw
// records for the pipeline.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
	"github.com/Bloodwingv2/gamecrawl/internal/sources"
)

// ErrSourceLoad is returned when a configured source's batch cannot be
// loaded. Without --skip-missing this aborts the whole run: the pipeline
// contract requires every configured source before merging.
var ErrSourceLoad = errors.New("source batch load failed")

// utf8BOM is stripped from the front of batch files when present; the
// scrapers write UTF-8-with-BOM for spreadsheet compatibility.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// SourceBatch is one source's raw record set as loaded from disk.
type SourceBatch struct {
	Source  domain.Source
	File    string
	Records []domain.RawRecord
}

// DefaultWorkers is the bounded pool size for concurrent batch loading.
const DefaultWorkers = 4

// Loader reads source batches from CSV files.
type Loader struct {
	logger  logger.Interface
	workers int
}

// NewLoader creates a new batch loader.
func NewLoader(log logger.Interface) *Loader {
	return &Loader{logger: log.WithComponent("ingest"), workers: DefaultWorkers}
}

// WithWorkers sets the load pool size.
func (l *Loader) WithWorkers(n int) *Loader {
	if n > 0 {
		l.workers = n
	}
	return l
}

// loadResult carries one worker's outcome back to the reducer.
type loadResult struct {
	batch SourceBatch
	err   error
}

// LoadAll loads every configured source's batch. Files are read by a bounded
// worker pool; each worker returns its batch as a value and a single reducer
// assembles them in configured source order, so the output is deterministic.
// When skipMissing is false the first failing source (in config order) aborts
// with a diagnostic naming it; when true, failing sources are skipped and
// reported through the skipped return so the partial merge is never silent.
func (l *Loader) LoadAll(configs []sources.Config, skipMissing bool) (batches []SourceBatch, skipped []string, err error) {
	results := make([]loadResult, len(configs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(l.workers, len(configs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				batch, loadErr := l.Load(configs[i])
				results[i] = loadResult{batch: batch, err: loadErr}
			}
		}()
	}
	for i := range configs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, result := range results {
		if result.err != nil {
			if !skipMissing {
				return nil, nil, result.err
			}
			l.logger.WithSource(configs[i].Name).Warn("Skipping unavailable source",
				"file", configs[i].File,
				"error", result.err,
			)
			skipped = append(skipped, configs[i].Name)
			continue
		}
		batches = append(batches, result.batch)
	}
	return batches, skipped, nil
}

// Load reads one source's CSV batch. The file is decoded as UTF-8 with a
// Latin-1 fallback when the bytes are not valid UTF-8.
func (l *Loader) Load(cfg sources.Config) (SourceBatch, error) {
	data, readErr := os.ReadFile(cfg.File)
	if readErr != nil {
		return SourceBatch{}, fmt.Errorf("%w: source %q: %v", ErrSourceLoad, cfg.Name, readErr)
	}

	text, decodeErr := decode(data)
	if decodeErr != nil {
		return SourceBatch{}, fmt.Errorf("%w: source %q: %v", ErrSourceLoad, cfg.Name, decodeErr)
	}

	records, parseErr := parseCSV(text)
	if parseErr != nil {
		return SourceBatch{}, fmt.Errorf("%w: source %q: %v", ErrSourceLoad, cfg.Name, parseErr)
	}

	l.logger.WithSource(cfg.Name).Info("Loaded source batch",
		"file", cfg.File,
		"rows", len(records),
	)
	return SourceBatch{Source: cfg.Source(), File: cfg.File, Records: records}, nil
}

// decode strips a UTF-8 BOM and falls back to Latin-1 when the bytes are
// not valid UTF-8.
func decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, decodeErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if decodeErr != nil {
		return "", fmt.Errorf("decode latin-1 fallback: %w", decodeErr)
	}
	return string(decoded), nil
}

// parseCSV turns CSV text into raw records keyed by the header row. Empty
// cells stay as empty strings; the normalizers treat them as null.
func parseCSV(text string) ([]domain.RawRecord, error) {
	reader := csv.NewReader(bytes.NewReader([]byte(text)))
	reader.FieldsPerRecord = -1 // scrapers occasionally emit ragged rows

	rows, readErr := reader.ReadAll()
	if readErr != nil {
		return nil, fmt.Errorf("parse csv: %w", readErr)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty batch file")
	}

	header := rows[0]
	records := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(domain.RawRecord, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			}
		}
		records = append(records, record)
	}
	return records, nil
}
