// Package pipeline orchestrates the merge run: per-source mapping and
// cleaning, schema unification, cross-source merge, deduplication, and the
// business rules, with a run report covering every stage.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Bloodwingv2/gamecrawl/internal/cleaner"
	"github.com/Bloodwingv2/gamecrawl/internal/dedup"
	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/ingest"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
	"github.com/Bloodwingv2/gamecrawl/internal/mapper"
	"github.com/Bloodwingv2/gamecrawl/internal/merger"
	"github.com/Bloodwingv2/gamecrawl/internal/rules"
	"github.com/Bloodwingv2/gamecrawl/internal/unify"
)

// SourceLoad records how one source fared during ingest.
type SourceLoad struct {
	Source  string `json:"source"`
	File    string `json:"file"`
	Rows    int    `json:"rows"`
	Skipped bool   `json:"skipped"`
}

// Report summarizes a full pipeline run for the report command and the
// saved run artifact.
type Report struct {
	RunID          string                   `json:"run_id"`
	StartedAt      time.Time                `json:"started_at"`
	FinishedAt     time.Time                `json:"finished_at"`
	Sources        []SourceLoad             `json:"sources"`
	Cleaning       map[string]cleaner.Stats `json:"cleaning"`
	MergedRows     int                      `json:"merged_rows"`
	Dedup          dedup.Stats              `json:"dedup"`
	NearDuplicates []dedup.NearDuplicate    `json:"near_duplicates,omitempty"`
	Rules          rules.Stats              `json:"rules"`
	FinalRows      int                      `json:"final_rows"`
}

// Options tunes a pipeline run.
type Options struct {
	// SimilarityThreshold is the JaroWinkler cutoff for the near-duplicate
	// audit. Zero disables the audit.
	SimilarityThreshold float64
	// Now is the reference time for release status derivation. Zero means
	// time.Now().
	Now time.Time
}

// Pipeline runs the full merge over loaded source batches.
type Pipeline struct {
	logger  logger.Interface
	cleaner *cleaner.Cleaner
	merger  *merger.Merger
	dedup   *dedup.Resolver
	rules   *rules.Engine
	opts    Options
}

// New creates a pipeline with the given options.
func New(log logger.Interface, opts Options) *Pipeline {
	return &Pipeline{
		logger:  log.WithComponent("pipeline"),
		cleaner: cleaner.New(log),
		merger:  merger.New(log),
		dedup:   dedup.New(log),
		rules:   rules.New(log),
		opts:    opts,
	}
}

// Run executes the pipeline over the loaded batches and returns the merged
// catalog with a run report. The skipped list names sources that failed to
// load upstream; they appear in the report so partial runs are visible.
func (p *Pipeline) Run(batches []ingest.SourceBatch, skipped []string) ([]domain.Record, *Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Cleaning:  make(map[string]cleaner.Stats, len(batches)),
	}
	for _, name := range skipped {
		report.Sources = append(report.Sources, SourceLoad{Source: name, Skipped: true})
	}

	now := p.opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	log := p.logger.WithRunID(report.RunID)
	log.Info("Starting pipeline run", "sources", len(batches))

	// Per-source stages: mapping, cleaning, unification.
	unified := make([]merger.SourceBatch, 0, len(batches))
	for _, batch := range batches {
		report.Sources = append(report.Sources, SourceLoad{
			Source: string(batch.Source),
			File:   batch.File,
			Rows:   len(batch.Records),
		})

		mapped := mapper.Batch(batch.Source, batch.Records)
		cleaned, stats := p.cleaner.Clean(batch.Source, mapped)
		report.Cleaning[string(batch.Source)] = stats

		records := unify.Records(unify.Batch(cleaned), now)
		unified = append(unified, merger.SourceBatch{Source: batch.Source, Records: records})
	}

	merged := p.merger.Merge(unified)
	report.MergedRows = len(merged)

	kept := 0
	for _, stats := range report.Cleaning {
		kept += stats.Kept
	}
	if kept != len(merged) {
		return nil, nil, fmt.Errorf("merge row count %d does not match cleaned total %d", len(merged), kept)
	}

	deduped, dedupStats := p.dedup.Resolve(merged)
	report.Dedup = dedupStats

	if p.opts.SimilarityThreshold > 0 {
		report.NearDuplicates = p.dedup.Audit(deduped, p.opts.SimilarityThreshold)
	}

	final, ruleStats := p.rules.Apply(deduped)
	report.Rules = ruleStats
	report.FinalRows = len(final)
	report.FinishedAt = time.Now()

	log.WithDuration(report.FinishedAt.Sub(report.StartedAt)).Info("Pipeline run complete",
		"merged_rows", report.MergedRows,
		"final_rows", report.FinalRows,
		"duplicates_removed", dedupStats.DuplicateDrops,
	)
	return final, report, nil
}
