// Package merger concatenates the per-source cleaned, unified batches into
// one working set.
package merger

import (
	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
)

// SourceBatch is one source's cleaned, unified record set.
type SourceBatch struct {
	Source  domain.Source
	Records []domain.Record
}

// Merger concatenates source batches.
type Merger struct {
	logger logger.Interface
}

// New creates a new merger.
func New(log logger.Interface) *Merger {
	return &Merger{logger: log.WithComponent("merger")}
}

// Merge concatenates the batches in source order, preserving within-source
// order. No deduplication happens here: every input record appears exactly
// once in the output.
func (m *Merger) Merge(batches []SourceBatch) []domain.Record {
	total := 0
	for _, batch := range batches {
		total += len(batch.Records)
	}

	out := make([]domain.Record, 0, total)
	for _, batch := range batches {
		out = append(out, batch.Records...)
		m.logger.WithSource(string(batch.Source)).Debug("Merged source batch",
			"rows", len(batch.Records),
		)
	}

	m.logger.Info("Merged all source batches",
		"sources", len(batches),
		"total_rows", len(out),
	)
	return out
}
