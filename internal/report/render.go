// Package report renders pipeline run reports for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Bloodwingv2/gamecrawl/internal/pipeline"
)

// LatestFile is the well-known name of the most recent run report in the
// report directory.
const LatestFile = "latest.json"

// Load reads a saved run report.
func Load(path string) (*pipeline.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report pipeline.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &report, nil
}

// Render writes the run report as formatted tables.
func Render(w io.Writer, report *pipeline.Report) {
	fmt.Fprintf(w, "Run %s (%s)\n", report.RunID,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))

	renderSources(w, report)
	renderFunnel(w, report)

	if len(report.NearDuplicates) > 0 {
		renderNearDuplicates(w, report)
	}
}

func renderSources(w io.Writer, report *pipeline.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "File", "Rows", "Kept", "No Title", "Dup URL"})

	for _, load := range report.Sources {
		if load.Skipped {
			t.AppendRow(table.Row{load.Source, "(skipped)", "-", "-", "-", "-"})
			continue
		}
		stats := report.Cleaning[load.Source]
		t.AppendRow(table.Row{
			load.Source,
			load.File,
			load.Rows,
			stats.Kept,
			stats.MissingTitleDrops,
			stats.DuplicateURLDrops,
		})
	}
	t.Render()
}

func renderFunnel(w io.Writer, report *pipeline.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stage", "Rows", "Notes"})

	t.AppendRow(table.Row{"merged", report.MergedRows, ""})
	t.AppendRow(table.Row{
		"deduplicated",
		report.Dedup.Kept,
		fmt.Sprintf("%d duplicates in %d groups", report.Dedup.DuplicateDrops, report.Dedup.Groups),
	})
	t.AppendRow(table.Row{
		"final",
		report.FinalRows,
		fmt.Sprintf("%d price defaults, %d unrated, %d dropped",
			report.Rules.PriceDefaults,
			report.Rules.UnratedReplacements,
			report.Rules.MissingProvenanceDrops),
	})
	t.Render()
}

func renderNearDuplicates(w io.Writer, report *pipeline.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Title A", "Title B", "Similarity"})

	for _, pair := range report.NearDuplicates {
		t.AppendRow(table.Row{pair.LeftTitle, pair.RightTitle, fmt.Sprintf("%.3f", pair.Similarity)})
	}
	t.Render()
}
