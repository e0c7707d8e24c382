package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bloodwingv2/gamecrawl/internal/config"
	"github.com/Bloodwingv2/gamecrawl/internal/sources"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, "development", cfg.App.Environment)
	require.Equal(t, "data/merged_games.csv", cfg.Output.CSVPath)
	require.InDelta(t, 0.95, cfg.Pipeline.SimilarityThreshold, 0.001)
	require.False(t, cfg.Pipeline.SkipMissing)
	require.Equal(t, 5432, cfg.Database.Port)

	// With no explicit sources, every storefront gets its conventional file.
	require.Len(t, cfg.Sources, 7)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  environment: production
pipeline:
  skip_missing: true
  similarity_threshold: 0.9
sources:
  - name: Steam
    file: /data/steam.csv
    enabled: true
  - name: GOG
    file: /data/gog.csv
    enabled: false
output:
  csv_path: /data/out.csv
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.App.Environment)
	require.True(t, cfg.Pipeline.SkipMissing)
	require.InDelta(t, 0.9, cfg.Pipeline.SimilarityThreshold, 0.001)
	require.Equal(t, "/data/out.csv", cfg.Output.CSVPath)

	require.Len(t, cfg.Sources, 2)
	require.NoError(t, cfg.Validate())
	require.Len(t, sources.Enabled(cfg.Sources), 1)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate_RejectsBadThreshold(t *testing.T) {
	cfg := &config.Config{
		Sources: []sources.Config{{Name: "Steam", File: "steam.csv", Enabled: true}},
	}
	cfg.Pipeline.SimilarityThreshold = 1.5
	require.Error(t, cfg.Validate())
}
