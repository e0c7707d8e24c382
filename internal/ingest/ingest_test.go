package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bloodwingv2/gamecrawl/internal/ingest"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
	"github.com/Bloodwingv2/gamecrawl/internal/sources"
)

func writeBatch(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad_UTF8WithBOM(t *testing.T) {
	t.Parallel()

	data := append([]byte{0xef, 0xbb, 0xbf}, []byte("title,price\nPortal 2,9.99\n")...)
	path := writeBatch(t, "steam.csv", data)

	loader := ingest.NewLoader(logger.NewNoOp())
	batch, err := loader.Load(sources.Config{Name: "Steam", File: path, Enabled: true})
	require.NoError(t, err)
	require.Len(t, batch.Records, 1)
	require.Equal(t, "Portal 2", batch.Records[0]["title"])
	require.Equal(t, "9.99", batch.Records[0]["price"])
}

func TestLoad_Latin1Fallback(t *testing.T) {
	t.Parallel()

	// 0xe9 is é in Latin-1 but invalid as a standalone UTF-8 byte.
	data := []byte("title\nPok\xe9mon\n")
	path := writeBatch(t, "gog.csv", data)

	loader := ingest.NewLoader(logger.NewNoOp())
	batch, err := loader.Load(sources.Config{Name: "GOG", File: path, Enabled: true})
	require.NoError(t, err)
	require.Len(t, batch.Records, 1)
	require.Equal(t, "Pokémon", batch.Records[0]["title"])
}

func TestLoad_RaggedRows(t *testing.T) {
	t.Parallel()

	path := writeBatch(t, "epic.csv", []byte("title,price,rating\nHades,24.99\n"))

	loader := ingest.NewLoader(logger.NewNoOp())
	batch, err := loader.Load(sources.Config{Name: "Epic", File: path, Enabled: true})
	require.NoError(t, err)
	require.Len(t, batch.Records, 1)
	require.Equal(t, "Hades", batch.Records[0]["title"])
	require.Equal(t, "24.99", batch.Records[0]["price"])
	_, hasRating := batch.Records[0]["rating"]
	require.False(t, hasRating)
}

func TestLoadAll_PreservesConfigOrder(t *testing.T) {
	t.Parallel()

	names := []string{"Steam", "GOG", "instant_gaming", "RAWG", "Metacritic", "Humble", "Epic"}
	configs := make([]sources.Config, 0, len(names))
	for _, name := range names {
		path := writeBatch(t, name+".csv", []byte("title\n"+name+" Game\n"))
		configs = append(configs, sources.Config{Name: name, File: path, Enabled: true})
	}

	loader := ingest.NewLoader(logger.NewNoOp()).WithWorkers(3)
	for i := 0; i < 5; i++ {
		batches, skipped, err := loader.LoadAll(configs, false)
		require.NoError(t, err)
		require.Empty(t, skipped)
		require.Len(t, batches, len(names))
		for i, batch := range batches {
			require.Equal(t, names[i], string(batch.Source))
		}
	}
}

func TestLoadAll_MissingSourceAborts(t *testing.T) {
	t.Parallel()

	good := writeBatch(t, "steam.csv", []byte("title\nCeleste\n"))
	configs := []sources.Config{
		{Name: "Steam", File: good, Enabled: true},
		{Name: "GOG", File: filepath.Join(t.TempDir(), "absent.csv"), Enabled: true},
	}

	loader := ingest.NewLoader(logger.NewNoOp())
	_, _, err := loader.LoadAll(configs, false)
	require.ErrorIs(t, err, ingest.ErrSourceLoad)
	require.Contains(t, err.Error(), "GOG")
}

func TestLoadAll_SkipMissing(t *testing.T) {
	t.Parallel()

	good := writeBatch(t, "steam.csv", []byte("title\nCeleste\n"))
	configs := []sources.Config{
		{Name: "Steam", File: good, Enabled: true},
		{Name: "GOG", File: filepath.Join(t.TempDir(), "absent.csv"), Enabled: true},
	}

	loader := ingest.NewLoader(logger.NewNoOp())
	batches, skipped, err := loader.LoadAll(configs, true)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.Equal(t, []string{"GOG"}, skipped)
}
