package storage_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
	"github.com/Bloodwingv2/gamecrawl/internal/storage"
)

func newMockRepo(t *testing.T) (*storage.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return storage.NewRepository(sqlx.NewDb(db, "sqlmock"), logger.NewNoOp()), mock
}

func TestRepository_EnsureSchema(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS games").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ImportRecords(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	price := 9.99
	records := []domain.Record{
		{
			DataSource:      domain.SourceSteam,
			GameTitle:       "Portal 2",
			ReleaseDate:     "2011-04-19",
			Rating:          domain.NumericRating(95),
			DiscountedPrice: &price,
			Developer:       "Valve",
			Publisher:       "Valve",
			GameURL:         "https://store.steampowered.com/app/620",
			ReleaseStatus:   domain.StatusReleased,
		},
		{
			DataSource:    domain.SourceGOG,
			GameTitle:     "Hades",
			Rating:        domain.UnratedRating(),
			Developer:     "Supergiant Games",
			ReleaseStatus: domain.StatusUnknown,
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO games").
		WithArgs("Steam", "Portal 2", "2011-04-19", "95", 95.0, nil,
			nil, 9.99, nil, nil, nil, "Valve", "Valve", nil,
			"https://store.steampowered.com/app/620", "Released").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO games").
		WithArgs("GOG", "Hades", nil, domain.UnratedSentinel, nil, nil,
			nil, nil, nil, nil, nil, "Supergiant Games", nil, nil,
			nil, "Unknown").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ImportRecords(context.Background(), records, 0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ImportRecords_Batches(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	records := []domain.Record{
		{DataSource: domain.SourceEpic, GameTitle: "A", ReleaseStatus: domain.StatusUnknown},
		{DataSource: domain.SourceEpic, GameTitle: "B", ReleaseStatus: domain.StatusUnknown},
		{DataSource: domain.SourceEpic, GameTitle: "C", ReleaseStatus: domain.StatusUnknown},
	}

	// Batch size 2 means two transactions.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO games").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO games").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO games").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ImportRecords(context.Background(), records, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM games`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Truncate(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("TRUNCATE TABLE games").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Truncate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListGames_Filters(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	minRating := 80.0
	mock.ExpectQuery(`SELECT \* FROM games WHERE data_source = \$1 AND developer ILIKE \$2 AND rating_score >= \$3 ORDER BY game_title LIMIT \$4`).
		WithArgs("Steam", "%valve%", minRating, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data_source", "game_title"}).
			AddRow(1, "Steam", "Portal 2"))

	rows, err := repo.ListGames(context.Background(), storage.Filter{
		Source:    "Steam",
		Developer: "valve",
		MinRating: &minRating,
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Portal 2", rows[0].GameTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SourceStats(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	avg := 84.5
	mock.ExpectQuery("SELECT data_source, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"data_source", "games", "avg_rating"}).
			AddRow("Steam", 42, avg).
			AddRow("GOG", 17, nil))

	stats, err := repo.SourceStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, "Steam", stats[0].Source)
	require.Equal(t, 42, stats[0].Games)
	require.InDelta(t, avg, *stats[0].AvgRating, 0.001)
	require.Nil(t, stats[1].AvgRating)
	require.NoError(t, mock.ExpectationsWereMet())
}
