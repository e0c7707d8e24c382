package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
)

// schema creates the games table. Titles are unique after deduplication, so
// re-imports upsert on game_title.
const schema = `
CREATE TABLE IF NOT EXISTS games (
	id                  SERIAL PRIMARY KEY,
	data_source         TEXT NOT NULL,
	game_title          TEXT NOT NULL UNIQUE,
	release_date        TEXT,
	rating              TEXT,
	rating_score        DOUBLE PRECISION,
	review_count        INTEGER,
	original_price      DOUBLE PRECISION,
	discounted_price    DOUBLE PRECISION,
	discount_percentage DOUBLE PRECISION,
	genres              TEXT,
	platform            TEXT,
	developer           TEXT,
	publisher           TEXT,
	description         TEXT,
	game_url            TEXT,
	release_status      TEXT,
	imported_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertGame = `
INSERT INTO games (
	data_source, game_title, release_date, rating, rating_score, review_count,
	original_price, discounted_price, discount_percentage, genres, platform,
	developer, publisher, description, game_url, release_status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (game_title) DO UPDATE SET
	data_source         = EXCLUDED.data_source,
	release_date        = EXCLUDED.release_date,
	rating              = EXCLUDED.rating,
	rating_score        = EXCLUDED.rating_score,
	review_count        = EXCLUDED.review_count,
	original_price      = EXCLUDED.original_price,
	discounted_price    = EXCLUDED.discounted_price,
	discount_percentage = EXCLUDED.discount_percentage,
	genres              = EXCLUDED.genres,
	platform            = EXCLUDED.platform,
	developer           = EXCLUDED.developer,
	publisher           = EXCLUDED.publisher,
	description         = EXCLUDED.description,
	game_url            = EXCLUDED.game_url,
	release_status      = EXCLUDED.release_status,
	imported_at         = now()`

// GameRow is a persisted catalog row.
type GameRow struct {
	ID                 int64    `db:"id"                  json:"id"`
	DataSource         string   `db:"data_source"         json:"data_source"`
	GameTitle          string   `db:"game_title"          json:"game_title"`
	ReleaseDate        *string  `db:"release_date"        json:"release_date,omitempty"`
	Rating             *string  `db:"rating"              json:"rating,omitempty"`
	RatingScore        *float64 `db:"rating_score"        json:"rating_score,omitempty"`
	ReviewCount        *int     `db:"review_count"        json:"review_count,omitempty"`
	OriginalPrice      *float64 `db:"original_price"      json:"original_price,omitempty"`
	DiscountedPrice    *float64 `db:"discounted_price"    json:"discounted_price,omitempty"`
	DiscountPercentage *float64 `db:"discount_percentage" json:"discount_percentage,omitempty"`
	Genres             *string  `db:"genres"              json:"genres,omitempty"`
	Platform           *string  `db:"platform"            json:"platform,omitempty"`
	Developer          *string  `db:"developer"           json:"developer,omitempty"`
	Publisher          *string  `db:"publisher"           json:"publisher,omitempty"`
	Description        *string  `db:"description"         json:"description,omitempty"`
	GameURL            *string  `db:"game_url"            json:"game_url,omitempty"`
	ReleaseStatus      *string  `db:"release_status"      json:"release_status,omitempty"`
}

// Filter restricts catalog queries.
type Filter struct {
	Source    string
	Developer string
	MinRating *float64
	Limit     int
}

// SourceStat aggregates catalog counts per winning source.
type SourceStat struct {
	Source    string   `db:"data_source" json:"source"`
	Games     int      `db:"games"       json:"games"`
	AvgRating *float64 `db:"avg_rating"  json:"avg_rating,omitempty"`
}

// Repository handles database operations for the merged catalog.
type Repository struct {
	db     *sqlx.DB
	logger logger.Interface
}

// NewRepository creates a new repository with the given database connection.
func NewRepository(db *sqlx.DB, log logger.Interface) *Repository {
	return &Repository{db: db, logger: log.WithComponent("storage")}
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// EnsureSchema creates the games table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Count returns the number of imported rows.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM games`); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return count, nil
}

// Truncate removes every imported row. Used by the load command's --force.
func (r *Repository) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE TABLE games RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate games: %w", err)
	}
	return nil
}

// ImportRecords upserts the merged catalog in batched transactions. Imports
// are idempotent: re-running with the same data leaves the table unchanged
// apart from imported_at.
func (r *Repository) ImportRecords(ctx context.Context, records []domain.Record, batchSize int) error {
	if batchSize <= 0 {
		batchSize = len(records)
	}

	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		if err := r.importBatch(ctx, records[start:end]); err != nil {
			return err
		}
	}

	r.logger.Info("Imported catalog", "rows", len(records))
	return nil
}

func (r *Repository) importBatch(ctx context.Context, records []domain.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import batch: %w", err)
	}
	defer tx.Rollback()

	for _, record := range records {
		var score *float64
		if s, ok := record.Rating.Score(); ok {
			score = &s
		}
		_, execErr := tx.ExecContext(ctx, upsertGame,
			string(record.DataSource),
			record.GameTitle,
			nullString(record.ReleaseDate),
			nullString(record.Rating.String()),
			score,
			record.ReviewCount,
			record.OriginalPrice,
			record.DiscountedPrice,
			record.DiscountPercentage,
			nullString(record.Genres),
			nullString(record.Platform),
			nullString(record.Developer),
			nullString(record.Publisher),
			nullString(record.Description),
			nullString(record.GameURL),
			string(record.ReleaseStatus),
		)
		if execErr != nil {
			return fmt.Errorf("upsert game %q: %w", record.GameTitle, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("commit import batch: %w", commitErr)
	}
	return nil
}

// ListGames returns catalog rows matching the filter, ordered by title.
func (r *Repository) ListGames(ctx context.Context, filter Filter) ([]GameRow, error) {
	var (
		clauses []string
		args    []any
	)
	addClause := func(condition string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(condition, len(args)))
	}

	if filter.Source != "" {
		addClause("data_source = $%d", filter.Source)
	}
	if filter.Developer != "" {
		addClause("developer ILIKE $%d", "%"+filter.Developer+"%")
	}
	if filter.MinRating != nil {
		addClause("rating_score >= $%d", *filter.MinRating)
	}

	query := `SELECT * FROM games`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY game_title"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []GameRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return rows, nil
}

// SourceStats aggregates per-source game counts and average numeric rating.
func (r *Repository) SourceStats(ctx context.Context) ([]SourceStat, error) {
	query := `
		SELECT data_source, COUNT(*) AS games, AVG(rating_score) AS avg_rating
		FROM games
		GROUP BY data_source
		ORDER BY games DESC`

	var stats []SourceStat
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("source stats: %w", err)
	}
	return stats, nil
}

// nullString maps the empty string to a SQL NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
