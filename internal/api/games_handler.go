// Package api provides HTTP handlers for the merged catalog query service.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bloodwingv2/gamecrawl/internal/storage"
)

// defaultListLimit caps unpaginated catalog listings.
const defaultListLimit = 100

// CatalogQuerier defines the catalog query operations needed by the handlers.
type CatalogQuerier interface {
	Ping(ctx context.Context) error
	ListGames(ctx context.Context, filter storage.Filter) ([]storage.GameRow, error)
	SourceStats(ctx context.Context) ([]storage.SourceStat, error)
}

// GamesHandler handles catalog query HTTP requests.
type GamesHandler struct {
	repo CatalogQuerier
}

// NewGamesHandler creates a new catalog handler.
func NewGamesHandler(repo CatalogQuerier) *GamesHandler {
	return &GamesHandler{repo: repo}
}

// ListGames handles GET /api/v1/games.
func (h *GamesHandler) ListGames(c *gin.Context) {
	filter := storage.Filter{
		Source:    c.Query("source"),
		Developer: c.Query("developer"),
		Limit:     defaultListLimit,
	}

	if raw := c.Query("min_rating"); raw != "" {
		minRating, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil || minRating < 0 || minRating > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_rating must be a number in [0,100]"})
			return
		}
		filter.MinRating = &minRating
	}
	if raw := c.Query("limit"); raw != "" {
		limit, parseErr := strconv.Atoi(raw)
		if parseErr != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		filter.Limit = limit
	}

	games, queryErr := h.repo.ListGames(c.Request.Context(), filter)
	if queryErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": queryErr.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games": games,
		"count": len(games),
	})
}

// SourceStats handles GET /api/v1/stats.
func (h *GamesHandler) SourceStats(c *gin.Context) {
	stats, queryErr := h.repo.SourceStats(c.Request.Context())
	if queryErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": queryErr.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sources": stats})
}

// Health handles GET /healthz.
func (h *GamesHandler) Health(c *gin.Context) {
	if pingErr := h.repo.Ping(c.Request.Context()); pingErr != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": pingErr.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
