package handlers

import (
	"context"
	"net/http"

	"lolstats/api/dto"
	"lolstats/api/filters"

	"github.com/gin-gonic/gin"
)

// ChampionStatsReader reads the champion aggregate.
type ChampionStatsReader interface {
	List(ctx context.Context) ([]dto.ChampionStats, error)
	Get(ctx context.Context, championKey int) (*dto.ChampionStats, error)
}

// ChampionStatsHandler is the handler for the champion stats.
type ChampionStatsHandler struct {
	statsService ChampionStatsReader
}

type ChampionStatsHandlerDependencies struct {
	StatsService ChampionStatsReader
}

// NewChampionStatsHandler creates a new instance of the champion stats handler.
func NewChampionStatsHandler(deps *ChampionStatsHandlerDependencies) *ChampionStatsHandler {
	return &ChampionStatsHandler{
		statsService: deps.StatsService,
	}
}

// GetAllChampionStats handles GET /champion-stats.
func (h *ChampionStatsHandler) GetAllChampionStats(c *gin.Context) {
	stats, err := h.statsService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetChampionStats handles GET /champion-stats/:key.
func (h *ChampionStatsHandler) GetChampionStats(c *gin.Context) {
	var pp filters.ChampionKeyURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "key")
		return
	}

	stats, err := h.statsService.Get(c.Request.Context(), pp.Key)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
