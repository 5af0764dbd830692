package handlers

import (
	"context"
	"net/http"

	"lolstats/api/converters"
	"lolstats/api/dto"
	"lolstats/api/filters"
	"lolstats/api/repositories"
	badgeservice "lolstats/api/services/badges"
	"lolstats/pkg/database/models"
	"lolstats/pkg/logger"
	"lolstats/pkg/messages"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MatchStore reads and writes stored matches.
type MatchStore interface {
	FindByMatchId(ctx context.Context, matchId string) (*models.Match, error)
	FindByParticipant(ctx context.Context, puuid string) ([]models.Match, error)
	List(ctx context.Context, limit int) ([]models.Match, error)
	UpsertMany(ctx context.Context, matches []*models.Match) (int, error)
}

// BadgeReader computes the badges of a player in a stored match.
type BadgeReader interface {
	GetBadges(ctx context.Context, matchId, puuid string) (*badgeservice.Badges, error)
}

// MatchHandler is the handler for the stored matches.
type MatchHandler struct {
	matches MatchStore
	badges  BadgeReader
}

type MatchHandlerDependencies struct {
	Matches MatchStore
	Badges  BadgeReader
}

// NewMatchHandler creates a new instance of the match handler.
func NewMatchHandler(deps *MatchHandlerDependencies) *MatchHandler {
	return &MatchHandler{
		matches: deps.Matches,
		badges:  deps.Badges,
	}
}

// GetMatches handles GET /match/get, the most recently stored matches.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	matches, err := h.matches.List(c.Request.Context(), repositories.MaxListedMatches)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatchById handles GET /match/get/matchId/:id.
func (h *MatchHandler) GetMatchById(c *gin.Context) {
	var pp filters.IdURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "id")
		return
	}

	match, err := h.matches.FindByMatchId(c.Request.Context(), pp.Id)
	if err != nil {
		writeError(c, err)
		return
	}
	if match == nil {
		abort(c, http.StatusNotFound, messages.CodeNotFound, messages.NotFound)
		return
	}

	c.JSON(http.StatusOK, match)
}

// GetMatchesByPuuid handles GET /match/get/puuid/:puuid.
func (h *MatchHandler) GetMatchesByPuuid(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "puuid")
		return
	}

	matches, err := h.matches.FindByParticipant(c.Request.Context(), pp.Puuid)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// UpdateMatches handles POST /match/update with one match or a list of matches.
func (h *MatchHandler) UpdateMatches(c *gin.Context) {
	var body dto.MatchUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, messages.MissingBody)
		return
	}

	records, err := converters.MatchDetailsToRecords(body.MatchDetails)
	if err != nil {
		logger.Ctx(c.Request.Context(), zerolog.Nop()).Debug().Err(err).Msg("rejected match body")
		writeError(c, err)
		return
	}

	written, err := h.matches.UpsertMany(c.Request.Context(), records)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MatchUpdateResponse{Updated: written})
}

// GetBadges handles GET /match/badges/:matchId/:puuid.
func (h *MatchHandler) GetBadges(c *gin.Context) {
	var pp filters.BadgeURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "matchId/puuid")
		return
	}

	badges, err := h.badges.GetBadges(c.Request.Context(), pp.MatchId, pp.Puuid)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, badges)
}
