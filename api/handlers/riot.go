package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lolstats/api/filters"
	"lolstats/pkg/riot"

	"github.com/gin-gonic/gin"
)

// RiotReader is the read-through proxy of the Riot API.
type RiotReader interface {
	GetAccountByRiotId(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	GetAccountByPuuid(ctx context.Context, puuid string) (*riot.Account, error)
	GetSummoner(ctx context.Context, puuid string) (*riot.Summoner, error)
	GetLeagueEntries(ctx context.Context, summonerId string) ([]riot.LeagueEntry, error)
	GetChampionMasteries(ctx context.Context, puuid string) ([]riot.ChampionMastery, error)
	GetMatchIds(ctx context.Context, puuid string, page int) ([]string, error)
	GetMatch(ctx context.Context, matchId string) (*riot.Match, error)
}

// RiotHandler proxies the Riot API endpoints.
type RiotHandler struct {
	riotService RiotReader
	maxAge      time.Duration
}

type RiotHandlerDependencies struct {
	RiotService RiotReader
	// Max age advertised on cacheable answers.
	MaxAge time.Duration
}

// NewRiotHandler creates a new instance of the riot handler.
func NewRiotHandler(deps *RiotHandlerDependencies) *RiotHandler {
	return &RiotHandler{
		riotService: deps.RiotService,
		maxAge:      deps.MaxAge,
	}
}

// GetAccount handles GET /account/:gameName/:tagLine.
func (h *RiotHandler) GetAccount(c *gin.Context) {
	var pp filters.RiotIdURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "gameName/tagLine")
		return
	}

	account, err := h.riotService.GetAccountByRiotId(c.Request.Context(), pp.GameName, pp.TagLine)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// GetAccountByPuuid handles GET /account/puuid/:puuid.
func (h *RiotHandler) GetAccountByPuuid(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "puuid")
		return
	}

	account, err := h.riotService.GetAccountByPuuid(c.Request.Context(), pp.Puuid)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// GetSummoner handles GET /summoner/:puuid.
func (h *RiotHandler) GetSummoner(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "puuid")
		return
	}

	summoner, err := h.riotService.GetSummoner(c.Request.Context(), pp.Puuid)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setCacheControl(c)
	c.JSON(http.StatusOK, summoner)
}

// GetLeague handles GET /league/:summonerId.
func (h *RiotHandler) GetLeague(c *gin.Context) {
	var pp filters.SummonerURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "summonerId")
		return
	}

	entries, err := h.riotService.GetLeagueEntries(c.Request.Context(), pp.SummonerId)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetChampionMastery handles GET /champion-mastery/:puuid.
func (h *RiotHandler) GetChampionMastery(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "puuid")
		return
	}

	masteries, err := h.riotService.GetChampionMasteries(c.Request.Context(), pp.Puuid)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, masteries)
}

// GetMatchIds handles GET /match/puuid/:id?page=N.
func (h *RiotHandler) GetMatchIds(c *gin.Context) {
	var pp filters.IdURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "id")
		return
	}

	var qp filters.MatchIdsQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		writeError(c, filters.ErrInvalidPage)
		return
	}

	page, err := qp.PageOrDefault()
	if err != nil {
		writeError(c, err)
		return
	}

	ids, err := h.riotService.GetMatchIds(c.Request.Context(), pp.Id, page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ids)
}

// GetMatch handles GET /match/matchid/:id.
func (h *RiotHandler) GetMatch(c *gin.Context) {
	var pp filters.IdURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "id")
		return
	}

	match, err := h.riotService.GetMatch(c.Request.Context(), pp.Id)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setCacheControl(c)
	c.JSON(http.StatusOK, match)
}

func (h *RiotHandler) setCacheControl(c *gin.Context) {
	if h.maxAge <= 0 {
		c.Header("Cache-Control", "no-store")
		return
	}
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.maxAge.Seconds())))
}
