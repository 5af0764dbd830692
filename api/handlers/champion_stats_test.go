package handlers

import (
	"net/http"
	"testing"

	championstatsservice "lolstats/api/services/championstats"
	"lolstats/api/services/testutil"
	"lolstats/pkg/champion"
	"lolstats/pkg/database/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestChampionStatsHandler(t *testing.T) {
	repository := new(testutil.MockChampionStatsRepository)
	service := championstatsservice.NewChampionStatsService(&championstatsservice.ChampionStatsServiceDeps{
		Repository: repository,
		Champions:  champion.NewTable("14.1.1", []champion.Champion{{Key: "17", Id: "Teemo", Name: "Teemo", Title: "the Swift Scout"}}),
		Logger:     zerolog.Nop(),
	})
	h := NewChampionStatsHandler(&ChampionStatsHandlerDependencies{StatsService: service})

	engine := newTestEngine(
		route{http.MethodGet, "/champion-stats", h.GetAllChampionStats},
		route{http.MethodGet, "/champion-stats/:key", h.GetChampionStats},
	)

	teemo := models.ChampionStats{ChampionKey: 17, ChampionId: "Teemo", TotalMatches: 4, TotalWinRate: 75}
	repository.On("List", mock.Anything).Return([]models.ChampionStats{teemo}, nil).Once()
	repository.On("FindByKey", mock.Anything, 17).Return(&teemo, nil).Once()
	repository.On("FindByKey", mock.Anything, 1).Return((*models.ChampionStats)(nil), nil).Once()

	w := perform(engine, http.MethodGet, "/champion-stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"championName":"Teemo"`)

	w = perform(engine, http.MethodGet, "/champion-stats/17", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"winRate":75`)

	w = perform(engine, http.MethodGet, "/champion-stats/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(engine, http.MethodGet, "/champion-stats/teemo", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	testutil.VerifyAllMocks(t, repository)
}
