package championstatsservice

import (
	"context"
	"testing"
	"time"

	"lolstats/api/cache"
	"lolstats/api/dto"
	"lolstats/api/repositories"
	"lolstats/api/services/testutil"
	"lolstats/pkg/champion"
	"lolstats/pkg/database/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

// Helper to initialize the service.
func setupTestService(t *testing.T) (*ChampionStatsService, *testutil.MockChampionStatsRepository) {
	t.Helper()

	memCache := cache.NewMemCache[[]dto.ChampionStats]()
	t.Cleanup(memCache.Close)

	repository := new(testutil.MockChampionStatsRepository)
	service := NewChampionStatsService(&ChampionStatsServiceDeps{
		Repository: repository,
		Champions:  champion.NewTable("14.1.1", []champion.Champion{{Key: "17", Id: "Teemo", Name: "Teemo", Title: "the Swift Scout"}}),
		Cache:      memCache,
		Logger:     zerolog.Nop(),
	})

	return service, repository
}

func teemoStats() models.ChampionStats {
	return models.ChampionStats{
		ChampionKey:          17,
		ChampionId:           "Teemo",
		TotalMatches:         3,
		TotalWinRate:         66.6,
		TotalAverageKills:    7,
		TotalAverageDeaths:   4,
		TotalAverageAssists:  6,
		RankedMatches:        2,
		RankedWinRate:        ptr(50.0),
		RankedAverageKills:   ptr(6.0),
		RankedAverageDeaths:  ptr(5.0),
		RankedAverageAssists: ptr(4.0),
		RankedMostPlayedRole: ptr("TOP"),
		NormalMatches:        1,
		NormalWinRate:        ptr(100.0),
		UpdatedAt:            time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestListNestsAndCaches(t *testing.T) {
	service, repository := setupTestService(t)

	repository.On("List", mock.Anything).
		Return([]models.ChampionStats{teemoStats(), {ChampionKey: 9999, ChampionId: "Newcomer", TotalMatches: 1}}, nil).Once()

	for i := 0; i < 2; i++ {
		stats, err := service.List(context.Background())
		require.NoError(t, err)
		require.Len(t, stats, 2)

		teemo := stats[0]
		assert.Equal(t, "Teemo", teemo.ChampionName)
		assert.Equal(t, "the Swift Scout", teemo.Title)
		assert.Equal(t, 3, teemo.Stats.Total.MatchesNumber)
		assert.Equal(t, 66.6, *teemo.Stats.Total.WinRate)
		assert.Equal(t, 50.0, *teemo.Stats.Ranked.WinRate)
		assert.Equal(t, "TOP", *teemo.Stats.Ranked.MostPlayedRole)
		assert.Nil(t, teemo.Stats.Normal.AverageKills)

		// Unknown keys keep the stored id.
		assert.Equal(t, "Newcomer", stats[1].ChampionId)
		assert.Equal(t, champion.Unknown, stats[1].ChampionName)
	}

	testutil.VerifyAllMocks(t, repository)
}

func TestGet(t *testing.T) {
	service, repository := setupTestService(t)

	teemo := teemoStats()
	repository.On("FindByKey", mock.Anything, 17).Return(&teemo, nil).Once()
	repository.On("FindByKey", mock.Anything, 1).Return((*models.ChampionStats)(nil), nil).Once()
	repository.On("FindByKey", mock.Anything, 2).Return((*models.ChampionStats)(nil), repositories.ErrStorageUnavailable).Once()

	stats, err := service.Get(context.Background(), 17)
	require.NoError(t, err)
	assert.Equal(t, 17, stats.ChampionKey)

	_, err = service.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrChampionNotFound)

	_, err = service.Get(context.Background(), 2)
	assert.ErrorIs(t, err, repositories.ErrStorageUnavailable)

	testutil.VerifyAllMocks(t, repository)
}

func TestRecalculate(t *testing.T) {
	service, repository := setupTestService(t)

	repository.On("Recalculate", mock.Anything).Return(int64(42), nil).Once()

	written, err := service.Recalculate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), written)
}
