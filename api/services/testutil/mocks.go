package testutil

import (
	"context"
	"testing"
	"time"

	"lolstats/pkg/database/models"
	"lolstats/pkg/events"
	"lolstats/pkg/riot"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// Type names of the contexts passed to the mocks.
const (
	DefaultTimerCtx  = "*context.timerCtx"
	DefaultCancelCtx = "*context.cancelCtx"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Riot API client mock.
// ============================================================================

type MockRiotClient struct {
	mock.Mock
}

func (m *MockRiotClient) GetAccountByRiotId(ctx context.Context, gameName, tagLine string) (*riot.Account, error) {
	args := m.Called(ctx, gameName, tagLine)
	return args.Get(0).(*riot.Account), args.Error(1)
}

func (m *MockRiotClient) GetAccountByPuuid(ctx context.Context, puuid string) (*riot.Account, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).(*riot.Account), args.Error(1)
}

func (m *MockRiotClient) GetSummonerByPuuid(ctx context.Context, puuid string) (*riot.Summoner, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).(*riot.Summoner), args.Error(1)
}

func (m *MockRiotClient) GetLeagueEntries(ctx context.Context, summonerId string) ([]riot.LeagueEntry, error) {
	args := m.Called(ctx, summonerId)
	return args.Get(0).([]riot.LeagueEntry), args.Error(1)
}

func (m *MockRiotClient) GetChampionMasteries(ctx context.Context, puuid string) ([]riot.ChampionMastery, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).([]riot.ChampionMastery), args.Error(1)
}

func (m *MockRiotClient) GetMatchIds(ctx context.Context, puuid string, page int) ([]string, error) {
	args := m.Called(ctx, puuid, page)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRiotClient) GetMatch(ctx context.Context, matchId string) (*riot.Match, error) {
	args := m.Called(ctx, matchId)
	return args.Get(0).(*riot.Match), args.Error(1)
}

// ============================================================================
// Repository mocks.
// ============================================================================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByRiotId(ctx context.Context, gameName, tagLine string) (*models.User, error) {
	args := m.Called(ctx, gameName, tagLine)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByPuuid(ctx context.Context, puuid string) (*models.User, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) FindByMatchId(ctx context.Context, matchId string) (*models.Match, error) {
	args := m.Called(ctx, matchId)
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) FindByParticipant(ctx context.Context, puuid string) ([]models.Match, error) {
	args := m.Called(ctx, puuid)
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockMatchRepository) List(ctx context.Context, limit int) ([]models.Match, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockMatchRepository) Upsert(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) UpsertMany(ctx context.Context, matches []*models.Match) (int, error) {
	args := m.Called(ctx, matches)
	return args.Int(0), args.Error(1)
}

func (m *MockMatchRepository) ParticipantPuuids(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]string), args.Error(1)
}

type MockChampionStatsRepository struct {
	mock.Mock
}

func (m *MockChampionStatsRepository) List(ctx context.Context) ([]models.ChampionStats, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ChampionStats), args.Error(1)
}

func (m *MockChampionStatsRepository) FindByKey(ctx context.Context, championKey int) (*models.ChampionStats, error) {
	args := m.Called(ctx, championKey)
	return args.Get(0).(*models.ChampionStats), args.Error(1)
}

func (m *MockChampionStatsRepository) Recalculate(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// ============================================================================
// Infrastructure mocks.
// ============================================================================

type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.BoolCmd)
}

func (m *MockRedisClient) TTL(ctx context.Context, key string) *redis.DurationCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.DurationCmd)
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishSyncCompleted(event events.SyncCompleted) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishSyncRequest(request events.SyncRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockEventPublisher) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}
