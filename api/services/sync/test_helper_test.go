package syncservice

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"lolstats/internal/testutil"
	"lolstats/pkg/champion"
	"lolstats/pkg/database/models"
	"lolstats/pkg/riot"

	"github.com/rs/zerolog"
)

// fakeUpstream serves canned Riot API answers and counts the match detail calls.
type fakeUpstream struct {
	mu sync.Mutex

	account     *testutil.OperationResult[*riot.Account]
	matchIds    []string
	masteries   *testutil.OperationResult[[]riot.ChampionMastery]
	failMatches map[string]error

	summonerGate chan struct{}

	accountCalls  int
	summonerCalls int
	matchCalls    []string
}

func newFakeUpstream(matchIds ...string) *fakeUpstream {
	return &fakeUpstream{
		account:  testutil.NewSuccessResult(&riot.Account{Puuid: "puuid-karamelune", GameName: "Karamelune", TagLine: "TEEMO"}),
		matchIds: matchIds,
		masteries: testutil.NewSuccessResult([]riot.ChampionMastery{
			{ChampionId: 17, ChampionLevel: 7, ChampionPoints: 250000},
			{ChampionId: 9999, ChampionLevel: 1, ChampionPoints: 100},
		}),
		failMatches: map[string]error{},
	}
}

func (f *fakeUpstream) GetAccountByRiotId(ctx context.Context, gameName, tagLine string) (*riot.Account, error) {
	f.mu.Lock()
	f.accountCalls++
	f.mu.Unlock()

	return f.account.Data, f.account.Err
}

func (f *fakeUpstream) GetAccountByPuuid(ctx context.Context, puuid string) (*riot.Account, error) {
	return f.GetAccountByRiotId(ctx, "", "")
}

func (f *fakeUpstream) GetSummonerByPuuid(ctx context.Context, puuid string) (*riot.Summoner, error) {
	f.mu.Lock()
	f.summonerCalls++
	gate := f.summonerGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	return &riot.Summoner{Id: "summoner-1", AccountId: "account-1", Puuid: puuid, ProfileIconId: 29, SummonerLevel: 312}, nil
}

func (f *fakeUpstream) GetLeagueEntries(ctx context.Context, summonerId string) ([]riot.LeagueEntry, error) {
	return []riot.LeagueEntry{{SummonerId: summonerId, QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "II"}}, nil
}

func (f *fakeUpstream) GetChampionMasteries(ctx context.Context, puuid string) ([]riot.ChampionMastery, error) {
	return f.masteries.Data, f.masteries.Err
}

func (f *fakeUpstream) GetMatchIds(ctx context.Context, puuid string, page int) ([]string, error) {
	return append([]string{}, f.matchIds...), nil
}

func (f *fakeUpstream) GetMatch(ctx context.Context, matchId string) (*riot.Match, error) {
	f.mu.Lock()
	f.matchCalls = append(f.matchCalls, matchId)
	err := f.failMatches[matchId]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return newRiotMatch(matchId), nil
}

func (f *fakeUpstream) fetchedMatches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := f.matchCalls
	f.matchCalls = nil
	return calls
}

func newRiotMatch(matchId string) *riot.Match {
	return &riot.Match{
		Metadata: riot.MatchMetadata{MatchId: matchId, Participants: []string{"puuid-karamelune"}},
		Info: riot.MatchInfo{
			GameDuration: 1800,
			Participants: []riot.Participant{{Puuid: "puuid-karamelune", ChampionId: 17}},
		},
	}
}

// memoryUsers is an in-memory user repository.
type memoryUsers struct {
	mu      sync.Mutex
	users   map[string]models.User
	upserts int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]models.User{}}
}

func (m *memoryUsers) FindByRiotId(ctx context.Context, gameName, tagLine string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.GameName == gameName && u.TagLine == tagLine {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) FindByPuuid(ctx context.Context, puuid string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[puuid]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *memoryUsers) Upsert(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.users[user.Puuid] = *user
	return nil
}

// memoryMatches is an in-memory match repository.
type memoryMatches struct {
	mu      sync.Mutex
	matches map[string]models.Match
	find    *testutil.OperationResult[*models.Match]
}

func newMemoryMatches() *memoryMatches {
	return &memoryMatches{matches: map[string]models.Match{}}
}

func (m *memoryMatches) FindByMatchId(ctx context.Context, matchId string) (*models.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find != nil {
		return m.find.Data, m.find.Err
	}
	if match, ok := m.matches[matchId]; ok {
		return &match, nil
	}
	return nil, nil
}

func (m *memoryMatches) FindByParticipant(ctx context.Context, puuid string) ([]models.Match, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *memoryMatches) List(ctx context.Context, limit int) ([]models.Match, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *memoryMatches) Upsert(ctx context.Context, match *models.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.MatchId] = *match
	return nil
}

func (m *memoryMatches) UpsertMany(ctx context.Context, matches []*models.Match) (int, error) {
	for _, match := range matches {
		m.Upsert(ctx, match)
	}
	return len(matches), nil
}

func (m *memoryMatches) ParticipantPuuids(ctx context.Context, limit int) ([]string, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *memoryMatches) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matches)
}

var testChampions = champion.NewTable("14.1.1", []champion.Champion{
	{Key: "17", Id: "Teemo", Name: "Teemo", Title: "the Swift Scout"},
})

// Helper to initialize the service with in-memory storage.
func setupTestService(upstream *fakeUpstream) (*SyncService, *memoryUsers, *memoryMatches) {
	users := newMemoryUsers()
	matches := newMemoryMatches()

	service := NewSyncService(&SyncServiceDeps{
		Client:    upstream,
		Users:     users,
		Matches:   matches,
		Champions: testChampions,
		Logger:    zerolog.Nop(),
	})

	return service, users, matches
}

var errUpstream = &riot.Error{Status: http.StatusInternalServerError, URL: "match"}
