package handlers

import (
	"net/http"
	"testing"
	"time"

	"lolstats/api/repositories"
	syncservice "lolstats/api/services/sync"
	"lolstats/api/services/testutil"
	"lolstats/pkg/database/models"
	"lolstats/pkg/messages"
	"lolstats/pkg/riot"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupUserHandler() (*gin.Engine, *testutil.MockUserRepository, *mockSyncer) {
	users := new(testutil.MockUserRepository)
	syncer := new(mockSyncer)
	h := NewUserHandler(&UserHandlerDependencies{Users: users, Syncer: syncer})

	engine := newTestEngine(
		route{http.MethodGet, "/user/get/puuid/:puuid", h.GetUserByPuuid},
		route{http.MethodGet, "/user/get/:gameName/:tagLine", h.GetUser},
		route{http.MethodPost, "/user/update", h.UpdateUser},
		route{http.MethodPost, "/user/sync/puuid/:puuid", h.SyncByPuuid},
		route{http.MethodPost, "/user/sync/:gameName/:tagLine", h.SyncByRiotId},
	)
	return engine, users, syncer
}

func TestGetUser(t *testing.T) {
	engine, users, _ := setupUserHandler()

	user := &models.User{Puuid: "puuid-1", GameName: "Karamelune", TagLine: "TEEMO", Matches: []string{"EUW1_1"}}
	users.On("FindByRiotId", mock.Anything, "karamelune", "teemo").Return(user, nil).Once()
	users.On("FindByRiotId", mock.Anything, "Nobody", "EUW").Return((*models.User)(nil), nil).Once()
	users.On("FindByRiotId", mock.Anything, "Broken", "EUW").
		Return((*models.User)(nil), repositories.ErrStorageUnavailable).Once()

	w := perform(engine, http.MethodGet, "/user/get/karamelune/teemo", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"matches":["EUW1_1"]`)

	w = perform(engine, http.MethodGet, "/user/get/Nobody/EUW", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, messages.CodeNotFound, decodeError(t, w).Code)

	w = perform(engine, http.MethodGet, "/user/get/Broken/EUW", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, messages.CodeStorage, decodeError(t, w).Code)

	testutil.VerifyAllMocks(t, users)
}

func TestGetUserByPuuid(t *testing.T) {
	engine, users, _ := setupUserHandler()

	user := &models.User{Puuid: "puuid-1", GameName: "Karamelune", TagLine: "TEEMO"}
	users.On("FindByPuuid", mock.Anything, "puuid-1").Return(user, nil).Once()
	users.On("FindByPuuid", mock.Anything, "puuid-missing").Return((*models.User)(nil), nil).Once()

	w := perform(engine, http.MethodGet, "/user/get/puuid/puuid-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"puuid":"puuid-1"`)

	w = perform(engine, http.MethodGet, "/user/get/puuid/puuid-missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	testutil.VerifyAllMocks(t, users)
}

func TestUpdateUser(t *testing.T) {
	engine, users, _ := setupUserHandler()

	users.On("Upsert", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Puuid == "puuid-1" && len(u.Leagues) == 1
	})).Return(nil).Once()

	body := map[string]any{
		"updatedSummoner": models.User{
			Puuid:    "puuid-1",
			GameName: "Karamelune",
			TagLine:  "TEEMO",
			Leagues:  []riot.LeagueEntry{{QueueType: "RANKED_SOLO_5x5"}},
		},
	}

	w := perform(engine, http.MethodPost, "/user/update", body)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, invalid := range []string{`{}`, `{"updatedSummoner": {"gameName": "x"}}`, `not json`} {
		w = perform(engine, http.MethodPost, "/user/update", invalid)
		assert.Equal(t, http.StatusBadRequest, w.Code, invalid)
	}

	testutil.VerifyAllMocks(t, users)
}

func TestSyncUser(t *testing.T) {
	engine, _, syncer := setupUserHandler()

	user := &models.User{Puuid: "puuid-1", GameName: "Karamelune", TagLine: "TEEMO"}
	syncer.On("Sync", mock.Anything, syncservice.ByRiotId("Karamelune", "TEEMO")).Return(user, nil).Once()
	syncer.On("Sync", mock.Anything, syncservice.ByPuuid("puuid-1")).Return(user, nil).Once()
	syncer.On("Sync", mock.Anything, syncservice.ByPuuid("busy")).
		Return((*models.User)(nil), &syncservice.InProgressError{RetryAfter: 12 * time.Second}).Once()
	syncer.On("Sync", mock.Anything, syncservice.ByRiotId("Ghost", "NA1")).
		Return((*models.User)(nil), &riot.Error{Status: http.StatusNotFound}).Once()
	syncer.On("Sync", mock.Anything, syncservice.ByPuuid("flaky")).
		Return((*models.User)(nil), &riot.Error{Status: http.StatusInternalServerError}).Once()

	w := perform(engine, http.MethodPost, "/user/sync/Karamelune/TEEMO", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"puuid":"puuid-1"`)

	w = perform(engine, http.MethodPost, "/user/sync/puuid/puuid-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(engine, http.MethodPost, "/user/sync/puuid/busy", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "12", w.Header().Get("Retry-After"))

	w = perform(engine, http.MethodPost, "/user/sync/Ghost/NA1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(engine, http.MethodPost, "/user/sync/puuid/flaky", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	testutil.VerifyAllMocks(t, syncer)
}
