package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"lolstats/api/dto"
	syncservice "lolstats/api/services/sync"
	"lolstats/pkg/database/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// route is a single route registered on a test engine.
type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

func newTestEngine(routes ...route) *gin.Engine {
	engine := gin.New()
	for _, r := range routes {
		engine.Handle(r.method, r.path, r.handler)
	}
	return engine
}

func perform(engine *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, _ := json.Marshal(v)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorBody {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

type mockSyncer struct {
	mock.Mock
}

func (m *mockSyncer) Sync(ctx context.Context, identity syncservice.Identity) (*models.User, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(*models.User), args.Error(1)
}
