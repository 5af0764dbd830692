package champion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const championJSON = `{
	"type": "champion",
	"version": "14.1.1",
	"data": {
		"Aatrox": {"id": "Aatrox", "key": "266", "name": "Aatrox", "title": "the Darkin Blade"},
		"Teemo": {"id": "Teemo", "key": "17", "name": "Teemo", "title": "the Swift Scout"}
	}
}`

type memorySnapshot struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemorySnapshot() *memorySnapshot {
	return &memorySnapshot{values: map[string]string{}}
}

func (m *memorySnapshot) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", errors.New("redis: nil")
	}
	return v, nil
}

func (m *memorySnapshot) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	return nil
}

func ddragonServer(t *testing.T, healthy *bool) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !*healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case "/api/versions.json":
			w.Write([]byte(`["14.1.1", "13.24.1"]`))
		case "/cdn/14.1.1/data/en_US/champion.json":
			w.Write([]byte(championJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestParse(t *testing.T) {
	table, err := Parse([]byte(championJSON))
	require.NoError(t, err)

	assert.Equal(t, "14.1.1", table.Version())
	assert.Equal(t, 2, table.Len())

	teemo, ok := table.LookupId(17)
	require.True(t, ok)
	assert.Equal(t, Champion{Key: "17", Id: "Teemo", Name: "Teemo", Title: "the Swift Scout"}, teemo)

	_, err = Parse([]byte(`{"data": {}}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestLookupOrUnknown(t *testing.T) {
	table := NewTable("1", []Champion{{Key: "266", Id: "Aatrox", Name: "Aatrox", Title: "the Darkin Blade"}})

	assert.Equal(t, "Aatrox", table.LookupOrUnknown("266").Id)
	assert.Equal(t, Champion{Key: "9999", Id: Unknown, Name: Unknown, Title: Unknown}, table.LookupOrUnknown("9999"))
}

func TestLoaderStoresAndFallsBackToSnapshot(t *testing.T) {
	healthy := true
	server := ddragonServer(t, &healthy)
	snapshot := newMemorySnapshot()

	loader := NewLoader(&LoaderDeps{
		BaseURL:  server.URL,
		Language: "en_US",
		Snapshot: snapshot,
		Logger:   zerolog.Nop(),
	})

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Contains(t, snapshot.values, "ddragon:champions:en_US")

	// Data Dragon goes down, the snapshot is used.
	healthy = false
	table, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "14.1.1", table.Version())

	_, err = loader.Refresh(context.Background())
	assert.Error(t, err)
}

func TestLoaderWithoutSnapshotFails(t *testing.T) {
	healthy := false
	server := ddragonServer(t, &healthy)

	loader := NewLoader(&LoaderDeps{BaseURL: server.URL + "/", Language: "en_US", Logger: zerolog.Nop()})

	table, err := loader.Load(context.Background())
	assert.Nil(t, table)
	assert.Error(t, err)
}
