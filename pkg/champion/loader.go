package champion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const snapshotPrefix = "ddragon:champions:"

// SnapshotStore keeps the last good champion.json, usually redis.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Loader fetches the champion table from Data Dragon.
type Loader struct {
	baseURL    string
	language   string
	httpClient *http.Client
	snapshot   SnapshotStore
	logger     zerolog.Logger
}

// LoaderDeps are the dependencies of the loader. Snapshot is optional.
type LoaderDeps struct {
	BaseURL    string
	Language   string
	HTTPClient *http.Client
	Snapshot   SnapshotStore
	Logger     zerolog.Logger
}

// NewLoader creates a loader.
func NewLoader(deps *LoaderDeps) *Loader {
	httpClient := deps.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	baseURL := deps.BaseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Loader{
		baseURL:    baseURL,
		language:   deps.Language,
		httpClient: httpClient,
		snapshot:   deps.Snapshot,
		logger:     deps.Logger,
	}
}

func (l *Loader) snapshotKey() string {
	return snapshotPrefix + l.language
}

// Load fetches the latest table, falling back to the stored snapshot.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	table, raw, err := l.fetch(ctx)
	if err == nil {
		if l.snapshot != nil {
			if setErr := l.snapshot.Set(ctx, l.snapshotKey(), string(raw), 0); setErr != nil {
				l.logger.Warn().Err(setErr).Msg("couldn't store the champion snapshot")
			}
		}
		return table, nil
	}

	if l.snapshot == nil {
		return nil, err
	}

	l.logger.Warn().Err(err).Msg("data dragon unavailable, using the champion snapshot")

	stored, snapErr := l.snapshot.Get(ctx, l.snapshotKey())
	if snapErr != nil {
		return nil, fmt.Errorf("%w (snapshot: %v)", err, snapErr)
	}

	return Parse([]byte(stored))
}

// Refresh fetches the table and overwrites the snapshot.
func (l *Loader) Refresh(ctx context.Context) (*Table, error) {
	table, raw, err := l.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if l.snapshot != nil {
		if err := l.snapshot.Set(ctx, l.snapshotKey(), string(raw), 0); err != nil {
			return nil, fmt.Errorf("couldn't store the champion snapshot: %w", err)
		}
	}

	return table, nil
}

// fetch gets the latest version and its champion.json.
func (l *Loader) fetch(ctx context.Context) (*Table, []byte, error) {
	versionsRaw, err := l.request(ctx, l.baseURL+"api/versions.json")
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't get the current version: %w", err)
	}

	var versions []string
	if err := json.Unmarshal(versionsRaw, &versions); err != nil || len(versions) == 0 {
		return nil, nil, fmt.Errorf("couldn't parse the version list")
	}

	url := fmt.Sprintf("%scdn/%s/data/%s/champion.json", l.baseURL, versions[0], l.language)
	raw, err := l.request(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't get the champions: %w", err)
	}

	table, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	return table, raw, nil
}

func (l *Loader) request(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code %d on URL %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
