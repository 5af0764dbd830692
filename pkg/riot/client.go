package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lolstats/pkg/config"
	"lolstats/pkg/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	hostFormat = "https://%s.api.riotgames.com"

	// Match list page size.
	MatchPageSize = 10

	// Consecutive transport or 5xx failures before the breaker opens.
	breakerThreshold = 5
)

// Client is the Riot API client.
// It never retries: a failed call is returned to the caller as an *Error.
type Client struct {
	apiKey      string
	regionalURL string
	platformURL string
	httpClient  *http.Client
	limiter     *RateLimiter
	breaker     *gobreaker.CircuitBreaker[[]byte]
}

// ClientOptions configures a Client.
type ClientOptions struct {
	ApiKey      string
	RegionalURL string
	PlatformURL string
	HTTPClient  *http.Client
	Limiter     *RateLimiter
}

// NewClient creates a client from explicit options.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	settings := gobreaker.Settings{
		Name:    "riot-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerThreshold
		},
		// Client errors are answers, not outages. Neither are calls the caller gave up on.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return true
			}
			status := StatusCode(err)
			return status >= 400 && status < 500
		},
	}

	return &Client{
		apiKey:      opts.ApiKey,
		regionalURL: opts.RegionalURL,
		platformURL: opts.PlatformURL,
		httpClient:  httpClient,
		limiter:     opts.Limiter,
		breaker:     gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// NewClientFromConfig creates the client for the configured hosts.
func NewClientFromConfig(cfg config.RiotConfiguration) *Client {
	return NewClient(ClientOptions{
		ApiKey:      cfg.ApiKey,
		RegionalURL: fmt.Sprintf(hostFormat, cfg.RegionalHost),
		PlatformURL: fmt.Sprintf(hostFormat, cfg.PlatformHost),
		Limiter:     NewRateLimiter(cfg.Limits),
	})
}

// get runs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, fullURL string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, IsBackground(ctx)); err != nil {
			return &Error{URL: fullURL, Err: err}
		}
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, fullURL)
	})
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		var riotErr *Error
		if !errors.As(err, &riotErr) {
			// Breaker rejections.
			riotErr = &Error{URL: fullURL, Err: fmt.Errorf("%w: %w", ErrCircuitOpen, err)}
		}
		metrics.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(riotErr.Status)).Inc()
		return riotErr
	}
	metrics.UpstreamRequests.WithLabelValues(endpoint, "200").Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Status: http.StatusOK, URL: fullURL, Err: fmt.Errorf("failed to parse API response: %w", err)}
	}

	return nil
}

// do sends the request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &Error{URL: fullURL, Err: err}
	}

	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, newStatusError(resp, fullURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: fullURL, Err: err}
	}

	return body, nil
}

// GetAccountByRiotId resolves an account by its game name and tag line.
func (c *Client) GetAccountByRiotId(ctx context.Context, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalURL, url.PathEscape(gameName), url.PathEscape(tagLine))

	var account Account
	if err := c.get(ctx, "account-by-riot-id", u, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByPuuid resolves an account by its puuid.
func (c *Client) GetAccountByPuuid(ctx context.Context, puuid string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s", c.regionalURL, url.PathEscape(puuid))

	var account Account
	if err := c.get(ctx, "account-by-puuid", u, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetSummonerByPuuid returns the summoner of the platform.
func (c *Client) GetSummonerByPuuid(ctx context.Context, puuid string) (*Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformURL, url.PathEscape(puuid))

	var summoner Summoner
	if err := c.get(ctx, "summoner-by-puuid", u, &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// GetLeagueEntries returns the ranked standings of a summoner.
func (c *Client) GetLeagueEntries(ctx context.Context, summonerId string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-summoner/%s", c.platformURL, url.PathEscape(summonerId))

	entries := []LeagueEntry{}
	if err := c.get(ctx, "league-by-summoner", u, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetChampionMasteries returns every champion mastery of a player.
func (c *Client) GetChampionMasteries(ctx context.Context, puuid string) ([]ChampionMastery, error) {
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s", c.platformURL, url.PathEscape(puuid))

	masteries := []ChampionMastery{}
	if err := c.get(ctx, "mastery-by-puuid", u, &masteries); err != nil {
		return nil, err
	}
	return masteries, nil
}

// GetMatchIds returns one page of match ids, most recent first.
// Pages start at 1.
func (c *Client) GetMatchIds(ctx context.Context, puuid string, page int) ([]string, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("start", strconv.Itoa((page-1)*MatchPageSize))
	query.Set("count", strconv.Itoa(MatchPageSize))

	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?%s", c.regionalURL, url.PathEscape(puuid), query.Encode())

	ids := []string{}
	if err := c.get(ctx, "match-ids-by-puuid", u, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetMatch returns the full detail of a match.
func (c *Client) GetMatch(ctx context.Context, matchId string) (*Match, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalURL, url.PathEscape(matchId))

	var match Match
	if err := c.get(ctx, "match-by-id", u, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
