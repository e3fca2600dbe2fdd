// Package apifootball provides a rate-limited client for the API-Football v3 REST API.
package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/samellow/matchsense/internal/config"
	"github.com/samellow/matchsense/internal/metrics"
)

// envelope is the standard API-Football response wrapper
type envelope struct {
	Results  int             `json:"results"`
	Errors   json.RawMessage `json:"errors"`
	Response json.RawMessage `json:"response"`
}

// Client calls the API-Football v3 REST API with retries, backoff and
// client-side rate limiting.
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewClient creates a new API-Football client from provider configuration
func NewClient(cfg *config.ProviderConfig, logger *logrus.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.CheckRetry = retryPolicy()
	retryClient.Logger = nil

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), 1),
		logger:  logger,
	}
}

// get executes a GET request against endpoint and decodes the response
// array into out, which must be a pointer to a slice of payload structs.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &APIError{Endpoint: endpoint, Message: "rate limiter wait aborted", Err: err}
	}

	metrics.ProviderRequestsTotal.WithLabelValues(endpoint).Inc()

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &APIError{Endpoint: endpoint, Message: "failed to build request", Err: err}
	}
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues(endpoint).Inc()
		return &APIError{Endpoint: endpoint, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderErrorsTotal.WithLabelValues(endpoint).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues(endpoint).Inc()
		return &APIError{Endpoint: endpoint, Message: "failed to decode response", Err: err}
	}

	if len(env.Response) == 0 {
		// No response array at all; treat as empty result
		return nil
	}

	if err := json.Unmarshal(env.Response, out); err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues(endpoint).Inc()
		return &APIError{Endpoint: endpoint, Message: "failed to decode response payload", Err: err}
	}

	return nil
}

// FixturesByDate retrieves one league's fixtures for a calendar date
func (c *Client) FixturesByDate(ctx context.Context, date time.Time, leagueID, season int) ([]FixturePayload, error) {
	params := url.Values{}
	params.Set("date", date.Format("2006-01-02"))
	params.Set("league", fmt.Sprintf("%d", leagueID))
	params.Set("season", fmt.Sprintf("%d", season))

	var fixtures []FixturePayload
	if err := c.get(ctx, "/fixtures", params, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// TeamRecentMatches retrieves a team's last N fixtures, most recent first
func (c *Client) TeamRecentMatches(ctx context.Context, teamID, last int) ([]FixturePayload, error) {
	params := url.Values{}
	params.Set("team", fmt.Sprintf("%d", teamID))
	params.Set("last", fmt.Sprintf("%d", last))

	var fixtures []FixturePayload
	if err := c.get(ctx, "/fixtures", params, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// LeagueStandings retrieves a league's current standings, or nil when the
// provider has none for the season
func (c *Client) LeagueStandings(ctx context.Context, leagueID, season int) (*StandingsPayload, error) {
	params := url.Values{}
	params.Set("league", fmt.Sprintf("%d", leagueID))
	params.Set("season", fmt.Sprintf("%d", season))

	var standings []StandingsPayload
	if err := c.get(ctx, "/standings", params, &standings); err != nil {
		return nil, err
	}
	if len(standings) == 0 {
		return nil, nil
	}
	return &standings[0], nil
}

// HeadToHead retrieves the last N meetings between two teams
func (c *Client) HeadToHead(ctx context.Context, teamA, teamB, last int) ([]FixturePayload, error) {
	params := url.Values{}
	params.Set("h2h", fmt.Sprintf("%d-%d", teamA, teamB))
	params.Set("last", fmt.Sprintf("%d", last))

	var fixtures []FixturePayload
	if err := c.get(ctx, "/fixtures/headtohead", params, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// FixtureOdds retrieves one fixture's bookmaker odds, or nil when no
// bookmaker quotes it
func (c *Client) FixtureOdds(ctx context.Context, fixtureID int) (*OddsPayload, error) {
	params := url.Values{}
	params.Set("fixture", fmt.Sprintf("%d", fixtureID))

	var odds []OddsPayload
	if err := c.get(ctx, "/odds", params, &odds); err != nil {
		return nil, err
	}
	if len(odds) == 0 {
		return nil, nil
	}
	return &odds[0], nil
}

// retryPolicy retries transport errors, rate limiting and server errors
func retryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, err
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}
