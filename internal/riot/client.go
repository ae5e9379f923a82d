// Package riot provides a minimal client for the Riot Games League of Legends
// APIs (account-v1, match-v5, league-v4).
package riot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	userAgent        = "lolmetrics/1.0"
	maxAttempts      = 3
	defaultRetryWait = 120 * time.Second // used when a 429 carries no Retry-After
	leagueCacheTTL   = 24 * time.Hour
	challengerLimit  = 50

	// QueueRankedSolo is the ranked solo/duo queue id used for match lists.
	QueueRankedSolo = 420
	// LeagueRankedSolo is the ranked solo/duo queue name used by league-v4.
	LeagueRankedSolo = "RANKED_SOLO_5x5"
)

// ErrNoAPIKey is returned by every call when the client has no API key.
var ErrNoAPIKey = errors.New("riot: no API key configured (set riot-api-key or RIOT_API_KEY)")

// APIError is a non-200 response from the Riot API.
type APIError struct {
	Status int
	Path   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.Path, e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// RegionalRoute returns the regional routing value (americas, europe, asia)
// serving a platform id such as euw1 or na1.
func RegionalRoute(platform string) string {
	switch strings.ToLower(platform) {
	case "euw1", "eun1", "tr1", "ru":
		return "europe"
	case "na1", "br1", "la1", "la2", "lan", "las":
		return "americas"
	case "kr", "jp1":
		return "asia"
	default:
		return "americas"
	}
}

// Client is a minimal Riot API client.
type Client struct {
	apiKey      string
	platform    string
	platformURL string
	regionalURL string
	cacheDir    string
	http        *http.Client
	retryBase   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCacheDir enables the on-disk JSON cache under dir.
func WithCacheDir(dir string) Option {
	return func(c *Client) { c.cacheDir = dir }
}

// WithBaseURLs overrides the platform and regional hosts.
func WithBaseURLs(platformURL, regionalURL string) Option {
	return func(c *Client) {
		c.platformURL = strings.TrimRight(platformURL, "/")
		c.regionalURL = strings.TrimRight(regionalURL, "/")
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient returns a client for the given platform (e.g. "euw1").
func NewClient(apiKey, platform string, opts ...Option) *Client {
	platform = strings.ToLower(platform)
	c := &Client{
		apiKey:      apiKey,
		platform:    platform,
		platformURL: fmt.Sprintf("https://%s.api.riotgames.com", platform),
		regionalURL: fmt.Sprintf("https://%s.api.riotgames.com", RegionalRoute(platform)),
		http:        &http.Client{Timeout: 10 * time.Second},
		retryBase:   2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Platform returns the platform id the client targets.
func (c *Client) Platform() string { return c.platform }

// retryAfterBackOff serves a server-requested wait once, then falls back to
// the wrapped policy.
type retryAfterBackOff struct {
	backoff.BackOff
	wait time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	if b.wait > 0 {
		d := b.wait
		b.wait = 0
		return d
	}
	return b.BackOff.NextBackOff()
}

// get performs an authenticated GET against base+path and JSON-decodes the
// body into out. Rate limits and timeouts are retried up to three attempts.
func (c *Client) get(ctx context.Context, base, path string, out interface{}) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retryBase
	exp.MaxElapsedTime = 0
	policy := &retryAfterBackOff{BackOff: exp}
	bo := backoff.WithContext(backoff.WithMaxRetries(policy, maxAttempts-1), ctx)

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() && ctx.Err() == nil {
				return fmt.Errorf("GET %s: %w", path, err)
			}
			return backoff.Permanent(fmt.Errorf("GET %s: %w", path, err))
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("decode %s: %w", path, err))
			}
			return nil
		case http.StatusTooManyRequests:
			policy.wait = parseRetryAfter(resp.Header.Get("Retry-After"))
			return &APIError{Status: resp.StatusCode, Path: path}
		default:
			return backoff.Permanent(&APIError{Status: resp.StatusCode, Path: path})
		}
	}

	notify := func(err error, wait time.Duration) {
		log.Info().Err(err).Str("path", path).Dur("retry_after", wait).Msg("riot: retrying")
	}
	return backoff.RetryNotify(op, bo, notify)
}

// parseRetryAfter reads a Retry-After header in seconds. A missing header
// yields the default wait; "0" or garbage yields zero, deferring to backoff.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return defaultRetryWait
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

// ---- Endpoints ----

// AccountByRiotID resolves "gameName#tagLine" to an account.
func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	var a Account
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s", url.PathEscape(gameName), url.PathEscape(tagLine))
	if err := c.get(ctx, c.regionalURL, path, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// MatchIDs returns up to count recent match ids for puuid, newest first.
// A zero queue means any queue.
func (c *Client) MatchIDs(ctx context.Context, puuid string, count, queue int) ([]string, error) {
	q := url.Values{}
	q.Set("start", "0")
	q.Set("count", strconv.Itoa(count))
	if queue > 0 {
		q.Set("queue", strconv.Itoa(queue))
	}
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?%s", url.PathEscape(puuid), q.Encode())

	var ids []string
	if err := c.get(ctx, c.regionalURL, path, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Match fetches a finished match. Matches are immutable, so cached copies
// never expire.
func (c *Client) Match(ctx context.Context, matchID string) (*Match, error) {
	var m Match
	name := "match_" + matchID + ".json"
	if c.readCache(name, 0, &m) {
		return &m, nil
	}
	if err := c.get(ctx, c.regionalURL, "/lol/match/v5/matches/"+url.PathEscape(matchID), &m); err != nil {
		return nil, err
	}
	c.writeCache(name, &m)
	return &m, nil
}

// Timeline fetches the event timeline of a finished match.
func (c *Client) Timeline(ctx context.Context, matchID string) (*Timeline, error) {
	var t Timeline
	name := "timeline_" + matchID + ".json"
	if c.readCache(name, 0, &t) {
		return &t, nil
	}
	if err := c.get(ctx, c.regionalURL, "/lol/match/v5/matches/"+url.PathEscape(matchID)+"/timeline", &t); err != nil {
		return nil, err
	}
	c.writeCache(name, &t)
	return &t, nil
}

// ChallengerLeague returns the challenger league for queue (e.g. RANKED_SOLO_5x5).
func (c *Client) ChallengerLeague(ctx context.Context, queue string) (*LeagueList, error) {
	return c.league(ctx, "challenger", queue)
}

// MasterLeague returns the master league for queue.
func (c *Client) MasterLeague(ctx context.Context, queue string) (*LeagueList, error) {
	return c.league(ctx, "master", queue)
}

func (c *Client) league(ctx context.Context, tier, queue string) (*LeagueList, error) {
	var l LeagueList
	name := fmt.Sprintf("%s_%s.json", tier, queue)
	if c.readCache(name, leagueCacheTTL, &l) {
		return &l, nil
	}
	path := fmt.Sprintf("/lol/league/v4/%sleagues/by-queue/%s", tier, url.PathEscape(queue))
	if err := c.get(ctx, c.platformURL, path, &l); err != nil {
		return nil, err
	}
	c.writeCache(name, &l)
	return &l, nil
}

// HighEloPlayers returns up to limit ranked solo players: the top challenger
// entries first, topped up from master.
func (c *Client) HighEloPlayers(ctx context.Context, limit int) ([]LeagueEntry, error) {
	chall, err := c.ChallengerLeague(ctx, LeagueRankedSolo)
	if err != nil {
		return nil, fmt.Errorf("challenger league: %w", err)
	}
	players := chall.Entries
	if len(players) > challengerLimit {
		players = players[:challengerLimit]
	}
	if len(players) >= limit {
		return players[:limit], nil
	}

	master, err := c.MasterLeague(ctx, LeagueRankedSolo)
	if err != nil {
		return nil, fmt.Errorf("master league: %w", err)
	}
	need := limit - len(players)
	if need > len(master.Entries) {
		need = len(master.Entries)
	}
	return append(players, master.Entries[:need]...), nil
}

// ---- Disk cache ----

// readCache decodes dir/name into out. A positive maxAge rejects files older
// than that.
func (c *Client) readCache(name string, maxAge time.Duration, out interface{}) bool {
	if c.cacheDir == "" {
		return false
	}
	path := filepath.Join(c.cacheDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		return false
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("riot: ignoring corrupt cache entry")
		return false
	}
	log.Debug().Str("file", path).Msg("riot: cache hit")
	return true
}

func (c *Client) writeCache(name string, v interface{}) {
	if c.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", c.cacheDir).Msg("riot: cannot create cache dir")
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	path := filepath.Join(c.cacheDir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("riot: cache write failed")
	}
}
