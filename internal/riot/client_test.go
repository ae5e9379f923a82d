package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithBaseURLs(srv.URL, srv.URL)}, opts...)
	c := NewClient("test-key", "euw1", opts...)
	c.retryBase = time.Millisecond
	return c
}

func TestRegionalRoute(t *testing.T) {
	tests := map[string]string{
		"euw1": "europe",
		"EUN1": "europe",
		"tr1":  "europe",
		"ru":   "europe",
		"na1":  "americas",
		"br1":  "americas",
		"la2":  "americas",
		"kr":   "asia",
		"jp1":  "asia",
		"oc1":  "americas",
	}
	for platform, want := range tests {
		assert.Equal(t, want, RegionalRoute(platform), platform)
	}
}

func TestAccountByRiotID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Riot-Token"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "/riot/account/v1/accounts/by-riot-id/Faker Fan/EUW", r.URL.Path)
		w.Write([]byte(`{"puuid":"p-1","gameName":"Faker Fan","tagLine":"EUW"}`))
	})

	acc, err := c.AccountByRiotID(context.Background(), "Faker Fan", "EUW")
	require.NoError(t, err)
	assert.Equal(t, "p-1", acc.PUUID)
	assert.Equal(t, "Faker Fan#EUW", acc.RiotID())
}

func TestMatchIDs_Query(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lol/match/v5/matches/by-puuid/p-1/ids", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		assert.Equal(t, "420", r.URL.Query().Get("queue"))
		w.Write([]byte(`["EUW1_1","EUW1_2"]`))
	})

	ids, err := c.MatchIDs(context.Background(), "p-1", 5, QueueRankedSolo)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUW1_1", "EUW1_2"}, ids)
}

func TestGet_NoAPIKey(t *testing.T) {
	c := NewClient("", "euw1")
	_, err := c.Match(context.Background(), "EUW1_1")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGet_RetriesRateLimit(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"metadata":{"matchId":"EUW1_9"},"info":{"gameDuration":1800}}`))
	})

	m, err := c.Match(context.Background(), "EUW1_9")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 1800, m.Info.GameDuration)
}

func TestGet_RateLimitExhausted(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Match(context.Background(), "EUW1_9")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, int32(maxAttempts), atomic.LoadInt32(&calls))
}

func TestGet_OtherStatusIsPermanent(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Timeline(context.Background(), "EUW1_404")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMatch_DiskCache(t *testing.T) {
	var calls int32
	dir := t.TempDir()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"metadata":{"matchId":"EUW1_7"},"info":{"gameDuration":1500}}`))
	}, WithCacheDir(dir))

	for i := 0; i < 2; i++ {
		m, err := c.Match(context.Background(), "EUW1_7")
		require.NoError(t, err)
		assert.Equal(t, "EUW1_7", m.Metadata.MatchID)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.FileExists(t, dir+"/match_EUW1_7.json")
}

func TestHighEloPlayers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lol/league/v4/challengerleagues/by-queue/RANKED_SOLO_5x5":
			w.Write([]byte(`{"tier":"CHALLENGER","entries":[{"puuid":"c1"},{"puuid":"c2"}]}`))
		case "/lol/league/v4/masterleagues/by-queue/RANKED_SOLO_5x5":
			w.Write([]byte(`{"tier":"MASTER","entries":[{"puuid":"m1"},{"puuid":"m2"},{"puuid":"m3"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	players, err := c.HighEloPlayers(context.Background(), 4)
	require.NoError(t, err)
	var ids []string
	for _, p := range players {
		ids = append(ids, p.PUUID)
	}
	assert.Equal(t, []string{"c1", "c2", "m1", "m2"}, ids)

	players, err = c.HighEloPlayers(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, players, 1)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, defaultRetryWait, parseRetryAfter(""))
	assert.Equal(t, 3*time.Second, parseRetryAfter("3"))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon"))
}
