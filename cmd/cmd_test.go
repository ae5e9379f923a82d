package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-metrics/internal/model"
	"github.com/pable/go-lol-metrics/internal/storage"
)

func TestSplitRiotID(t *testing.T) {
	name, tag, err := splitRiotID("  Mid Main#EUW ")
	require.NoError(t, err)
	assert.Equal(t, "Mid Main", name)
	assert.Equal(t, "EUW", tag)

	for _, bad := range []string{"nohash", "#EUW", "name#", ""} {
		_, _, err := splitRiotID(bad)
		assert.Error(t, err, bad)
	}
}

func TestManualMetrics(t *testing.T) {
	saved, savedRole, savedDur := analyzeRaw, analyzeRole, analyzeDuration
	t.Cleanup(func() { analyzeRaw, analyzeRole, analyzeDuration = saved, savedRole, savedDur })

	analyzeRaw = model.RawGameStats{Champion: "Jinx", Kills: 8, Deaths: 2, Assists: 6, CS: 240, DamageDealt: 24000}
	analyzeRole = "bot"
	analyzeDuration = 30 * time.Minute

	m, err := manualMetrics()
	require.NoError(t, err)
	assert.Equal(t, model.RoleADC, m.Role)
	assert.Equal(t, 1800, m.GameDuration)
	assert.InDelta(t, 8.0, m.CSPerMin, 1e-9)
	assert.InDelta(t, 7.0, m.KDA, 1e-9)
	assert.Equal(t, 60, m.TimeSpentDead)

	analyzeRole = "roamer"
	_, err = manualMetrics()
	assert.ErrorContains(t, err, "roamer")

	analyzeRole = "adc"
	analyzeDuration = 30 * time.Second
	_, err = manualMetrics()
	assert.Error(t, err)
}

func TestBuildExport(t *testing.T) {
	points := []storage.TrendPoint{
		{MatchID: "A", Role: model.RoleMid, OverallScore: 60, Scores: [5]float64{50, 60, 70, 80, 40}},
		{MatchID: "B", Role: model.RoleMid, Win: true, OverallScore: 80, Scores: [5]float64{70, 80, 90, 60, 100}},
	}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := buildExport("p#EUW", points, now)

	assert.Equal(t, "2025-03-01T12:00:00Z", doc.GeneratedAt)
	require.Len(t, doc.Games, 2)
	assert.Equal(t, "Mid", doc.Games[0].Role)
	assert.Equal(t, 50.0, doc.Games[0].Scores["farm"])
	assert.InDelta(t, 60.0, doc.Averages["farm"], 1e-9)
	assert.InDelta(t, 70.0, doc.Averages["overall"], 1e-9)
	assert.InDelta(t, 70.0, doc.Averages["positioning"], 1e-9)
}

// fakeStream replays decoded SSE events.
type fakeStream struct {
	events []anthropic.MessageStreamEventUnion
	i      int
	err    error
}

func (f *fakeStream) Next() bool {
	if f.i >= len(f.events) {
		return false
	}
	f.i++
	return true
}

func (f *fakeStream) Current() anthropic.MessageStreamEventUnion { return f.events[f.i-1] }
func (f *fakeStream) Err() error { return f.err }

func decodeEvents(t *testing.T, raw ...string) []anthropic.MessageStreamEventUnion {
	t.Helper()
	out := make([]anthropic.MessageStreamEventUnion, len(raw))
	for i, r := range raw {
		require.NoError(t, json.Unmarshal([]byte(r), &out[i]))
	}
	return out
}

func TestWriteCoachStream(t *testing.T) {
	events := decodeEvents(t,
		`{"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Ward "}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"river."}}`,
		`{"type":"content_block_stop","index":0}`,
	)
	var buf bytes.Buffer
	require.NoError(t, writeCoachStream(&buf, &fakeStream{events: events}))
	assert.Contains(t, buf.String(), "Coach")
	assert.Contains(t, buf.String(), "Ward river.")
}

func TestWriteCoachStreamErrors(t *testing.T) {
	var buf bytes.Buffer
	err := writeCoachStream(&buf, &fakeStream{err: errors.New("401 Unauthorized")})
	assert.ErrorContains(t, err, "authentication failed")

	cause := errors.New("connection reset")
	err = writeCoachStream(&buf, &fakeStream{err: cause})
	assert.ErrorIs(t, err, cause)
}
