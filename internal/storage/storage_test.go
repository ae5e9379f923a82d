package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/build"
	"github.com/pable/go-lol-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRecord(id, player, date string) model.MatchRecord {
	return model.MatchRecord{
		MatchID:    id,
		PlayerName: player,
		Champion:   "Ahri",
		Role:       model.RoleMid,
		MatchDate:  date,
		Duration:   1800,
		Win:        true,
		Source:     "sample",
	}
}

func insertSample(t *testing.T, db *DB, rec model.MatchRecord) analyzer.Result {
	t.Helper()
	m, timeline := model.SampleGame()
	res := analyzer.New(analyzer.DefaultBenchmarks()).AnalyzeGame(m, timeline)
	if err := db.InsertAnalysis(rec, m, res, timeline); err != nil {
		t.Fatalf("InsertAnalysis: %v", err)
	}
	return res
}

func TestInsertAnalysisAndExists(t *testing.T) {
	db := openMemDB(t)
	insertSample(t, db, sampleRecord("EUW1_1", "Mid Main#EUW", "2025-01-01"))

	exists, err := db.MatchExists("EUW1_1", "Mid Main#EUW")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}

	exists2, _ := db.MatchExists("EUW1_1", "someone else")
	if exists2 {
		t.Error("expected other player's analysis to not exist")
	}
}

func TestInsertAnalysis_Idempotent(t *testing.T) {
	db := openMemDB(t)
	rec := sampleRecord("EUW1_1", "p", "2025-01-01")
	insertSample(t, db, rec)
	res := insertSample(t, db, rec)

	matches, err := db.ListMatches(0)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	fb, err := db.GetFeedback("EUW1_1", "p")
	require.NoError(t, err)
	total := len(res.Critical) + len(res.Weaknesses) + len(res.Strengths) + len(res.Recommendations)
	assert.Len(t, fb, total)

	events, err := db.GetTimeline("EUW1_1", "p")
	require.NoError(t, err)
	assert.Len(t, events, 6)
}

func TestListMatchesAndPrefix(t *testing.T) {
	db := openMemDB(t)
	insertSample(t, db, sampleRecord("EUW1_100", "p", "2025-01-01"))
	insertSample(t, db, sampleRecord("EUW1_200", "p", "2025-02-01"))

	matches, err := db.ListMatches(0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "EUW1_200", matches[0].MatchID)
	assert.Equal(t, model.RoleMid, matches[0].Role)
	assert.True(t, matches[0].Win)
	assert.InDelta(t, 72.0, matches[0].OverallScore, 1e-9)
	assert.Equal(t, "Gold", matches[0].RankEstimate)

	limited, err := db.ListMatches(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := db.GetMatchByPrefix("EUW1_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "EUW1_100", got.MatchID)

	none, err := db.GetMatchByPrefix("KR_")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestWildcardsAreLiteral(t *testing.T) {
	db := openMemDB(t)
	insertSample(t, db, sampleRecord("EUW1X100", "p", "2025-03-01"))
	insertSample(t, db, sampleRecord("EUW1_100", "p", "2025-01-01"))
	insertSample(t, db, sampleRecord("NA1_5", "50%#NA", "2025-01-01"))

	got, err := db.GetMatchByPrefix("EUW1_")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "EUW1_100", got.MatchID)

	none, err := db.GetMatchByPrefix("%")
	require.NoError(t, err)
	assert.Nil(t, none)

	trend, err := db.GetPlayerTrend("_")
	require.NoError(t, err)
	assert.Empty(t, trend)

	trend, err = db.GetPlayerTrend("50%")
	require.NoError(t, err)
	require.Len(t, trend, 1)
	assert.Equal(t, "NA1_5", trend[0].MatchID)
}

func TestGetMetricsAndScores(t *testing.T) {
	db := openMemDB(t)
	res := insertSample(t, db, sampleRecord("EUW1_1", "p", "2025-01-01"))

	m, err := db.GetMetrics("EUW1_1", "p")
	require.NoError(t, err)
	want, _ := model.SampleGame()
	assert.Equal(t, want, *m)

	scores, err := db.GetCategoryScores("EUW1_1", "p")
	require.NoError(t, err)
	assert.Equal(t, res.Categories, scores)

	_, err = db.GetMetrics("nope", "p")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFeedbackOrder(t *testing.T) {
	db := openMemDB(t)
	insertSample(t, db, sampleRecord("EUW1_1", "p", "2025-01-01"))

	fb, err := db.GetFeedback("EUW1_1", "p")
	require.NoError(t, err)
	require.NotEmpty(t, fb)
	assert.Equal(t, analyzer.KindCritical, fb[0].Kind)
	assert.Equal(t, analyzer.CategoryCombat, fb[0].Category)
	assert.Equal(t, "Problem champion: Zed kills you often", fb[0].Message)
	assert.Equal(t, analyzer.KindRecommendation, fb[len(fb)-1].Kind)
}

func TestGetTimelinePositions(t *testing.T) {
	db := openMemDB(t)
	insertSample(t, db, sampleRecord("EUW1_1", "p", "2025-01-01"))

	events, err := db.GetTimeline("EUW1_1", "p")
	require.NoError(t, err)
	_, want := model.SampleGame()
	assert.Equal(t, want, events)
}

func TestGetPlayerTrend(t *testing.T) {
	db := openMemDB(t)
	insertSample(t, db, sampleRecord("EUW1_2", "Mid Main#EUW", "2025-02-01"))
	insertSample(t, db, sampleRecord("EUW1_1", "Mid Main#EUW", "2025-01-01"))
	insertSample(t, db, sampleRecord("EUW1_3", "Other#EUW", "2025-03-01"))

	for _, name := range []string{"Mid Main#EUW", "mid main", "MID MAIN#euw"} {
		trend, err := db.GetPlayerTrend(name)
		require.NoError(t, err)
		require.Len(t, trend, 2, name)
		assert.Equal(t, "EUW1_1", trend[0].MatchID)
		assert.Equal(t, 85.0, trend[0].Scores[0])
		assert.InDelta(t, 6.0, trend[0].CSPerMin, 1e-9)
	}
}

func TestBuilds(t *testing.T) {
	db := openMemDB(t)
	b := build.Build{
		Champion: "Ahri",
		Type:     build.TypeAP,
		Role:     "Mid",
		Runes:    build.Runes{Keystone: "Electrocute", PrimaryPath: "Domination", SecondaryPath: "Sorcery"},
		Items:    []build.Item{build.SorcerersShoes, build.LudensCompanion},
		Notes:    "poke comp",
	}
	require.NoError(t, db.InsertBuild(b))
	require.NoError(t, db.InsertBuild(build.Build{Champion: "Jinx", Role: "ADC", Type: build.TypeAD}))

	got, err := db.FindBuild("ahri", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, b, *got)

	got, err = db.FindBuild("Ahri", "mid")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = db.FindBuild("Ahri", "Support")
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := db.ListBuilds()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// The recommender reads stored builds through the store.
	rec, err := build.NewRecommender(db).Recommend("Ahri", "AP", "Mid", nil)
	require.NoError(t, err)
	assert.False(t, rec.Generated)
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	insertSample(t, db, sampleRecord("EUW1_1", "p", "2025-01-01"))

	cols, rows, err := db.QueryRaw("SELECT match_id, overall_score, NULL AS n FROM matches")
	require.NoError(t, err)
	assert.Equal(t, []string{"match_id", "overall_score", "n"}, cols)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"EUW1_1", "72.00", "NULL"}, rows[0])

	_, _, err = db.QueryRaw("SELECT * FROM no_such_table")
	assert.Error(t, err)
}

func TestOverviewAndGroupStats(t *testing.T) {
	db := openMemDB(t)

	ov, err := db.GetOverview()
	require.NoError(t, err)
	assert.Equal(t, 0, ov.TotalAnalyses)

	insertSample(t, db, sampleRecord("EUW1_1", "a#EUW", "2025-01-01"))
	insertSample(t, db, sampleRecord("EUW1_2", "a#EUW", "2025-01-03"))
	lost := sampleRecord("EUW1_3", "b#EUW", "2025-01-02")
	lost.Champion = "Zed"
	lost.Win = false
	insertSample(t, db, lost)

	ov, err = db.GetOverview()
	require.NoError(t, err)
	assert.Equal(t, 3, ov.TotalAnalyses)
	assert.Equal(t, 2, ov.UniquePlayers)
	assert.Equal(t, 2, ov.UniqueChampions)
	assert.Equal(t, "2025-01-01", ov.EarliestMatch)
	assert.Equal(t, "2025-01-03", ov.LatestMatch)
	assert.Equal(t, 2, ov.Wins)
	assert.InDelta(t, 72.0, ov.AvgScore, 1e-9)

	champs, err := db.GetGroupStats("champion", 0)
	require.NoError(t, err)
	require.Len(t, champs, 2)
	assert.Equal(t, GroupStats{Key: "Ahri", Games: 2, Wins: 2, AvgScore: 72, AvgKDA: 1.86, AvgCS: 6}, champs[0])
	assert.Equal(t, "Zed", champs[1].Key)

	top, err := db.GetGroupStats("player", 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "a#EUW", top[0].Key)

	// Unknown grouping falls back to champion.
	fallback, err := db.GetGroupStats("nope", 0)
	require.NoError(t, err)
	assert.Len(t, fallback, 2)
}
