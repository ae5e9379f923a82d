package storage

import (
	"database/sql"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/pable/go-lol-metrics/internal/analyzer"
	"github.com/pable/go-lol-metrics/internal/model"
)

// MatchExists returns true if an analysis for the match and player is stored.
func (db *DB) MatchExists(matchID, player string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ? AND player_name = ?", matchID, player).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertAnalysis stores a match row with its metrics, category scores,
// feedback and timeline in one transaction. Re-inserting the same match and
// player replaces the previous analysis.
func (db *DB) InsertAnalysis(rec model.MatchRecord, m model.GameMetrics, res analyzer.Result, events []model.TimelineEvent) error {
	metricsJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"feedback", "timeline_events", "analyses"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_id = ? AND player_name = ?", rec.MatchID, rec.PlayerName); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(match_id, player_name, champion, role, match_date, duration, win, overall_score, rank_estimate, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID, rec.PlayerName, rec.Champion, rec.Role.String(), rec.MatchDate,
		rec.Duration, boolInt(rec.Win), res.OverallScore, res.Rank(), rec.Source,
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO analyses(
			match_id, player_name, metrics_json,
			cs_per_min, kda, damage_per_min, vision_per_min, objective_participation,
			farm_score, combat_score, vision_score, objectives_score, positioning_score
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.MatchID, rec.PlayerName, string(metricsJSON),
		m.CSPerMin, m.KDA, m.DamagePerMin,
		model.PerMinute(float64(m.VisionScore), m.GameDuration), m.ObjectiveParticipation,
		res.Score(analyzer.CategoryFarm), res.Score(analyzer.CategoryCombat), res.Score(analyzer.CategoryVision),
		res.Score(analyzer.CategoryObjectives), res.Score(analyzer.CategoryPositioning),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	fbStmt, err := tx.Prepare(`
		INSERT INTO feedback(match_id, player_name, seq, category, kind, message_key, message)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer fbStmt.Close()

	seq := 0
	for _, list := range [][]analyzer.Feedback{res.Critical, res.Weaknesses, res.Strengths, res.Recommendations} {
		for _, f := range list {
			if _, err := fbStmt.Exec(rec.MatchID, rec.PlayerName, seq, f.Category.Key(), f.Kind.String(), f.Key, f.Message()); err != nil {
				return fmt.Errorf("insert feedback: %w", err)
			}
			seq++
		}
	}

	evStmt, err := tx.Prepare(`
		INSERT INTO timeline_events(match_id, player_name, seq, timestamp, event_type, pos_x, pos_y, description, severity)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer evStmt.Close()

	for i, e := range events {
		var x, y sql.NullInt64
		if e.Position != nil {
			x = sql.NullInt64{Int64: int64(e.Position.X), Valid: true}
			y = sql.NullInt64{Int64: int64(e.Position.Y), Valid: true}
		}
		if _, err := evStmt.Exec(rec.MatchID, rec.PlayerName, i, e.Timestamp, string(e.Kind), x, y, e.Description, string(e.Severity)); err != nil {
			return fmt.Errorf("insert timeline event: %w", err)
		}
	}
	return tx.Commit()
}

const matchColumns = `match_id, player_name, champion, role, match_date, duration, win, overall_score, rank_estimate, source`

func scanMatch(row interface{ Scan(...any) error }) (model.MatchRecord, error) {
	var r model.MatchRecord
	var role string
	var win int
	err := row.Scan(&r.MatchID, &r.PlayerName, &r.Champion, &role, &r.MatchDate,
		&r.Duration, &win, &r.OverallScore, &r.RankEstimate, &r.Source)
	r.Role = model.ParseRole(role)
	r.Win = win != 0
	return r, err
}

// ListMatches returns stored analyses, newest first. limit <= 0 means all.
func (db *DB) ListMatches(limit int) ([]model.MatchRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(`SELECT `+matchColumns+`
		FROM matches ORDER BY match_date DESC, created_at DESC, match_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		r, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// likePrefix turns s into a LIKE pattern matching strings that start with s.
// Riot match ids contain '_', so wildcards are escaped.
func likePrefix(s string) string {
	return likeEscaper.Replace(s) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetMatchByPrefix finds the most recent analysis whose match id starts with
// prefix. It returns nil, nil when nothing matches.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchRecord, error) {
	r, err := scanMatch(db.conn.QueryRow(`SELECT `+matchColumns+`
		FROM matches WHERE match_id LIKE ? ESCAPE '\' ORDER BY match_date DESC LIMIT 1`, likePrefix(prefix)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetMetrics returns the stored metrics of an analysis.
func (db *DB) GetMetrics(matchID, player string) (*model.GameMetrics, error) {
	var raw string
	err := db.conn.QueryRow("SELECT metrics_json FROM analyses WHERE match_id = ? AND player_name = ?", matchID, player).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var m model.GameMetrics
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	return &m, nil
}

// GetCategoryScores returns the five category scores of an analysis in
// analysis order.
func (db *DB) GetCategoryScores(matchID, player string) ([]analyzer.CategoryScore, error) {
	var s [5]float64
	err := db.conn.QueryRow(`
		SELECT farm_score, combat_score, vision_score, objectives_score, positioning_score
		FROM analyses WHERE match_id = ? AND player_name = ?`, matchID, player).
		Scan(&s[0], &s[1], &s[2], &s[3], &s[4])
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out := make([]analyzer.CategoryScore, len(analyzer.Categories))
	for i, c := range analyzer.Categories {
		out[i] = analyzer.CategoryScore{Category: c, Score: s[i]}
	}
	return out, nil
}

// StoredFeedback is a feedback row as persisted: the rendered message plus
// its key.
type StoredFeedback struct {
	Category analyzer.Category
	Kind     analyzer.Kind
	Key      string
	Message  string
}

// GetFeedback returns the feedback of an analysis: critical, weaknesses,
// strengths, then recommendations, each in analyzer order.
func (db *DB) GetFeedback(matchID, player string) ([]StoredFeedback, error) {
	rows, err := db.conn.Query(`
		SELECT category, kind, message_key, message FROM feedback
		WHERE match_id = ? AND player_name = ? ORDER BY seq`, matchID, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredFeedback
	for rows.Next() {
		var f StoredFeedback
		var cat, kind string
		if err := rows.Scan(&cat, &kind, &f.Key, &f.Message); err != nil {
			return nil, err
		}
		f.Category, _ = analyzer.ParseCategory(cat)
		f.Kind, _ = analyzer.ParseKind(kind)
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetTimeline returns the stored timeline events of an analysis in order.
func (db *DB) GetTimeline(matchID, player string) ([]model.TimelineEvent, error) {
	rows, err := db.conn.Query(`
		SELECT timestamp, event_type, pos_x, pos_y, description, severity FROM timeline_events
		WHERE match_id = ? AND player_name = ? ORDER BY seq`, matchID, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TimelineEvent
	for rows.Next() {
		var e model.TimelineEvent
		var kind, sev string
		var x, y sql.NullInt64
		if err := rows.Scan(&e.Timestamp, &kind, &x, &y, &e.Description, &sev); err != nil {
			return nil, err
		}
		e.Kind = model.EventKind(kind)
		e.Severity = model.Severity(sev)
		if x.Valid && y.Valid {
			e.Position = &model.Position{X: int(x.Int64), Y: int(y.Int64)}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// TrendPoint is one game in a player's history.
type TrendPoint struct {
	MatchID      string
	MatchDate    string
	Champion     string
	Role         model.Role
	Win          bool
	OverallScore float64
	Scores       [5]float64 // indexed like analyzer.Categories
	CSPerMin     float64
	KDA          float64
	VisionPerMin float64
}

// GetPlayerTrend returns a player's analyses oldest first. player matches the
// stored name case-insensitively, with or without the "#tag" suffix.
func (db *DB) GetPlayerTrend(player string) ([]TrendPoint, error) {
	rows, err := db.conn.Query(`
		SELECT m.match_id, m.match_date, m.champion, m.role, m.win, m.overall_score,
		       a.farm_score, a.combat_score, a.vision_score, a.objectives_score, a.positioning_score,
		       a.cs_per_min, a.kda, a.vision_per_min
		FROM matches m
		JOIN analyses a ON a.match_id = m.match_id AND a.player_name = m.player_name
		WHERE m.player_name = ? COLLATE NOCASE OR m.player_name LIKE ? ESCAPE '\'
		ORDER BY m.match_date ASC, m.created_at ASC`, player, likePrefix(player+"#"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var p TrendPoint
		var role string
		var win int
		if err := rows.Scan(&p.MatchID, &p.MatchDate, &p.Champion, &role, &win, &p.OverallScore,
			&p.Scores[0], &p.Scores[1], &p.Scores[2], &p.Scores[3], &p.Scores[4],
			&p.CSPerMin, &p.KDA, &p.VisionPerMin); err != nil {
			return nil, err
		}
		p.Role = model.ParseRole(role)
		p.Win = win != 0
		out = append(out, p)
	}
	return out, rows.Err()
}
