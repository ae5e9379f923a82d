package storage

// Overview is the database-wide summary.
type Overview struct {
	TotalAnalyses   int
	UniquePlayers   int
	UniqueChampions int
	EarliestMatch   string
	LatestMatch     string
	Wins            int
	AvgScore        float64
}

// GetOverview returns aggregate counts over every stored analysis.
func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COUNT(DISTINCT player_name),
		       COUNT(DISTINCT champion),
		       COALESCE(MIN(match_date), ''),
		       COALESCE(MAX(match_date), ''),
		       COALESCE(SUM(win), 0),
		       COALESCE(AVG(overall_score), 0)
		FROM matches`).Scan(&ov.TotalAnalyses, &ov.UniquePlayers, &ov.UniqueChampions,
		&ov.EarliestMatch, &ov.LatestMatch, &ov.Wins, &ov.AvgScore)
	return ov, err
}

// GroupStats aggregates analyses sharing one key (champion, role or source).
type GroupStats struct {
	Key      string
	Games    int
	Wins     int
	AvgScore float64
	AvgKDA   float64
	AvgCS    float64
}

// groupColumns are the columns GetGroupStats may group by.
var groupColumns = map[string]string{
	"champion": "m.champion",
	"role":     "m.role",
	"source":   "m.source",
	"player":   "m.player_name",
}

// GetGroupStats groups analyses by champion, role, source or player,
// most played first. limit <= 0 means all groups.
func (db *DB) GetGroupStats(by string, limit int) ([]GroupStats, error) {
	col, ok := groupColumns[by]
	if !ok {
		col = groupColumns["champion"]
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(`
		SELECT `+col+`, COUNT(*), SUM(m.win), AVG(m.overall_score), AVG(a.kda), AVG(a.cs_per_min)
		FROM matches m
		JOIN analyses a ON a.match_id = m.match_id AND a.player_name = m.player_name
		GROUP BY `+col+`
		ORDER BY COUNT(*) DESC, `+col+`
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GroupStats
	for rows.Next() {
		var g GroupStats
		if err := rows.Scan(&g.Key, &g.Games, &g.Wins, &g.AvgScore, &g.AvgKDA, &g.AvgCS); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
