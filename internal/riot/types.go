package riot

// Account is the account-v1 response for a Riot ID.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// RiotID returns "name#tag".
func (a *Account) RiotID() string {
	return a.GameName + "#" + a.TagLine
}

// Match holds the fields we need from match-v5 /matches/{id}.
type Match struct {
	Metadata struct {
		MatchID      string   `json:"matchId"`
		Participants []string `json:"participants"` // PUUIDs
	} `json:"metadata"`
	Info MatchInfo `json:"info"`
}

// MatchInfo is the body of a match-v5 match.
type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"` // epoch ms
	GameDuration int           `json:"gameDuration"` // seconds
	GameMode     string        `json:"gameMode"`
	GameVersion  string        `json:"gameVersion"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
	Teams        []Team        `json:"teams"`
}

// Participant is one player's end-of-game stats.
type Participant struct {
	PUUID         string `json:"puuid"`
	ParticipantID int    `json:"participantId"`
	TeamID        int    `json:"teamId"`
	RiotIDName    string `json:"riotIdGameName"`
	RiotIDTagline string `json:"riotIdTagline"`
	ChampionName  string `json:"championName"`
	TeamPosition  string `json:"teamPosition"`
	Win           bool   `json:"win"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`

	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int `json:"totalDamageTaken"`
	GoldEarned                  int `json:"goldEarned"`

	VisionScore             int `json:"visionScore"`
	WardsPlaced             int `json:"wardsPlaced"`
	WardsKilled             int `json:"wardsKilled"`
	VisionWardsBoughtInGame int `json:"visionWardsBoughtInGame"`

	TurretTakedowns int `json:"turretTakedowns"`
	DragonKills     int `json:"dragonKills"`
	BaronKills      int `json:"baronKills"`

	TimeCCingOthers    int `json:"timeCCingOthers"`
	TotalTimeSpentDead int `json:"totalTimeSpentDead"`

	// dragonKills/baronKills count last hits only; the challenges block
	// carries takedowns and is missing from some older or custom games.
	Challenges struct {
		TurretPlatesTaken int  `json:"turretPlatesTaken"`
		DragonTakedowns   *int `json:"dragonTakedowns"`
		BaronTakedowns    *int `json:"baronTakedowns"`
	} `json:"challenges"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`
}

// Items returns the non-empty item slots.
func (p *Participant) Items() []int {
	var out []int
	for _, id := range []int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6} {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// Team is one side's result and objective totals.
type Team struct {
	TeamID     int  `json:"teamId"`
	Win        bool `json:"win"`
	Objectives struct {
		Baron  Objective `json:"baron"`
		Dragon Objective `json:"dragon"`
		Tower  Objective `json:"tower"`
	} `json:"objectives"`
}

// Objective is a per-team objective counter.
type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}

// Participant returns the participant with the given PUUID, or nil.
func (m *Match) Participant(puuid string) *Participant {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i]
		}
	}
	return nil
}

// Team returns the team with the given id, or nil.
func (m *Match) Team(teamID int) *Team {
	for i := range m.Info.Teams {
		if m.Info.Teams[i].TeamID == teamID {
			return &m.Info.Teams[i]
		}
	}
	return nil
}

// Timeline holds the fields we need from /matches/{id}/timeline.
type Timeline struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info struct {
		FrameInterval int64                 `json:"frameInterval"`
		Frames        []Frame               `json:"frames"`
		Participants  []TimelineParticipant `json:"participants"`
	} `json:"info"`
}

// TimelineParticipant maps a timeline participant id to a PUUID.
type TimelineParticipant struct {
	ParticipantID int    `json:"participantId"`
	PUUID         string `json:"puuid"`
}

// Frame is one minute of the timeline.
type Frame struct {
	Timestamp int64   `json:"timestamp"`
	Events    []Event `json:"events"`
}

// Timeline event types we read.
const (
	EventChampionKill     = "CHAMPION_KILL"
	EventEliteMonsterKill = "ELITE_MONSTER_KILL"
	EventBuildingKill     = "BUILDING_KILL"
)

// Event is one timeline event. Fields unused by a given type are zero.
type Event struct {
	Type                    string    `json:"type"`
	Timestamp               int64     `json:"timestamp"` // ms from game start
	KillerID                int       `json:"killerId"`
	VictimID                int       `json:"victimId"`
	KillerTeamID            int       `json:"killerTeamId"`
	AssistingParticipantIDs []int     `json:"assistingParticipantIds"`
	MonsterType             string    `json:"monsterType"`
	MonsterSubType          string    `json:"monsterSubType"`
	Position                *Position `json:"position"`
}

// Position is a map coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ParticipantID returns the timeline participant id for puuid, or 0.
func (t *Timeline) ParticipantID(puuid string) int {
	for _, p := range t.Info.Participants {
		if p.PUUID == puuid {
			return p.ParticipantID
		}
	}
	return 0
}

// LeagueList is the league-v4 response for an apex tier.
type LeagueList struct {
	Tier    string        `json:"tier"`
	Queue   string        `json:"queue"`
	Entries []LeagueEntry `json:"entries"`
}

// LeagueEntry is one ranked player in a league list.
type LeagueEntry struct {
	PUUID        string `json:"puuid"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}
