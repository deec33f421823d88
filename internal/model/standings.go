package model

// NetResult is a player's handicap-adjusted score for one round.
type NetResult struct {
	Name         string  `json:"name"`
	GrossScore   int     `json:"gross_score"`
	Handicap     float64 `json:"handicap"`
	StrokesGiven float64 `json:"strokes_given"`
	NetScore     float64 `json:"net_score"`
}

// TeamStanding is one team's line in a weekly leaderboard.
type TeamStanding struct {
	TeamName string `json:"team_name"`

	// Score is the sum of the best two net scores, the single net score for a
	// partial team, or nil when no player on the team has a score.
	Score *float64 `json:"score"`

	// TopScores are the (at most two) counting scores, best first.
	TopScores []NetResult `json:"top_scores,omitempty"`

	// PlayerCount is how many players on the team posted a score.
	PlayerCount int `json:"player_count"`

	// Complete is true when at least two scores count.
	Complete bool `json:"is_complete"`
}

// WeeklyTeamScore is a team's score for one week inside cumulative standings.
type WeeklyTeamScore struct {
	Week     int     `json:"week"`
	Score    float64 `json:"score"`
	Complete bool    `json:"is_complete"`
}

// CumulativeStanding is one team's line across all weeks.
type CumulativeStanding struct {
	TeamName     string            `json:"team_name"`
	TotalScore   float64           `json:"total_score"`
	WeeksPlayed  int               `json:"weeks_played"`
	AverageScore *float64          `json:"average_score"`
	WeeklyScores []WeeklyTeamScore `json:"weekly_scores,omitempty"`
}
