// Package model holds the wire and storage shapes shared by the simulator,
// the comeback evaluator and the alert manager.
package model

import (
	"strconv"
	"time"
)

// MatchStatus is the lifecycle label of a simulated match.
type MatchStatus string

const (
	StatusLive     MatchStatus = "live"
	StatusHalftime MatchStatus = "halftime"
	StatusFinished MatchStatus = "finished"
)

// TeamStats is one side's in-match statistics snapshot.
type TeamStats struct {
	Name             string  `json:"name"`
	Logo             string  `json:"logo"`
	Score            int     `json:"score"`
	XG               float64 `json:"xg"`
	Possession       int     `json:"possession"`
	Shots            int     `json:"shots"`
	ShotsOnTarget    int     `json:"shots_on_target"`
	Corners          int     `json:"corners"`
	DangerousAttacks int     `json:"dangerous_attacks"`
}

// MatchSnapshot is a point-in-time view of one simulated match.
// Snapshots are regenerated on every request and never persisted.
type MatchSnapshot struct {
	ID                  string      `json:"id"`
	HomeTeam            TeamStats   `json:"home_team"`
	AwayTeam            TeamStats   `json:"away_team"`
	Minute              int         `json:"minute"`
	Status              MatchStatus `json:"status"`
	ComebackProbability float64     `json:"comeback_probability"`
	IsComebackScenario  bool        `json:"is_comeback_scenario"`
	LosingTeam          *string     `json:"losing_team"`
	Timestamp           time.Time   `json:"timestamp"`
}

// Trailing returns the stats of the team named by LosingTeam and its
// opponent. ok is false when the snapshot has no losing team.
func (m MatchSnapshot) Trailing() (team, opponent TeamStats, ok bool) {
	if m.LosingTeam == nil {
		return TeamStats{}, TeamStats{}, false
	}
	if m.HomeTeam.Name == *m.LosingTeam {
		return m.HomeTeam, m.AwayTeam, true
	}
	return m.AwayTeam, m.HomeTeam, true
}

// ScoreLine renders the score as "home-away".
func (m MatchSnapshot) ScoreLine() string {
	return strconv.Itoa(m.HomeTeam.Score) + "-" + strconv.Itoa(m.AwayTeam.Score)
}

// ComebackAlert is a persisted notification that a monitored team crossed
// the alert threshold in a given match.
type ComebackAlert struct {
	ID          string    `json:"id"`
	MatchID     string    `json:"match_id"`
	TeamName    string    `json:"team_name"`
	Opponent    string    `json:"opponent"`
	Score       string    `json:"score"`
	Probability float64   `json:"probability"`
	Minute      int       `json:"minute"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
	Read        bool      `json:"read"`
}

// SuperteamProfile is static reference data for a monitored team.
type SuperteamProfile struct {
	Name         string  `json:"name" yaml:"name"`
	Logo         string  `json:"logo" yaml:"logo"`
	ComebackRate float64 `json:"comeback_rate" yaml:"comeback_rate"`
}

// Opponent is a team that can be drawn against a superteam.
type Opponent struct {
	Name string `json:"name" yaml:"name"`
	Logo string `json:"logo" yaml:"logo"`
}
