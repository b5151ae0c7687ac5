// api/model/game.go
package model

import "time"

// GameStatus is the tri-state lifecycle of a game, normalised across sources.
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusLive      GameStatus = "live"
	GameStatusFinal     GameStatus = "final"
)

type WinProbability struct {
	Home float64 `json:"home" yaml:"home"`
	Away float64 `json:"away" yaml:"away"`
}

type Game struct {
	GameID           string         `json:"game_id" yaml:"gameId"`
	HomeTeam         Team           `json:"home_team" yaml:"homeTeam"`
	AwayTeam         Team           `json:"away_team" yaml:"awayTeam"`
	CurrentScoreHome int            `json:"current_score_home" yaml:"currentScoreHome"`
	CurrentScoreAway int            `json:"current_score_away" yaml:"currentScoreAway"`
	Status           GameStatus     `json:"status" yaml:"status"`
	Quarter          int            `json:"quarter" yaml:"quarter"`
	TimeRemaining    string         `json:"time_remaining" yaml:"timeRemaining"`
	WinProbability   WinProbability `json:"win_probability" yaml:"winProbability"`
	GameDate         string         `json:"game_date,omitempty" yaml:"gameDate"`
	Venue            string         `json:"venue,omitempty" yaml:"venue"`
	Attendance       int            `json:"attendance,omitempty" yaml:"attendance"`
	TVBroadcast      string         `json:"tv_broadcast,omitempty" yaml:"tvBroadcast"`
	LastUpdate       time.Time      `json:"last_update" yaml:"-"`
}

// WinProbabilityPoint is one sample of the win-probability series of a game.
type WinProbabilityPoint struct {
	Time        string  `json:"time" yaml:"time"`
	HomeWinProb float64 `json:"home_win_prob" yaml:"homeWinProb"`
	AwayWinProb float64 `json:"away_win_prob" yaml:"awayWinProb"`
	Quarter     int     `json:"quarter" yaml:"quarter"`
}

type GameEventType string

const (
	GameEventTouchdown  GameEventType = "touchdown"
	GameEventFieldGoal  GameEventType = "field_goal"
	GameEventExtraPoint GameEventType = "extra_point"
	GameEventSafety     GameEventType = "safety"
	GameEventTurnover   GameEventType = "turnover"
	GameEventPenalty    GameEventType = "penalty"
	GameEventTimeout    GameEventType = "timeout"
)

type GameEvent struct {
	EventID       string        `json:"event_id" yaml:"eventId"`
	GameID        string        `json:"game_id" yaml:"gameId"`
	EventType     GameEventType `json:"event_type" yaml:"eventType"`
	Description   string        `json:"description" yaml:"description"`
	Quarter       int           `json:"quarter" yaml:"quarter"`
	TimeRemaining string        `json:"time_remaining" yaml:"timeRemaining"`
	Team          string        `json:"team" yaml:"team"`
	Player        string        `json:"player,omitempty" yaml:"player"`
	Yards         int           `json:"yards,omitempty" yaml:"yards"`
}

// HistoricalGame is a completed game from a past season.
type HistoricalGame struct {
	GameID         string `json:"game_id" yaml:"gameId"`
	Season         int    `json:"season" yaml:"season"`
	Week           int    `json:"week" yaml:"week"`
	HomeTeam       Team   `json:"home_team" yaml:"homeTeam"`
	AwayTeam       Team   `json:"away_team" yaml:"awayTeam"`
	FinalScoreHome int    `json:"final_score_home" yaml:"finalScoreHome"`
	FinalScoreAway int    `json:"final_score_away" yaml:"finalScoreAway"`
	Winner         string `json:"winner" yaml:"winner"`
	GameDate       string `json:"game_date" yaml:"gameDate"`
	Venue          string `json:"venue" yaml:"venue"`
}

// WinnerTie marks a historical game that ended level.
const WinnerTie = "TIE"

// GameDetail is the game-detail view: the game and its win-probability series.
type GameDetail struct {
	Game           *Game                 `json:"game"`
	WinProbability []WinProbabilityPoint `json:"win_probability"`
}
