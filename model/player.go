// api/model/player.go
package model

type Player struct {
	PlayerID     string      `json:"player_id" yaml:"playerId"`
	PlayerName   string      `json:"player_name" yaml:"playerName"`
	TeamID       string      `json:"team_id" yaml:"teamId"`
	PlayerTeam   string      `json:"player_team" yaml:"playerTeam"`
	GameID       string      `json:"game_id,omitempty" yaml:"gameId"`
	Position     string      `json:"position" yaml:"position"`
	JerseyNumber int         `json:"jersey_number" yaml:"jerseyNumber"`
	Stats        PlayerStats `json:"stats" yaml:"stats"`
}

// PlayerStats holds per-game box score numbers; absent values are zero.
type PlayerStats struct {
	PassingYards        int `json:"passing_yards" yaml:"passingYards"`
	PassingTouchdowns   int `json:"passing_touchdowns" yaml:"passingTouchdowns"`
	Interceptions       int `json:"interceptions" yaml:"interceptions"`
	RushingYards        int `json:"rushing_yards" yaml:"rushingYards"`
	RushingTouchdowns   int `json:"rushing_touchdowns" yaml:"rushingTouchdowns"`
	ReceivingYards      int `json:"receiving_yards" yaml:"receivingYards"`
	ReceivingTouchdowns int `json:"receiving_touchdowns" yaml:"receivingTouchdowns"`
	Tackles             int `json:"tackles" yaml:"tackles"`
	Sacks               int `json:"sacks" yaml:"sacks"`
}

// RosterPlayer is the public view of a player, without box score numbers.
type RosterPlayer struct {
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	TeamID       string `json:"team_id"`
	PlayerTeam   string `json:"player_team"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number"`
}

func (p Player) Roster() RosterPlayer {
	return RosterPlayer{
		PlayerID:     p.PlayerID,
		PlayerName:   p.PlayerName,
		TeamID:       p.TeamID,
		PlayerTeam:   p.PlayerTeam,
		Position:     p.Position,
		JerseyNumber: p.JerseyNumber,
	}
}
