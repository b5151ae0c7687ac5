// api/dao/fixture_dao.go
package dao

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/farrowscore/api/model"
)

//go:embed fixtures/fixtures.yaml
var fixturesYAML []byte

type fixtureGame struct {
	model.Game `yaml:",inline"`
	HomeTeamID string `yaml:"homeTeamId"`
	AwayTeamID string `yaml:"awayTeamId"`
}

type fixtureHistoricalGame struct {
	model.HistoricalGame `yaml:",inline"`
	HomeTeamID           string `yaml:"homeTeamId"`
	AwayTeamID           string `yaml:"awayTeamId"`
}

type fixtureFile struct {
	Teams           []model.Team                           `yaml:"teams"`
	Games           []fixtureGame                          `yaml:"games"`
	WinProbability  map[string][]model.WinProbabilityPoint `yaml:"winProbability"`
	Players         []model.Player                         `yaml:"players"`
	Events          map[string][]model.GameEvent           `yaml:"events"`
	HistoricalGames []fixtureHistoricalGame                `yaml:"historicalGames"`
}

// FixtureDAO serves the embedded static dataset. It is the last source of every
// plan and never fails; lookups with no match return empty slices or nil.
type FixtureDAO struct {
	teams      []model.Team
	games      []model.Game
	winProb    map[string][]model.WinProbabilityPoint
	players    []model.Player
	events     map[string][]model.GameEvent
	historical []model.HistoricalGame
	now        func() time.Time
}

func NewFixtureDAO() (*FixtureDAO, error) {
	return newFixtureDAO(fixturesYAML)
}

func newFixtureDAO(raw []byte) (*FixtureDAO, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	d := &FixtureDAO{
		teams:   file.Teams,
		winProb: file.WinProbability,
		players: file.Players,
		events:  file.Events,
		now:     time.Now,
	}

	byID := make(map[string]model.Team, len(file.Teams))
	for _, t := range file.Teams {
		byID[t.TeamID] = t
	}

	for _, fg := range file.Games {
		game := fg.Game
		home, ok := byID[fg.HomeTeamID]
		if !ok {
			return nil, fmt.Errorf("fixture game %s references unknown team %s", game.GameID, fg.HomeTeamID)
		}
		away, ok := byID[fg.AwayTeamID]
		if !ok {
			return nil, fmt.Errorf("fixture game %s references unknown team %s", game.GameID, fg.AwayTeamID)
		}
		game.HomeTeam, game.AwayTeam = home, away
		d.games = append(d.games, game)
	}

	for _, fh := range file.HistoricalGames {
		game := fh.HistoricalGame
		home, ok := byID[fh.HomeTeamID]
		if !ok {
			return nil, fmt.Errorf("fixture historical game %s references unknown team %s", game.GameID, fh.HomeTeamID)
		}
		away, ok := byID[fh.AwayTeamID]
		if !ok {
			return nil, fmt.Errorf("fixture historical game %s references unknown team %s", game.GameID, fh.AwayTeamID)
		}
		game.HomeTeam, game.AwayTeam = home, away
		switch {
		case game.FinalScoreHome > game.FinalScoreAway:
			game.Winner = home.Abbreviation
		case game.FinalScoreAway > game.FinalScoreHome:
			game.Winner = away.Abbreviation
		default:
			game.Winner = model.WinnerTie
		}
		d.historical = append(d.historical, game)
	}

	for gameID, events := range d.events {
		for i := range events {
			events[i].GameID = gameID
		}
	}

	return d, nil
}

func (d *FixtureDAO) Teams() []model.Team {
	return append([]model.Team{}, d.teams...)
}

// Games returns every fixture game stamped with the current time.
func (d *FixtureDAO) Games() []model.Game {
	now := d.now().UTC()
	games := make([]model.Game, 0, len(d.games))
	for _, g := range d.games {
		g.LastUpdate = now
		games = append(games, g)
	}
	return games
}

// Game returns nil when no fixture game has the id.
func (d *FixtureDAO) Game(gameID string) *model.Game {
	for _, g := range d.games {
		if g.GameID == gameID {
			g.LastUpdate = d.now().UTC()
			return &g
		}
	}
	return nil
}

func (d *FixtureDAO) WinProbability(gameID string) []model.WinProbabilityPoint {
	return append([]model.WinProbabilityPoint{}, d.winProb[gameID]...)
}

// Players filters by team and, when a game is given, by the two teams of that
// game. An unknown game yields no players.
func (d *FixtureDAO) Players(gameID, teamID string) []model.Player {
	var allowed map[string]bool
	if gameID != "" {
		game := d.Game(gameID)
		if game == nil {
			return []model.Player{}
		}
		allowed = map[string]bool{game.HomeTeam.TeamID: true, game.AwayTeam.TeamID: true}
	}

	players := make([]model.Player, 0)
	for _, p := range d.players {
		if teamID != "" && p.TeamID != teamID {
			continue
		}
		if allowed != nil && !allowed[p.TeamID] {
			continue
		}
		p.GameID = gameID
		players = append(players, p)
	}
	return players
}

func (d *FixtureDAO) Events(gameID string) []model.GameEvent {
	return append([]model.GameEvent{}, d.events[gameID]...)
}

// Historical filters by team and keeps at most limit games; limit <= 0 keeps all.
func (d *FixtureDAO) Historical(teamID string, limit int) []model.HistoricalGame {
	games := make([]model.HistoricalGame, 0)
	for _, g := range d.historical {
		if teamID != "" && g.HomeTeam.TeamID != teamID && g.AwayTeam.TeamID != teamID {
			continue
		}
		games = append(games, g)
		if limit > 0 && len(games) == limit {
			break
		}
	}
	return games
}
