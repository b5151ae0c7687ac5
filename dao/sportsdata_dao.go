// api/dao/sportsdata_dao.go
package dao

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
)

const sportsDataKeyHeader = "Ocp-Apim-Subscription-Key"

// SportsDataDAO reads season feeds from SportsData.io. Every call needs an API
// key; without one the DAO reports itself disabled.
type SportsDataDAO struct {
	client           *http.Client
	baseURL          string
	apiKey           string
	season           int
	historicalSeason int
}

func NewSportsDataDAO(client *http.Client, baseURL, apiKey string, season, historicalSeason int) *SportsDataDAO {
	return &SportsDataDAO{
		client:           client,
		baseURL:          strings.TrimRight(baseURL, "/"),
		apiKey:           apiKey,
		season:           season,
		historicalSeason: historicalSeason,
	}
}

func (d *SportsDataDAO) Enabled() bool {
	return d.apiKey != ""
}

type sportsDataPlayerGame struct {
	PlayerID            int     `json:"PlayerID"`
	Name                string  `json:"Name"`
	Team                string  `json:"Team"`
	TeamID              int     `json:"TeamID"`
	GameKey             string  `json:"GameKey"`
	GlobalGameID        int     `json:"GlobalGameID"`
	ScoreID             int     `json:"ScoreID"`
	Position            string  `json:"Position"`
	Number              int     `json:"Number"`
	PassingYards        float64 `json:"PassingYards"`
	PassingTouchdowns   float64 `json:"PassingTouchdowns"`
	PassingInterception float64 `json:"PassingInterceptions"`
	RushingYards        float64 `json:"RushingYards"`
	RushingTouchdowns   float64 `json:"RushingTouchdowns"`
	ReceivingYards      float64 `json:"ReceivingYards"`
	ReceivingTouchdowns float64 `json:"ReceivingTouchdowns"`
	SoloTackles         float64 `json:"SoloTackles"`
	AssistedTackles     float64 `json:"AssistedTackles"`
	Sacks               float64 `json:"Sacks"`
}

type sportsDataGame struct {
	GameID       int    `json:"GameID"`
	GlobalGameID int    `json:"GlobalGameID"`
	Season       int    `json:"Season"`
	Week         int    `json:"Week"`
	Status       string `json:"Status"`
	DateTime     string `json:"DateTime"`
	HomeTeam     string `json:"HomeTeam"`
	AwayTeam     string `json:"AwayTeam"`
	HomeTeamID   int    `json:"HomeTeamID"`
	AwayTeamID   int    `json:"AwayTeamID"`
	HomeTeamName string `json:"HomeTeamName"`
	AwayTeamName string `json:"AwayTeamName"`
	HomeScore    int    `json:"HomeScore"`
	AwayScore    int    `json:"AwayScore"`
	StadiumName  string `json:"StadiumName"`
}

func (d *SportsDataDAO) get(ctx context.Context, path string, dest interface{}) error {
	if !d.Enabled() {
		return fmt.Errorf("%w: sportsdata api key not configured", score_errors.ErrSourceUnavailable)
	}
	return getJSON(ctx, d.client, d.baseURL+path, map[string]string{sportsDataKeyHeader: d.apiKey}, dest)
}

// ListPlayerStats returns the per-game stat lines of one game, optionally
// narrowed to a team. The season feed is only useful with a game to filter by.
func (d *SportsDataDAO) ListPlayerStats(ctx context.Context, gameID, teamID string) ([]model.Player, error) {
	if gameID == "" {
		return nil, fmt.Errorf("%w: sportsdata player stats need a game id", score_errors.ErrSourceUnavailable)
	}

	var rows []sportsDataPlayerGame
	if err := d.get(ctx, fmt.Sprintf("/PlayerGameStatsBySeason/%d", d.season), &rows); err != nil {
		return nil, err
	}

	players := make([]model.Player, 0)
	for _, row := range rows {
		rowGameID := strconv.Itoa(row.ScoreID)
		if rowGameID != gameID && strconv.Itoa(row.GlobalGameID) != gameID {
			continue
		}
		if teamID != "" && strconv.Itoa(row.TeamID) != teamID && row.Team != teamID {
			continue
		}
		players = append(players, transformSportsDataPlayer(row, gameID))
	}

	if len(players) == 0 {
		return nil, fmt.Errorf("%w: sportsdata has no player stats for game %s", score_errors.ErrSourceUnavailable, gameID)
	}
	return players, nil
}

// ListHistoricalGames returns completed games of the configured past season,
// filtered by team and cut to limit.
func (d *SportsDataDAO) ListHistoricalGames(ctx context.Context, teamID string, limit int) ([]model.HistoricalGame, error) {
	var rows []sportsDataGame
	if err := d.get(ctx, fmt.Sprintf("/GamesBySeason/%d", d.historicalSeason), &rows); err != nil {
		return nil, err
	}

	games := make([]model.HistoricalGame, 0)
	for _, row := range rows {
		if sportsDataGameStatus(row.Status) != model.GameStatusFinal {
			continue
		}
		game := transformSportsDataGame(row)
		if teamID != "" && game.HomeTeam.TeamID != teamID && game.AwayTeam.TeamID != teamID {
			continue
		}
		games = append(games, game)
		if limit > 0 && len(games) == limit {
			break
		}
	}

	if len(games) == 0 {
		return nil, fmt.Errorf("%w: sportsdata has no historical games", score_errors.ErrSourceUnavailable)
	}
	return games, nil
}

func sportsDataGameStatus(status string) model.GameStatus {
	switch status {
	case "Final", "F/OT":
		return model.GameStatusFinal
	case "InProgress":
		return model.GameStatusLive
	default:
		return model.GameStatusScheduled
	}
}

func transformSportsDataPlayer(row sportsDataPlayerGame, gameID string) model.Player {
	return model.Player{
		PlayerID:     strconv.Itoa(row.PlayerID),
		PlayerName:   row.Name,
		TeamID:       strconv.Itoa(row.TeamID),
		PlayerTeam:   row.Team,
		GameID:       gameID,
		Position:     row.Position,
		JerseyNumber: row.Number,
		Stats: model.PlayerStats{
			PassingYards:        int(row.PassingYards),
			PassingTouchdowns:   int(row.PassingTouchdowns),
			Interceptions:       int(row.PassingInterception),
			RushingYards:        int(row.RushingYards),
			RushingTouchdowns:   int(row.RushingTouchdowns),
			ReceivingYards:      int(row.ReceivingYards),
			ReceivingTouchdowns: int(row.ReceivingTouchdowns),
			Tackles:             int(row.SoloTackles + row.AssistedTackles),
			Sacks:               int(row.Sacks),
		},
	}
}

func transformSportsDataGame(row sportsDataGame) model.HistoricalGame {
	game := model.HistoricalGame{
		GameID: strconv.Itoa(row.GameID),
		Season: row.Season,
		Week:   row.Week,
		HomeTeam: model.Team{
			TeamID:       strconv.Itoa(row.HomeTeamID),
			TeamName:     row.HomeTeamName,
			Abbreviation: row.HomeTeam,
			PrimaryColor: "#000000",
		},
		AwayTeam: model.Team{
			TeamID:       strconv.Itoa(row.AwayTeamID),
			TeamName:     row.AwayTeamName,
			Abbreviation: row.AwayTeam,
			PrimaryColor: "#000000",
		},
		FinalScoreHome: row.HomeScore,
		FinalScoreAway: row.AwayScore,
		GameDate:       row.DateTime,
		Venue:          row.StadiumName,
	}
	switch {
	case row.HomeScore > row.AwayScore:
		game.Winner = row.HomeTeam
	case row.AwayScore > row.HomeScore:
		game.Winner = row.AwayTeam
	default:
		game.Winner = model.WinnerTie
	}
	return game
}
