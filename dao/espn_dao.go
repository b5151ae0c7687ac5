// api/dao/espn_dao.go
package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	score_errors "github.com/farrowscore/api/errors"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
)

// ESPNDAO reads the public ESPN scoreboard and teams endpoints.
type ESPNDAO struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

func NewESPNDAO(client *http.Client, baseURL string) *ESPNDAO {
	return &ESPNDAO{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

type espnScoreboard struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Status       espnStatus        `json:"status"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnStatus struct {
	DisplayClock string `json:"displayClock"`
	Period       int    `json:"period"`
	Type         struct {
		State string `json:"state"`
	} `json:"type"`
}

type espnCompetition struct {
	Competitors []espnCompetitor `json:"competitors"`
	Venue       *struct {
		FullName string `json:"fullName"`
	} `json:"venue"`
	Attendance int `json:"attendance"`
	Broadcasts []struct {
		Names []string `json:"names"`
	} `json:"broadcasts"`
}

type espnCompetitor struct {
	HomeAway string    `json:"homeAway"`
	Score    espnScore `json:"score"`
	Team     espnTeam  `json:"team"`
}

type espnTeam struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	Abbreviation   string `json:"abbreviation"`
	Location       string `json:"location"`
	Color          string `json:"color"`
	AlternateColor string `json:"alternateColor"`
	Logo           string `json:"logo"`
	Logos          []struct {
		Href string `json:"href"`
	} `json:"logos"`
	Venue *struct {
		FullName string `json:"fullName"`
	} `json:"venue"`
	ConferenceID int `json:"conferenceId"`
	GroupID      int `json:"groupId"`
}

var espnDivisions = map[int]string{
	1: "East",
	2: "North",
	3: "South",
	4: "West",
}

type espnTeamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team espnTeam `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// espnScore accepts the score as a string, a number or an object with a value;
// anything unparseable counts as zero.
type espnScore int

func (s *espnScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = 0
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			*s = espnScore(n)
		}
	case '{':
		var obj struct {
			Value float64 `json:"value"`
		}
		if err := json.Unmarshal(data, &obj); err == nil {
			*s = espnScore(int(obj.Value))
		}
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err == nil {
			*s = espnScore(int(f))
		}
	}
	return nil
}

// ListGames returns the current scoreboard. An empty scoreboard is reported as
// unavailable so callers move on to the next source.
func (d *ESPNDAO) ListGames(ctx context.Context) ([]model.Game, error) {
	var board espnScoreboard
	if err := getJSON(ctx, d.client, d.baseURL+"/scoreboard", nil, &board); err != nil {
		return nil, err
	}

	games := make([]model.Game, 0, len(board.Events))
	for _, event := range board.Events {
		game, err := d.transformEvent(event)
		if err != nil {
			logger.Debug("Skipping ESPN event", zap.String("eventID", event.ID), zap.Error(err))
			continue
		}
		games = append(games, *game)
	}

	if len(games) == 0 {
		return nil, fmt.Errorf("%w: espn scoreboard has no games", score_errors.ErrSourceUnavailable)
	}
	return games, nil
}

func (d *ESPNDAO) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	var event espnEvent
	if err := getJSON(ctx, d.client, d.baseURL+"/scoreboard/"+url.PathEscape(gameID), nil, &event); err != nil {
		return nil, err
	}
	game, err := d.transformEvent(event)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrSourceUnavailable, err)
	}
	return game, nil
}

func (d *ESPNDAO) ListTeams(ctx context.Context) ([]model.Team, error) {
	var resp espnTeamsResponse
	if err := getJSON(ctx, d.client, d.baseURL+"/teams", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Sports) == 0 || len(resp.Sports[0].Leagues) == 0 {
		return nil, fmt.Errorf("%w: espn teams response has no league", score_errors.ErrSourceUnavailable)
	}

	entries := resp.Sports[0].Leagues[0].Teams
	teams := make([]model.Team, 0, len(entries))
	for _, entry := range entries {
		teams = append(teams, transformESPNTeam(entry.Team))
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: espn teams response is empty", score_errors.ErrSourceUnavailable)
	}
	return teams, nil
}

func (d *ESPNDAO) transformEvent(event espnEvent) (*model.Game, error) {
	if event.ID == "" {
		return nil, fmt.Errorf("event has no id")
	}
	if len(event.Competitions) == 0 {
		return nil, fmt.Errorf("event %s has no competition", event.ID)
	}
	competition := event.Competitions[0]

	var home, away *espnCompetitor
	for i := range competition.Competitors {
		switch competition.Competitors[i].HomeAway {
		case "home":
			home = &competition.Competitors[i]
		case "away":
			away = &competition.Competitors[i]
		}
	}
	if home == nil || away == nil {
		return nil, fmt.Errorf("event %s is missing a home or away competitor", event.ID)
	}

	game := &model.Game{
		GameID:           event.ID,
		HomeTeam:         transformESPNTeam(home.Team),
		AwayTeam:         transformESPNTeam(away.Team),
		CurrentScoreHome: int(home.Score),
		CurrentScoreAway: int(away.Score),
		Status:           espnGameStatus(event.Status.Type.State),
		Quarter:          event.Status.Period,
		TimeRemaining:    event.Status.DisplayClock,
		// the free tier carries no win probability
		WinProbability: model.WinProbability{Home: 50, Away: 50},
		GameDate:       event.Date,
		Attendance:     competition.Attendance,
		LastUpdate:     d.now().UTC(),
	}
	if game.Quarter == 0 {
		game.Quarter = 1
	}
	if game.TimeRemaining == "" {
		game.TimeRemaining = "15:00"
	}
	if competition.Venue != nil {
		game.Venue = competition.Venue.FullName
	}
	if len(competition.Broadcasts) > 0 && len(competition.Broadcasts[0].Names) > 0 {
		game.TVBroadcast = competition.Broadcasts[0].Names[0]
	}
	return game, nil
}

func espnGameStatus(state string) model.GameStatus {
	switch state {
	case "in":
		return model.GameStatusLive
	case "post":
		return model.GameStatusFinal
	default:
		return model.GameStatusScheduled
	}
}

func transformESPNTeam(t espnTeam) model.Team {
	team := model.Team{
		TeamID:       t.ID,
		TeamName:     t.DisplayName,
		TeamLogo:     t.Logo,
		Abbreviation: t.Abbreviation,
		PrimaryColor: "#000000",
		City:         t.Location,
		Conference:   "NFC",
		Division:     "East",
	}
	if t.ConferenceID == 0 {
		team.Conference = "AFC"
	}
	if division, ok := espnDivisions[t.GroupID]; ok {
		team.Division = division
	}
	if team.TeamLogo == "" && len(t.Logos) > 0 {
		team.TeamLogo = t.Logos[0].Href
	}
	if t.Color != "" {
		team.PrimaryColor = "#" + strings.TrimPrefix(t.Color, "#")
	}
	if t.AlternateColor != "" {
		team.SecondaryColor = "#" + strings.TrimPrefix(t.AlternateColor, "#")
	}
	if t.Venue != nil {
		team.Stadium = t.Venue.FullName
	}
	return team
}
