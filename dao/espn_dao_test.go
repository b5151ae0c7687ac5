package dao_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farrowscore/api/dao"
	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
)

const espnScoreboardJSON = `{
  "events": [
    {
      "id": "401671789",
      "date": "2024-09-08T17:00Z",
      "status": {"displayClock": "4:12", "period": 3, "type": {"state": "in"}},
      "competitions": [{
        "venue": {"fullName": "Arrowhead Stadium"},
        "attendance": 73000,
        "broadcasts": [{"names": ["CBS"]}],
        "competitors": [
          {"homeAway": "home", "score": "21", "team": {"id": "12", "displayName": "Kansas City Chiefs", "abbreviation": "KC", "color": "e31837", "logo": "https://a.espncdn.com/kc.png", "conferenceId": 0, "groupId": 4}},
          {"homeAway": "away", "score": {"value": 17.0}, "team": {"id": "33", "displayName": "Baltimore Ravens", "abbreviation": "BAL", "logos": [{"href": "https://a.espncdn.com/bal.png"}]}}
        ]
      }]
    },
    {
      "id": "401671790",
      "date": "2024-09-08T20:25Z",
      "status": {"type": {"state": "pre"}},
      "competitions": [{
        "competitors": [
          {"homeAway": "home", "score": 0, "team": {"id": "21", "displayName": "Philadelphia Eagles", "abbreviation": "PHI", "conferenceId": 1}},
          {"homeAway": "away", "team": {"id": "6", "displayName": "Dallas Cowboys", "abbreviation": "DAL", "conferenceId": 1}}
        ]
      }]
    },
    {"id": "broken", "competitions": []}
  ]
}`

func newESPNServer(t *testing.T, handler http.HandlerFunc) *dao.ESPNDAO {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return dao.NewESPNDAO(dao.NewHTTPClient(time.Second), server.URL)
}

func TestESPNDAO_ListGames(t *testing.T) {
	espn := newESPNServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scoreboard", r.URL.Path)
		w.Write([]byte(espnScoreboardJSON))
	})

	games, err := espn.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 2)

	live := games[0]
	assert.Equal(t, "401671789", live.GameID)
	assert.Equal(t, model.GameStatusLive, live.Status)
	assert.Equal(t, 21, live.CurrentScoreHome)
	assert.Equal(t, 17, live.CurrentScoreAway)
	assert.Equal(t, 3, live.Quarter)
	assert.Equal(t, "4:12", live.TimeRemaining)
	assert.Equal(t, "Arrowhead Stadium", live.Venue)
	assert.Equal(t, "CBS", live.TVBroadcast)
	assert.Equal(t, model.WinProbability{Home: 50, Away: 50}, live.WinProbability)

	assert.Equal(t, "#e31837", live.HomeTeam.PrimaryColor)
	assert.Equal(t, "AFC", live.HomeTeam.Conference)
	assert.Equal(t, "West", live.HomeTeam.Division)
	assert.Equal(t, "https://a.espncdn.com/bal.png", live.AwayTeam.TeamLogo)
	assert.Equal(t, "#000000", live.AwayTeam.PrimaryColor)

	scheduled := games[1]
	assert.Equal(t, model.GameStatusScheduled, scheduled.Status)
	assert.Equal(t, 1, scheduled.Quarter)
	assert.Equal(t, "15:00", scheduled.TimeRemaining)
	assert.Zero(t, scheduled.CurrentScoreAway)
	assert.Equal(t, "NFC", scheduled.HomeTeam.Conference)
	assert.Equal(t, "East", scheduled.HomeTeam.Division)
}

func TestESPNDAO_EmptyScoreboardIsUnavailable(t *testing.T) {
	espn := newESPNServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": []}`))
	})

	_, err := espn.ListGames(context.Background())
	assert.ErrorIs(t, err, score_errors.ErrSourceUnavailable)
}

func TestESPNDAO_UpstreamErrors(t *testing.T) {
	espn := newESPNServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/teams" {
			w.Write([]byte(`not json`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	})
	ctx := context.Background()

	_, err := espn.ListGames(ctx)
	assert.ErrorIs(t, err, score_errors.ErrSourceUnavailable)

	_, err = espn.GetGame(ctx, "1")
	assert.ErrorIs(t, err, score_errors.ErrSourceUnavailable)

	_, err = espn.ListTeams(ctx)
	assert.ErrorIs(t, err, score_errors.ErrSourceUnavailable)
}

func TestESPNDAO_ListTeams(t *testing.T) {
	espn := newESPNServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams", r.URL.Path)
		w.Write([]byte(`{"sports": [{"leagues": [{"teams": [
			{"team": {"id": "2", "displayName": "Buffalo Bills", "abbreviation": "BUF", "location": "Buffalo", "color": "#00338d", "alternateColor": "c60c30", "conferenceId": 0, "groupId": 1}},
			{"team": {"id": "8", "displayName": "Detroit Lions", "abbreviation": "DET", "conferenceId": 1, "groupId": 2}}
		]}]}]}`))
	})

	teams, err := espn.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, "#00338d", teams[0].PrimaryColor)
	assert.Equal(t, "#c60c30", teams[0].SecondaryColor)
	assert.Equal(t, "AFC", teams[0].Conference)
	assert.Equal(t, "East", teams[0].Division)
	assert.Equal(t, "Buffalo", teams[0].City)
	assert.Equal(t, "NFC", teams[1].Conference)
	assert.Equal(t, "North", teams[1].Division)
}
