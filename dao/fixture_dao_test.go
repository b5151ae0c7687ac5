package dao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farrowscore/api/model"
)

func TestFixtureDAO(t *testing.T) {
	fixtures, err := NewFixtureDAO()
	require.NoError(t, err)

	t.Run("GamesExpandTeams", func(t *testing.T) {
		games := fixtures.Games()
		require.Len(t, games, 4)
		for _, g := range games {
			assert.NotEmpty(t, g.HomeTeam.Abbreviation)
			assert.NotEmpty(t, g.AwayTeam.Abbreviation)
			assert.False(t, g.LastUpdate.IsZero())
		}
	})

	t.Run("GameLookup", func(t *testing.T) {
		game := fixtures.Game("4")
		require.NotNil(t, game)
		assert.Equal(t, model.GameStatusFinal, game.Status)
		assert.Nil(t, fixtures.Game("404"))
	})

	t.Run("Players", func(t *testing.T) {
		assert.Len(t, fixtures.Players("", ""), 8)
		assert.Len(t, fixtures.Players("", "1"), 2)
		assert.Len(t, fixtures.Players("2", ""), 2)
		assert.Empty(t, fixtures.Players("404", ""))
	})

	t.Run("EventsCarryGameID", func(t *testing.T) {
		events := fixtures.Events("1")
		require.Len(t, events, 4)
		for _, e := range events {
			assert.Equal(t, "1", e.GameID)
		}
		assert.NotNil(t, fixtures.Events("3"))
		assert.Empty(t, fixtures.Events("3"))
	})

	t.Run("HistoricalWinners", func(t *testing.T) {
		all := fixtures.Historical("", 0)
		require.Len(t, all, 6)
		assert.Equal(t, "KC", all[0].Winner)
		assert.Equal(t, model.WinnerTie, all[1].Winner)
		assert.Len(t, fixtures.Historical("", 3), 3)
		assert.Len(t, fixtures.Historical("7", 0), 2)
	})
}

func TestFixtureDAO_UnknownTeam(t *testing.T) {
	_, err := newFixtureDAO([]byte(`
teams:
  - teamId: "1"
    abbreviation: KC
games:
  - gameId: "1"
    homeTeamId: "1"
    awayTeamId: "9"
`))
	assert.Error(t, err)
}
