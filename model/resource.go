// api/model/resource.go
package model

import (
	"fmt"
	"strings"
)

// ResourceKind names a category of fetchable data.
type ResourceKind string

const (
	KindGames           ResourceKind = "games"
	KindGame            ResourceKind = "game"
	KindWinProbability  ResourceKind = "win-probability"
	KindPlayers         ResourceKind = "players"
	KindGameEvents      ResourceKind = "game-events"
	KindHistoricalGames ResourceKind = "historical-games"
	KindTeams           ResourceKind = "teams"
)

// ResourceKinds lists every kind the data facility can resolve.
var ResourceKinds = []ResourceKind{
	KindGames,
	KindGame,
	KindWinProbability,
	KindPlayers,
	KindGameEvents,
	KindHistoricalGames,
	KindTeams,
}

func (k ResourceKind) Valid() bool {
	for _, kind := range ResourceKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ResourceParams scopes a resource query.
type ResourceParams struct {
	GameID string
	TeamID string
	Limit  int
}

func orAll(v string) string {
	if v == "" {
		return "all"
	}
	return v
}

// Key returns the cache slot for a kind and its scoping parameters.
func (k ResourceKind) Key(params ResourceParams) string {
	parts := []string{string(k)}
	switch k {
	case KindGame, KindWinProbability, KindGameEvents:
		parts = append(parts, "game="+params.GameID)
	case KindPlayers:
		parts = append(parts, "game="+orAll(params.GameID), "team="+orAll(params.TeamID))
	case KindHistoricalGames:
		parts = append(parts, "team="+orAll(params.TeamID), fmt.Sprintf("limit=%d", params.Limit))
	}
	return strings.Join(parts, ":")
}
