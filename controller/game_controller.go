// api/controller/game_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
	"github.com/farrowscore/api/service"
	"github.com/farrowscore/api/util"
	helper_util "github.com/farrowscore/api/util/helper"
)

type GameController struct {
	gameService service.IGameService
}

func NewGameController(gameService service.IGameService) *GameController {
	return &GameController{
		gameService: gameService,
	}
}

// RegisterRoutes registers the public data routes. Gated routes are registered
// separately by the router, behind the premium middleware.
func (gc *GameController) RegisterRoutes(r *gin.RouterGroup) {
	games := r.Group("/games")
	{
		games.GET("", gc.ListGames)
		games.GET("/:id", gc.GetGame)
		games.GET("/:id/win-probability", gc.GetWinProbability)
		games.GET("/:id/events", gc.ListGameEvents)
	}
	r.GET("/players", gc.ListPlayers)
	r.GET("/teams", gc.ListTeams)

	cache := r.Group("/cache")
	{
		cache.GET("/stats", gc.CacheStats)
		cache.DELETE("", gc.ClearCache)
	}
}

func (gc *GameController) respondWithDataError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, score_errors.ErrGameNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Game not found", err)
	case errors.Is(err, score_errors.ErrInvalidLimit):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid limit", err)
	case errors.Is(err, score_errors.ErrSourceUnavailable):
		util.RespondWithError(c, http.StatusServiceUnavailable, "Data source unavailable", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, message, err)
	}
}

func (gc *GameController) ListGames(c *gin.Context) {
	games, err := gc.gameService.ListGames(c.Request.Context())
	if err != nil {
		gc.respondWithDataError(c, "Failed to list games", err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGame returns the game together with its win-probability series
func (gc *GameController) GetGame(c *gin.Context) {
	detail, err := gc.gameService.GetGameDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		gc.respondWithDataError(c, "Failed to retrieve game", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (gc *GameController) GetWinProbability(c *gin.Context) {
	points, err := gc.gameService.GetWinProbability(c.Request.Context(), c.Param("id"))
	if err != nil {
		gc.respondWithDataError(c, "Failed to retrieve win probability", err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (gc *GameController) ListGameEvents(c *gin.Context) {
	events, err := gc.gameService.ListGameEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		gc.respondWithDataError(c, "Failed to list game events", err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// ListGamePlayers serves the per-game box score; it sits behind the advanced stats gate
func (gc *GameController) ListGamePlayers(c *gin.Context) {
	players, err := gc.gameService.ListPlayers(c.Request.Context(), c.Param("id"), c.Query("teamId"))
	if err != nil {
		gc.respondWithDataError(c, "Failed to list players", err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// ListPlayers is public, so it serves rosters only; stats need advanced_stats.
func (gc *GameController) ListPlayers(c *gin.Context) {
	players, err := gc.gameService.ListPlayers(c.Request.Context(), "", c.Query("teamId"))
	if err != nil {
		gc.respondWithDataError(c, "Failed to list players", err)
		return
	}
	roster := make([]model.RosterPlayer, 0, len(players))
	for _, p := range players {
		roster = append(roster, p.Roster())
	}
	c.JSON(http.StatusOK, roster)
}

func (gc *GameController) ListTeams(c *gin.Context) {
	teams, err := gc.gameService.ListTeams(c.Request.Context())
	if err != nil {
		gc.respondWithDataError(c, "Failed to list teams", err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// ListHistoricalGames sits behind the historical data gate
func (gc *GameController) ListHistoricalGames(c *gin.Context) {
	limit, err := helper_util.GetLimitParam(c, helper_util.DefaultHistoryLimit)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid limit", err)
		return
	}

	games, err := gc.gameService.ListHistoricalGames(c.Request.Context(), c.Query("teamId"), limit)
	if err != nil {
		gc.respondWithDataError(c, "Failed to list historical games", err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (gc *GameController) CacheStats(c *gin.Context) {
	stats, err := gc.gameService.CacheStats(c.Request.Context())
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to read cache stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (gc *GameController) ClearCache(c *gin.Context) {
	if err := gc.gameService.ClearCache(c.Request.Context()); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to clear cache", err)
		return
	}
	c.Status(http.StatusNoContent)
}
