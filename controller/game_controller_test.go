package controller_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/farrowscore/api/controller"
	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
	mock_service "github.com/farrowscore/api/test/service_mock"
	"github.com/farrowscore/api/util"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGameController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGameService := mock_service.NewMockIGameService(ctrl)
	gameController := controller.NewGameController(mockGameService)
	router := setupRouter()
	api := router.Group("/")
	gameController.RegisterRoutes(api)
	api.GET("/games/:id/players", gameController.ListGamePlayers)
	api.GET("/history", gameController.ListHistoricalGames)

	t.Run("ListGames_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			ListGames(gomock.Any()).
			Return([]model.Game{{GameID: "1", Status: model.GameStatusLive}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var games []model.Game
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
		assert.Len(t, games, 1)
	})

	t.Run("ListGames_Failure_SourceUnavailable", func(t *testing.T) {
		mockGameService.EXPECT().
			ListGames(gomock.Any()).
			Return(nil, score_errors.ErrSourceUnavailable)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("GetGame_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			GetGameDetail(gomock.Any(), "1").
			Return(&model.GameDetail{
				Game:           &model.Game{GameID: "1"},
				WinProbability: []model.WinProbabilityPoint{{Time: "15:00", HomeWinProb: 50, AwayWinProb: 50, Quarter: 1}},
			}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var detail model.GameDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		assert.Equal(t, "1", detail.Game.GameID)
		assert.Len(t, detail.WinProbability, 1)
	})

	t.Run("GetGame_Failure_NotFound", func(t *testing.T) {
		mockGameService.EXPECT().
			GetGameDetail(gomock.Any(), "999").
			Return(nil, fmt.Errorf("%w: 999", score_errors.ErrGameNotFound))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetWinProbability_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			GetWinProbability(gomock.Any(), "3").
			Return([]model.WinProbabilityPoint{}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/3/win-probability", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("ListGameEvents_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			ListGameEvents(gomock.Any(), "1").
			Return([]model.GameEvent{{EventID: "1-1", GameID: "1", EventType: model.GameEventTouchdown}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/1/events", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ListGamePlayers_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			ListPlayers(gomock.Any(), "1", "2").
			Return([]model.Player{{PlayerID: "2", TeamID: "2", GameID: "1"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/1/players?teamId=2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ListPlayers_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			ListPlayers(gomock.Any(), "", "").
			Return([]model.Player{{PlayerID: "1", PlayerName: "Patrick Mahomes", TeamID: "1", Stats: model.PlayerStats{PassingYards: 285}}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/players", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Patrick Mahomes")
		assert.NotContains(t, w.Body.String(), "passing_yards")
	})

	t.Run("ListTeams_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			ListTeams(gomock.Any()).
			Return([]model.Team{{TeamID: "1", Abbreviation: "KC"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/teams", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ListHistoricalGames_DefaultLimit", func(t *testing.T) {
		mockGameService.EXPECT().
			ListHistoricalGames(gomock.Any(), "1", 10).
			Return([]model.HistoricalGame{{GameID: "h1", Winner: "KC"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/history?teamId=1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ListHistoricalGames_Failure_LimitOutOfRange", func(t *testing.T) {
		mockGameService.EXPECT().
			ListHistoricalGames(gomock.Any(), "", 500).
			Return(nil, score_errors.ErrInvalidLimit)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/history?limit=500", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListHistoricalGames_Failure_LimitNotNumber", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/history?limit=ten", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CacheStats_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			CacheStats(gomock.Any()).
			Return(util.CacheStats{Size: 1, Keys: []string{"games"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/cache/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"size":1,"keys":["games"]}`, w.Body.String())
	})

	t.Run("ClearCache_Success", func(t *testing.T) {
		mockGameService.EXPECT().
			ClearCache(gomock.Any()).
			Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/cache", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
