package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/farrowscore/api/middleware"
	"github.com/farrowscore/api/model"
	mock_service "github.com/farrowscore/api/test/service_mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequirePremium(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccess := mock_service.NewMockIAccessService(ctrl)
	router := gin.New()
	router.Use(middleware.UserIdentity())
	router.GET("/games/:id/players",
		middleware.RequirePremium(mockAccess, model.FeatureAdvancedStats, "id"),
		func(c *gin.Context) {
			_, ok := c.Get("accessGrant")
			assert.True(t, ok)
			c.Status(http.StatusOK)
		})

	t.Run("Granted", func(t *testing.T) {
		expires := time.Now().Add(time.Hour)
		mockAccess.EXPECT().
			CheckAccess(gomock.Any(), "u1", model.FeatureAdvancedStats, "g42").
			Return(&model.AccessGrant{Granted: true, Feature: model.FeatureAdvancedStats, GameID: "g42", ExpiresAt: &expires}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/g42/players", nil)
		req.Header.Set(middleware.UserIDHeader, "u1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("PaymentRequired", func(t *testing.T) {
		mockAccess.EXPECT().
			CheckAccess(gomock.Any(), "u1", model.FeatureAdvancedStats, "g99").
			Return(&model.AccessGrant{Feature: model.FeatureAdvancedStats, GameID: "g99"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/g99/players", nil)
		req.Header.Set(middleware.UserIDHeader, "u1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "advanced_stats", body["feature"])
		assert.Equal(t, 0.5, body["price"])
		assert.Equal(t, "g99", body["game_id"])
	})

	t.Run("Anonymous", func(t *testing.T) {
		mockAccess.EXPECT().
			CheckAccess(gomock.Any(), "", model.FeatureAdvancedStats, "g42").
			Return(&model.AccessGrant{Feature: model.FeatureAdvancedStats, GameID: "g42"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/g42/players", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
	})

	t.Run("CheckFails", func(t *testing.T) {
		mockAccess.EXPECT().
			CheckAccess(gomock.Any(), "u1", model.FeatureAdvancedStats, "g42").
			Return(nil, errors.New("store down"))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games/g42/players", nil)
		req.Header.Set(middleware.UserIDHeader, "u1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	router := gin.New()
	router.Use(middleware.UserIdentity())
	router.Use(middleware.RateLimiter(client, 2, time.Minute))
	router.GET("/games", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip, userID string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/games", nil)
		req.RemoteAddr = ip + ":40000"
		req.Header.Set(middleware.UserIDHeader, userID)
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1", "u1").Code)
	w := send("10.0.0.1", "u1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1", "u1").Code)

	// rotating the user header does not open a new bucket
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1", "u2").Code)
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1", "").Code)

	assert.Equal(t, http.StatusOK, send("10.0.0.2", "u1").Code)

	// an unreachable limiter lets requests through
	mr.Close()
	assert.Equal(t, http.StatusOK, send("10.0.0.1", "u1").Code)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("requestID"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}
