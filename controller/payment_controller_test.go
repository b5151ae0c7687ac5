package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/farrowscore/api/audit"
	"github.com/farrowscore/api/controller"
	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
	mock_service "github.com/farrowscore/api/test/service_mock"
	"github.com/farrowscore/api/util"
)

func withUser(c *gin.Context) {
	if id := c.GetHeader("X-User-ID"); id != "" {
		c.Set(util.UserIDKey, id)
	}
	c.Next()
}

func TestPaymentController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccessService := mock_service.NewMockIAccessService(ctrl)
	paymentController := controller.NewPaymentController(mockAccessService)
	router := setupRouter()
	router.Use(withUser)
	api := router.Group("/")
	paymentController.RegisterRoutes(api)

	send := func(method, path, body, userID string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req, _ = http.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req, _ = http.NewRequest(method, path, nil)
		}
		if userID != "" {
			req.Header.Set("X-User-ID", userID)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("InitiatePayment_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			Initiate(gomock.Any(), "u1", model.FeatureAdvancedStats, "g42").
			Return(&model.PaymentIntent{ChargeRef: "ch_1", AmountDue: 0.5, Currency: "USDC", PaymentURL: "https://pay.example/ch_1"}, nil)

		w := send("POST", "/payments", `{"feature":"advanced_stats","game_id":"g42"}`, "u1")

		assert.Equal(t, http.StatusCreated, w.Code)
		var intent model.PaymentIntent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &intent))
		assert.Equal(t, "ch_1", intent.ChargeRef)
		assert.Equal(t, 0.5, intent.AmountDue)
	})

	t.Run("InitiatePayment_Failure_Unauthorized", func(t *testing.T) {
		w := send("POST", "/payments", `{"feature":"advanced_stats"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("InitiatePayment_Failure_MissingFeature", func(t *testing.T) {
		w := send("POST", "/payments", `{"game_id":"g42"}`, "u1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InitiatePayment_Failure_UnknownFeature", func(t *testing.T) {
		mockAccessService.EXPECT().
			Initiate(gomock.Any(), "u1", model.Feature("season_pass"), "").
			Return(nil, score_errors.ErrUnknownFeature)

		w := send("POST", "/payments", `{"feature":"season_pass"}`, "u1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InitiatePayment_Failure_Provider", func(t *testing.T) {
		mockAccessService.EXPECT().
			Initiate(gomock.Any(), "u1", model.FeatureHistoricalData, "").
			Return(nil, score_errors.ErrPaymentProvider)

		w := send("POST", "/payments", `{"feature":"historical_data"}`, "u1")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("VerifyPayment_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			Verify(gomock.Any(), "ch_1").
			Return(model.TransactionCompleted, nil)

		w := send("POST", "/payments/ch_1/verify", "", "u1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"charge_ref":"ch_1","status":"completed"}`, w.Body.String())
	})

	t.Run("VerifyPayment_Failure_NotFound", func(t *testing.T) {
		mockAccessService.EXPECT().
			Verify(gomock.Any(), "missing").
			Return(model.TransactionStatus(""), score_errors.ErrTransactionNotFound)

		w := send("POST", "/payments/missing/verify", "", "u1")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetTransaction_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			GetTransaction(gomock.Any(), "ch_1").
			Return(&model.Transaction{ChargeRef: "ch_1", Status: model.TransactionPending}, nil)

		w := send("GET", "/payments/ch_1", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CheckAccess_Granted", func(t *testing.T) {
		expires := time.Date(2024, 9, 9, 18, 0, 0, 0, time.UTC)
		mockAccessService.EXPECT().
			CheckAccess(gomock.Any(), "u1", model.FeatureAdvancedStats, "g42").
			Return(&model.AccessGrant{Granted: true, Feature: model.FeatureAdvancedStats, GameID: "g42", ExpiresAt: &expires, ChargeRef: "ch_1"}, nil)

		w := send("GET", "/access?feature=advanced_stats&gameId=g42", "", "u1")

		assert.Equal(t, http.StatusOK, w.Code)
		var grant model.AccessGrant
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grant))
		assert.True(t, grant.Granted)
		assert.True(t, grant.ExpiresAt.Equal(expires))
	})

	t.Run("CheckAccess_Failure_MissingFeature", func(t *testing.T) {
		w := send("GET", "/access", "", "u1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListTransactions_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			ListTransactions(gomock.Any(), "u1", model.FeatureHistoricalData).
			Return([]model.Transaction{{ChargeRef: "ch_2"}}, nil)

		w := send("GET", "/transactions?feature=historical_data", "", "u1")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetAuditTrail_Success", func(t *testing.T) {
		mockAccessService.EXPECT().
			QueryAudit(gomock.Any(), "ch_1").
			Return([]audit.AuditLog{{Action: audit.ActionPaymentInitiated, ChargeRef: "ch_1"}}, nil)

		w := send("GET", "/payments/ch_1/audit", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var logs []audit.AuditLog
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
		assert.Len(t, logs, 1)
	})
}
