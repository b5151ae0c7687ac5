package dao_test

import (
	"context"
	"encoding/json"
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

func TestCoinbaseDAO(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-123", r.Header.Get("X-CC-Api-Key"))
		assert.Equal(t, "2018-03-22", r.Header.Get("X-CC-Version"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/charges":
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "fixed_price", body["pricing_type"])
			assert.Equal(t, map[string]interface{}{"amount": "0.50", "currency": "USD"}, body["local_price"])
			metadata := body["metadata"].(map[string]interface{})
			assert.Equal(t, "u1", metadata["userId"])
			assert.Equal(t, "g42", metadata["gameId"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data": {"id": "c0ffee", "code": "ABCD1234", "hosted_url": "https://commerce.coinbase.com/charges/ABCD1234", "timeline": [{"status": "NEW", "time": "2024-09-08T18:00:00Z"}]}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/charges/c0ffee":
			w.Write([]byte(`{"data": {"id": "c0ffee", "timeline": [{"status": "NEW", "time": "2024-09-08T18:00:00Z"}, {"status": "COMPLETED", "time": "2024-09-08T18:03:00Z"}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	coinbase := dao.NewCoinbaseDAO(dao.NewHTTPClient(time.Second), server.URL, "key-123")
	ctx := context.Background()

	charge, err := coinbase.CreateCharge(ctx, model.ChargeRequest{
		UserID:  "u1",
		Feature: model.FeatureAdvancedStats,
		GameID:  "g42",
		Amount:  0.5,
		Name:    "Advanced Player Stats",
	})
	require.NoError(t, err)
	assert.Equal(t, "c0ffee", charge.ID)
	assert.Equal(t, "https://commerce.coinbase.com/charges/ABCD1234", charge.HostedURL)

	charge, err = coinbase.GetCharge(ctx, "c0ffee")
	require.NoError(t, err)
	require.Len(t, charge.Timeline, 2)
	assert.Equal(t, dao.ChargeStatusCompleted, charge.Timeline[1].Status)

	_, err = coinbase.GetCharge(ctx, "unknown")
	assert.ErrorIs(t, err, score_errors.ErrPaymentProvider)
}

func TestSimulatedPaymentDAO(t *testing.T) {
	now := time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC)
	sim := dao.NewSimulatedPaymentDAO(time.Minute)
	sim.SetClock(func() time.Time { return now })
	ctx := context.Background()

	charge, err := sim.CreateCharge(ctx, model.ChargeRequest{UserID: "u1", Feature: model.FeatureHistoricalData, Amount: 1})
	require.NoError(t, err)
	assert.Contains(t, charge.ID, "sim_")

	got, err := sim.GetCharge(ctx, charge.ID)
	require.NoError(t, err)
	require.Len(t, got.Timeline, 1)
	assert.Equal(t, dao.ChargeStatusNew, got.Timeline[0].Status)

	now = now.Add(time.Minute)
	got, err = sim.GetCharge(ctx, charge.ID)
	require.NoError(t, err)
	require.Len(t, got.Timeline, 2)
	assert.Equal(t, dao.ChargeStatusCompleted, got.Timeline[1].Status)

	other, err := sim.CreateCharge(ctx, model.ChargeRequest{UserID: "u1", Feature: model.FeatureHistoricalData, Amount: 1})
	require.NoError(t, err)
	require.NoError(t, sim.Resolve(other.ID, dao.ChargeStatusCanceled))
	got, err = sim.GetCharge(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, dao.ChargeStatusCanceled, got.Timeline[len(got.Timeline)-1].Status)

	_, err = sim.GetCharge(ctx, "sim_missing")
	assert.ErrorIs(t, err, score_errors.ErrPaymentProvider)
	assert.ErrorIs(t, sim.Resolve("sim_missing", dao.ChargeStatusCompleted), score_errors.ErrPaymentProvider)
}
