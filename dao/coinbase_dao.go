// api/dao/coinbase_dao.go
package dao

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	score_errors "github.com/farrowscore/api/errors"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
)

const coinbaseAPIVersion = "2018-03-22"

// CoinbaseDAO talks to the Coinbase Commerce charges API.
type CoinbaseDAO struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewCoinbaseDAO(client *http.Client, baseURL, apiKey string) *CoinbaseDAO {
	return &CoinbaseDAO{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type coinbasePrice struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type coinbaseChargeRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PricingType string            `json:"pricing_type"`
	LocalPrice  coinbasePrice     `json:"local_price"`
	Metadata    map[string]string `json:"metadata"`
}

type coinbaseChargeResponse struct {
	Data model.Charge `json:"data"`
}

func (d *CoinbaseDAO) headers() map[string]string {
	return map[string]string{
		"X-CC-Api-Key": d.apiKey,
		"X-CC-Version": coinbaseAPIVersion,
	}
}

func (d *CoinbaseDAO) CreateCharge(ctx context.Context, req model.ChargeRequest) (*model.Charge, error) {
	body := coinbaseChargeRequest{
		Name:        req.Name,
		Description: req.Description,
		PricingType: "fixed_price",
		LocalPrice: coinbasePrice{
			Amount:   strconv.FormatFloat(req.Amount, 'f', 2, 64),
			Currency: "USD",
		},
		Metadata: map[string]string{
			"userId":  req.UserID,
			"feature": string(req.Feature),
			"gameId":  req.GameID,
		},
	}

	var resp coinbaseChargeResponse
	if err := doJSON(ctx, d.client, http.MethodPost, d.baseURL+"/charges", d.headers(), body, &resp); err != nil {
		logger.Error("Failed to create Coinbase charge", logger.UserID(req.UserID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", score_errors.ErrPaymentProvider, err)
	}
	if resp.Data.ID == "" && resp.Data.Code == "" {
		return nil, fmt.Errorf("%w: coinbase returned a charge without a reference", score_errors.ErrPaymentProvider)
	}

	logger.Info("Coinbase charge created", zap.String("chargeID", resp.Data.ID), zap.String("code", resp.Data.Code))
	return &resp.Data, nil
}

func (d *CoinbaseDAO) GetCharge(ctx context.Context, chargeRef string) (*model.Charge, error) {
	var resp coinbaseChargeResponse
	if err := getJSON(ctx, d.client, d.baseURL+"/charges/"+url.PathEscape(chargeRef), d.headers(), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrPaymentProvider, err)
	}
	return &resp.Data, nil
}
