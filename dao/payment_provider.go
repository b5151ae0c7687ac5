// api/dao/payment_provider.go
package dao

import (
	"context"

	"github.com/farrowscore/api/model"
)

// Charge timeline statuses reported by payment providers.
const (
	ChargeStatusNew       = "NEW"
	ChargeStatusPending   = "PENDING"
	ChargeStatusCompleted = "COMPLETED"
	ChargeStatusResolved  = "RESOLVED"
	ChargeStatusFailed    = "FAILED"
	ChargeStatusExpired   = "EXPIRED"
	ChargeStatusCanceled  = "CANCELED"
	ChargeStatusCancelled = "CANCELLED"
)

// PaymentProvider opens charges and reports their timelines.
type PaymentProvider interface {
	CreateCharge(ctx context.Context, req model.ChargeRequest) (*model.Charge, error)
	GetCharge(ctx context.Context, chargeRef string) (*model.Charge, error)
}
