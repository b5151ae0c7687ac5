// api/model/payment.go
package model

import "time"

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Terminal reports whether no verification can move the status any further.
func (s TransactionStatus) Terminal() bool {
	return s != TransactionPending
}

// Transaction is the record of one payment attempt for a premium feature.
type Transaction struct {
	ID         string            `json:"id"`
	ChargeRef  string            `json:"charge_ref"`
	UserID     string            `json:"user_id"`
	Feature    Feature           `json:"feature"`
	GameID     string            `json:"game_id,omitempty"`
	Amount     float64           `json:"amount"`
	Currency   string            `json:"currency"`
	Status     TransactionStatus `json:"status"`
	PaymentURL string            `json:"payment_url,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// PaymentIntent is what a caller needs to complete a payment.
type PaymentIntent struct {
	ChargeRef  string  `json:"charge_ref"`
	AmountDue  float64 `json:"amount_due"`
	Currency   string  `json:"currency"`
	PaymentURL string  `json:"payment_url,omitempty"`
}

// AccessGrant is derived at query time from completed transactions.
type AccessGrant struct {
	Granted   bool       `json:"granted"`
	Feature   Feature    `json:"feature"`
	GameID    string     `json:"game_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	ChargeRef string     `json:"charge_ref,omitempty"`
}

// ChargeRequest is sent to a payment provider to open a charge.
type ChargeRequest struct {
	UserID      string
	Feature     Feature
	GameID      string
	Amount      float64
	Name        string
	Description string
}

// ChargeEvent is one entry of a provider charge timeline.
type ChargeEvent struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// Charge is a provider-side payment.
type Charge struct {
	ID        string        `json:"id"`
	Code      string        `json:"code"`
	HostedURL string        `json:"hosted_url"`
	Timeline  []ChargeEvent `json:"timeline"`
}
