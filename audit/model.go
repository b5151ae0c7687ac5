// api/audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Audit actions recorded by the access grant facility.
const (
	ActionPaymentInitiated = "payment.initiated"
	ActionPaymentVerified  = "payment.verified"
	ActionAccessChecked    = "access.checked"
)

type AuditLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	Action        string          `json:"action"`
	Feature       string          `json:"feature,omitempty"`
	GameID        string          `json:"game_id,omitempty"`
	ChargeRef     string          `json:"charge_ref,omitempty"`
	Status        string          `json:"status,omitempty"`
	AccessGranted bool            `json:"access_granted"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
