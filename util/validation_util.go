// api/util/validation_util.go

package util

import (
	"fmt"
	"regexp"

	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_.:@-]{1,128}$`)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

// ValidatePaymentRequest checks the inputs of a payment initiation.
func (v *ValidationUtil) ValidatePaymentRequest(userID string, feature model.Feature, gameID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id cannot be empty", score_errors.ErrInvalidPaymentData)
	}
	if !identifierPattern.MatchString(userID) {
		return fmt.Errorf("%w: malformed user id", score_errors.ErrInvalidPaymentData)
	}
	if !feature.Valid() {
		return fmt.Errorf("%w: %s", score_errors.ErrUnknownFeature, feature)
	}
	if gameID != "" && !identifierPattern.MatchString(gameID) {
		return fmt.Errorf("%w: malformed game id", score_errors.ErrInvalidPaymentData)
	}
	return nil
}

func (v *ValidationUtil) ValidateChargeRef(chargeRef string) error {
	if !identifierPattern.MatchString(chargeRef) {
		return fmt.Errorf("%w: malformed charge reference", score_errors.ErrInvalidPaymentData)
	}
	return nil
}
