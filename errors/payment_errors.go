// api/errors/payment_errors.go
package errors

import "errors"

var (
	ErrPaymentProvider     = errors.New("payment provider error")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionConflict = errors.New("transaction conflict")
	ErrUnknownFeature      = errors.New("unknown feature")
	ErrInvalidPaymentData  = errors.New("invalid payment data")
	ErrPaymentRequired     = errors.New("payment required")
)
