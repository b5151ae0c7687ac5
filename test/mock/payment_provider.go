// test/mock/payment_provider.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/farrowscore/api/model"
)

// MockPaymentProvider is a mock implementation of dao.PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateCharge(ctx context.Context, req model.ChargeRequest) (*model.Charge, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Charge), args.Error(1)
}

func (m *MockPaymentProvider) GetCharge(ctx context.Context, chargeRef string) (*model.Charge, error) {
	args := m.Called(ctx, chargeRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Charge), args.Error(1)
}
