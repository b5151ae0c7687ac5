// api/util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
)

type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyPaymentChange reports a terminal payment transition.
func (n *NotificationService) NotifyPaymentChange(ctx context.Context, changeType EventType, tx model.Transaction) error {
	switch changeType {
	case EventPaymentCompleted:
		logger.Info("NOTIFICATION: Payment completed",
			logger.ChargeRef(tx.ChargeRef),
			logger.UserID(tx.UserID),
			logger.Feature(tx.Feature),
			zap.String("gameID", tx.GameID),
			zap.Float64("amount", tx.Amount))
	case EventPaymentFailed:
		logger.Info("NOTIFICATION: Payment failed",
			logger.ChargeRef(tx.ChargeRef),
			logger.UserID(tx.UserID),
			logger.Feature(tx.Feature))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) NotifyCacheCleared(ctx context.Context, keys int) error {
	logger.Info("NOTIFICATION: Resource cache cleared", zap.Int("keys", keys))
	return nil
}
