// api/service/access_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/farrowscore/api/audit"
	"github.com/farrowscore/api/dao"
	score_errors "github.com/farrowscore/api/errors"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
	"github.com/farrowscore/api/util"
	helper_util "github.com/farrowscore/api/util/helper"
)

const paymentCurrency = "USDC"

// IAccessService defines the interface for premium access operations
type IAccessService interface {
	Initiate(ctx context.Context, userID string, feature model.Feature, gameID string) (*model.PaymentIntent, error)
	Verify(ctx context.Context, chargeRef string) (model.TransactionStatus, error)
	CheckAccess(ctx context.Context, userID string, feature model.Feature, gameID string) (*model.AccessGrant, error)
	GetTransaction(ctx context.Context, chargeRef string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, userID string, feature model.Feature) ([]model.Transaction, error)
	QueryAudit(ctx context.Context, chargeRef string) ([]audit.AuditLog, error)
}

// AccessService records payments for premium features and derives access
// grants from completed ones.
type AccessService struct {
	store           dao.TransactionStore
	provider        dao.PaymentProvider
	auditService    audit.Service
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
	now             func() time.Time
}

var _ IAccessService = &AccessService{}

func NewAccessService(store dao.TransactionStore, provider dao.PaymentProvider, auditService audit.Service, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus) *AccessService {
	service := &AccessService{
		store:           store,
		provider:        provider,
		auditService:    auditService,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		now:             time.Now,
	}

	eventBus.Subscribe(util.EventPaymentCompleted, service.handlePaymentEvent)
	eventBus.Subscribe(util.EventPaymentFailed, service.handlePaymentEvent)

	return service
}

// SetClock replaces the time source used for record timestamps and access windows.
func (s *AccessService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *AccessService) handlePaymentEvent(ctx context.Context, event util.Event) error {
	paid, ok := event.Payload.(util.PaymentEvent)
	if !ok {
		return fmt.Errorf("unexpected payload for %s: %T", event.Type, event.Payload)
	}
	tx := paid.Transaction
	if err := s.notificationSvc.NotifyPaymentChange(ctx, event.Type, tx); err != nil {
		logger.Warn("Failed to send payment notification", zap.Error(err), logger.ChargeRef(tx.ChargeRef))
	}
	return nil
}

// Initiate opens a provider charge for the feature and records it as pending.
// Nothing is recorded when the provider fails.
func (s *AccessService) Initiate(ctx context.Context, userID string, feature model.Feature, gameID string) (*model.PaymentIntent, error) {
	if err := s.validationUtil.ValidatePaymentRequest(userID, feature, gameID); err != nil {
		return nil, err
	}
	spec, _ := feature.Spec()

	description := spec.Description
	if gameID != "" {
		description = fmt.Sprintf("%s (game %s)", spec.Description, gameID)
	}

	charge, err := s.provider.CreateCharge(ctx, model.ChargeRequest{
		UserID:      userID,
		Feature:     feature,
		GameID:      gameID,
		Amount:      spec.Price,
		Name:        spec.DisplayName,
		Description: description,
	})
	if err != nil {
		logger.Error("Payment provider rejected charge", zap.Error(err), logger.UserID(userID), logger.Feature(feature))
		if errors.Is(err, score_errors.ErrPaymentProvider) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", score_errors.ErrPaymentProvider, err)
	}

	chargeRef := charge.ID
	if chargeRef == "" {
		chargeRef = charge.Code
	}

	now := s.now().UTC()
	tx := &model.Transaction{
		ID:         uuid.New().String(),
		ChargeRef:  chargeRef,
		UserID:     userID,
		Feature:    feature,
		GameID:     gameID,
		Amount:     spec.Price,
		Currency:   paymentCurrency,
		Status:     model.TransactionPending,
		PaymentURL: charge.HostedURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, tx); err != nil {
		logger.Error("Failed to record transaction", zap.Error(err), logger.ChargeRef(chargeRef))
		return nil, err
	}

	s.audit(ctx, audit.AuditLog{
		UserID:    userID,
		Action:    audit.ActionPaymentInitiated,
		Feature:   string(feature),
		GameID:    gameID,
		ChargeRef: chargeRef,
		Status:    string(tx.Status),
	}, map[string]interface{}{"amount": tx.Amount, "currency": tx.Currency})

	logger.Info("Payment initiated",
		logger.ChargeRef(chargeRef),
		logger.UserID(userID),
		logger.Feature(feature),
		zap.Float64("amount", spec.Price))

	return &model.PaymentIntent{
		ChargeRef:  chargeRef,
		AmountDue:  spec.Price,
		Currency:   paymentCurrency,
		PaymentURL: charge.HostedURL,
	}, nil
}

// chargeOutcome maps a provider timeline to a record status. Success wins over
// failure when both appear.
func chargeOutcome(timeline []model.ChargeEvent) model.TransactionStatus {
	failed := false
	for _, event := range timeline {
		switch event.Status {
		case dao.ChargeStatusCompleted, dao.ChargeStatusResolved:
			return model.TransactionCompleted
		case dao.ChargeStatusFailed, dao.ChargeStatusExpired, dao.ChargeStatusCanceled, dao.ChargeStatusCancelled:
			failed = true
		}
	}
	if failed {
		return model.TransactionFailed
	}
	return model.TransactionPending
}

// Verify polls the provider for a pending record and moves it to its terminal
// status. Terminal records are answered from the store alone.
func (s *AccessService) Verify(ctx context.Context, chargeRef string) (model.TransactionStatus, error) {
	if err := s.validationUtil.ValidateChargeRef(chargeRef); err != nil {
		return "", err
	}
	// A started verification runs to completion even if the caller leaves.
	ctx = context.WithoutCancel(ctx)

	tx, err := s.store.Get(ctx, chargeRef)
	if err != nil {
		return "", err
	}
	if tx.Status.Terminal() {
		return tx.Status, nil
	}

	charge, err := s.provider.GetCharge(ctx, chargeRef)
	if err != nil {
		logger.Warn("Payment provider unavailable during verification", zap.Error(err), logger.ChargeRef(chargeRef))
		return model.TransactionPending, nil
	}

	next := chargeOutcome(charge.Timeline)
	if next == model.TransactionPending {
		return next, nil
	}

	updated, err := s.store.UpdateStatus(ctx, chargeRef, model.TransactionPending, next, s.now().UTC())
	if errors.Is(err, score_errors.ErrTransactionConflict) {
		current, getErr := s.store.Get(ctx, chargeRef)
		if getErr != nil {
			return "", getErr
		}
		logger.Info("Verification lost race, reporting stored status",
			logger.ChargeRef(chargeRef),
			zap.String("status", string(current.Status)))
		return current.Status, nil
	}
	if err != nil {
		return "", err
	}

	eventType := util.EventPaymentCompleted
	if next == model.TransactionFailed {
		eventType = util.EventPaymentFailed
	}
	s.eventBus.Publish(ctx, eventType, util.PaymentEvent{Transaction: *updated, From: model.TransactionPending})

	s.audit(ctx, audit.AuditLog{
		UserID:    updated.UserID,
		Action:    audit.ActionPaymentVerified,
		Feature:   string(updated.Feature),
		GameID:    updated.GameID,
		ChargeRef: chargeRef,
		Status:    string(next),
	}, nil)

	logger.Info("Payment verified", logger.ChargeRef(chargeRef), zap.String("status", string(next)))
	return next, nil
}

// CheckAccess grants the feature when the user has a completed record still
// inside the feature's validity window. For game-scoped features queried with a
// game, the record must be for that game.
func (s *AccessService) CheckAccess(ctx context.Context, userID string, feature model.Feature, gameID string) (*model.AccessGrant, error) {
	spec, ok := feature.Spec()
	if !ok {
		return nil, fmt.Errorf("%w: %s", score_errors.ErrUnknownFeature, feature)
	}

	grant := &model.AccessGrant{Feature: feature, GameID: gameID}
	if userID == "" {
		return grant, nil
	}

	txs, err := s.store.ListByUser(ctx, userID, feature)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var latest *model.Transaction
	for i := range txs {
		tx := &txs[i]
		if tx.Feature != feature || tx.Status != model.TransactionCompleted {
			continue
		}
		if !helper_util.WithinWindow(tx.CreatedAt, now, spec.Validity) {
			continue
		}
		if spec.GameScoped && gameID != "" && tx.GameID != gameID {
			continue
		}
		if latest == nil || tx.CreatedAt.After(latest.CreatedAt) {
			latest = tx
		}
	}

	if latest != nil {
		expiresAt := helper_util.ExpiryOf(latest.CreatedAt, spec.Validity)
		grant.Granted = true
		grant.ExpiresAt = &expiresAt
		grant.ChargeRef = latest.ChargeRef
	}

	s.audit(ctx, audit.AuditLog{
		UserID:        userID,
		Action:        audit.ActionAccessChecked,
		Feature:       string(feature),
		GameID:        gameID,
		ChargeRef:     grant.ChargeRef,
		AccessGranted: grant.Granted,
	}, nil)

	return grant, nil
}

func (s *AccessService) GetTransaction(ctx context.Context, chargeRef string) (*model.Transaction, error) {
	if err := s.validationUtil.ValidateChargeRef(chargeRef); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, chargeRef)
}

func (s *AccessService) ListTransactions(ctx context.Context, userID string, feature model.Feature) ([]model.Transaction, error) {
	if feature != "" && !feature.Valid() {
		return nil, fmt.Errorf("%w: %s", score_errors.ErrUnknownFeature, feature)
	}
	return s.store.ListByUser(ctx, userID, feature)
}

// QueryAudit returns the audit trail of one charge over the last week.
func (s *AccessService) QueryAudit(ctx context.Context, chargeRef string) ([]audit.AuditLog, error) {
	now := s.now().UTC()
	return s.auditService.QueryLogs(ctx, now.Add(-7*24*time.Hour), now, "", chargeRef)
}

// audit records an entry; failures are logged and never reach the caller.
func (s *AccessService) audit(ctx context.Context, entry audit.AuditLog, details map[string]interface{}) {
	entry.Timestamp = s.now().UTC()
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.ChangeDetails = raw
		}
	}
	if err := s.auditService.LogAccess(ctx, entry); err != nil {
		logger.Warn("Failed to write audit log", zap.Error(err), zap.String("action", entry.Action))
	}
}
