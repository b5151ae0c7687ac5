// api/dao/transaction_sql_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
)

type transactionRow struct {
	ID         string    `gorm:"primaryKey;size:64"`
	ChargeRef  string    `gorm:"uniqueIndex;size:128;not null"`
	UserID     string    `gorm:"index;size:128;not null"`
	Feature    string    `gorm:"size:64;not null"`
	GameID     string    `gorm:"size:64"`
	Amount     float64   `gorm:"not null"`
	Currency   string    `gorm:"size:16"`
	Status     string    `gorm:"size:16;not null"`
	PaymentURL string    `gorm:"size:512"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (transactionRow) TableName() string {
	return "transactions"
}

func rowFromTransaction(tx *model.Transaction) transactionRow {
	return transactionRow{
		ID:         tx.ID,
		ChargeRef:  tx.ChargeRef,
		UserID:     tx.UserID,
		Feature:    string(tx.Feature),
		GameID:     tx.GameID,
		Amount:     tx.Amount,
		Currency:   tx.Currency,
		Status:     string(tx.Status),
		PaymentURL: tx.PaymentURL,
		CreatedAt:  tx.CreatedAt,
		UpdatedAt:  tx.UpdatedAt,
	}
}

func (r transactionRow) toTransaction() model.Transaction {
	return model.Transaction{
		ID:         r.ID,
		ChargeRef:  r.ChargeRef,
		UserID:     r.UserID,
		Feature:    model.Feature(r.Feature),
		GameID:     r.GameID,
		Amount:     r.Amount,
		Currency:   r.Currency,
		Status:     model.TransactionStatus(r.Status),
		PaymentURL: r.PaymentURL,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// SQLTransactionStore persists records through gorm on sqlite or postgres.
type SQLTransactionStore struct {
	db *gorm.DB
}

func NewSQLTransactionStore(db *gorm.DB) *SQLTransactionStore {
	return &SQLTransactionStore{db: db}
}

// Migrate creates or updates the transactions table.
func (s *SQLTransactionStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&transactionRow{}); err != nil {
		return fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	return nil
}

func (s *SQLTransactionStore) Create(ctx context.Context, tx *model.Transaction) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&transactionRow{}).Where("charge_ref = ?", tx.ChargeRef).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: charge %s already recorded", score_errors.ErrTransactionConflict, tx.ChargeRef)
	}

	row := rowFromTransaction(tx)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	return nil
}

func (s *SQLTransactionStore) Get(ctx context.Context, chargeRef string) (*model.Transaction, error) {
	var row transactionRow
	err := s.db.WithContext(ctx).Where("charge_ref = ?", chargeRef).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, score_errors.ErrTransactionNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	tx := row.toTransaction()
	return &tx, nil
}

func (s *SQLTransactionStore) ListByUser(ctx context.Context, userID string, feature model.Feature) ([]model.Transaction, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if feature != "" {
		query = query.Where("feature = ?", string(feature))
	}

	var rows []transactionRow
	if err := query.Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}

	txs := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, row.toTransaction())
	}
	return txs, nil
}

// UpdateStatus only touches the row while it still holds the expected status.
func (s *SQLTransactionStore) UpdateStatus(ctx context.Context, chargeRef string, from, to model.TransactionStatus, at time.Time) (*model.Transaction, error) {
	result := s.db.WithContext(ctx).Model(&transactionRow{}).
		Where("charge_ref = ? AND status = ?", chargeRef, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": at})
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, result.Error)
	}

	current, err := s.Get(ctx, chargeRef)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: charge %s is %s, expected %s", score_errors.ErrTransactionConflict, chargeRef, current.Status, from)
	}
	return current, nil
}
