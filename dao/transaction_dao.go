// api/dao/transaction_dao.go
package dao

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
)

// TransactionStore persists transaction records keyed by charge reference.
//
// Create fails with ErrTransactionConflict when the reference already exists.
// UpdateStatus is a compare-and-set: it fails with ErrTransactionConflict when
// the stored status is not from, and returns the updated record otherwise.
type TransactionStore interface {
	Create(ctx context.Context, tx *model.Transaction) error
	Get(ctx context.Context, chargeRef string) (*model.Transaction, error)
	ListByUser(ctx context.Context, userID string, feature model.Feature) ([]model.Transaction, error)
	UpdateStatus(ctx context.Context, chargeRef string, from, to model.TransactionStatus, at time.Time) (*model.Transaction, error)
}

func sortByCreatedAt(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.Before(txs[j].CreatedAt)
	})
}

type MemoryTransactionStore struct {
	mu      sync.RWMutex
	records map[string]model.Transaction
}

func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{records: make(map[string]model.Transaction)}
}

func (s *MemoryTransactionStore) Create(_ context.Context, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[tx.ChargeRef]; exists {
		return fmt.Errorf("%w: charge %s already recorded", score_errors.ErrTransactionConflict, tx.ChargeRef)
	}
	s.records[tx.ChargeRef] = *tx
	return nil
}

func (s *MemoryTransactionStore) Get(_ context.Context, chargeRef string) (*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.records[chargeRef]
	if !ok {
		return nil, score_errors.ErrTransactionNotFound
	}
	return &tx, nil
}

func (s *MemoryTransactionStore) ListByUser(_ context.Context, userID string, feature model.Feature) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs := make([]model.Transaction, 0)
	for _, tx := range s.records {
		if tx.UserID != userID {
			continue
		}
		if feature != "" && tx.Feature != feature {
			continue
		}
		txs = append(txs, tx)
	}
	sortByCreatedAt(txs)
	return txs, nil
}

func (s *MemoryTransactionStore) UpdateStatus(_ context.Context, chargeRef string, from, to model.TransactionStatus, at time.Time) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.records[chargeRef]
	if !ok {
		return nil, score_errors.ErrTransactionNotFound
	}
	if tx.Status != from {
		return nil, fmt.Errorf("%w: charge %s is %s, expected %s", score_errors.ErrTransactionConflict, chargeRef, tx.Status, from)
	}
	tx.Status = to
	tx.UpdatedAt = at
	s.records[chargeRef] = tx
	return &tx, nil
}
