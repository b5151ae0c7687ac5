// api/dao/transaction_redis_dao.go
package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/farrowscore/api/db"
	score_errors "github.com/farrowscore/api/errors"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
)

const (
	redisTxKeyPrefix   = "score:tx:"
	redisUserKeyPrefix = "score:tx:user:"
)

// RedisTransactionStore keeps each record as an encrypted JSON value and indexes
// charge references per user in a set.
type RedisTransactionStore struct {
	client redis.UniversalClient
	cipher *db.Cipher
}

func NewRedisTransactionStore(client redis.UniversalClient, cipher *db.Cipher) *RedisTransactionStore {
	return &RedisTransactionStore{client: client, cipher: cipher}
}

func txKey(chargeRef string) string {
	return redisTxKeyPrefix + chargeRef
}

func userTxKey(userID string) string {
	return redisUserKeyPrefix + userID
}

func (s *RedisTransactionStore) encode(tx *model.Transaction) ([]byte, error) {
	raw, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	sealed, err := s.cipher.Encrypt(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt transaction: %w", err)
	}
	return sealed, nil
}

func (s *RedisTransactionStore) decode(sealed []byte) (*model.Transaction, error) {
	raw, err := s.cipher.Decrypt(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt transaction: %w", err)
	}
	var tx model.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}
	return &tx, nil
}

func (s *RedisTransactionStore) Create(ctx context.Context, tx *model.Transaction) error {
	value, err := s.encode(tx)
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, txKey(tx.ChargeRef), value, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	if !created {
		return fmt.Errorf("%w: charge %s already recorded", score_errors.ErrTransactionConflict, tx.ChargeRef)
	}

	if err := s.client.SAdd(ctx, userTxKey(tx.UserID), tx.ChargeRef).Err(); err != nil {
		return fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	return nil
}

func (s *RedisTransactionStore) Get(ctx context.Context, chargeRef string) (*model.Transaction, error) {
	value, err := s.client.Get(ctx, txKey(chargeRef)).Bytes()
	if err == redis.Nil {
		return nil, score_errors.ErrTransactionNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	return s.decode(value)
}

func (s *RedisTransactionStore) ListByUser(ctx context.Context, userID string, feature model.Feature) ([]model.Transaction, error) {
	refs, err := s.client.SMembers(ctx, userTxKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}

	txs := make([]model.Transaction, 0, len(refs))
	if len(refs) == 0 {
		return txs, nil
	}

	keys := make([]string, len(refs))
	for i, ref := range refs {
		keys[i] = txKey(ref)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}

	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		tx, err := s.decode([]byte(str))
		if err != nil {
			logger.Warn("Skipping unreadable transaction", logger.ChargeRef(refs[i]), zap.Error(err))
			continue
		}
		if feature != "" && tx.Feature != feature {
			continue
		}
		txs = append(txs, *tx)
	}
	sortByCreatedAt(txs)
	return txs, nil
}

// UpdateStatus watches the record key so a concurrent writer aborts the
// transaction, which is reported as a conflict.
func (s *RedisTransactionStore) UpdateStatus(ctx context.Context, chargeRef string, from, to model.TransactionStatus, at time.Time) (*model.Transaction, error) {
	key := txKey(chargeRef)
	var updated *model.Transaction

	err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
		value, err := rtx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return score_errors.ErrTransactionNotFound
		} else if err != nil {
			return fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
		}

		tx, err := s.decode(value)
		if err != nil {
			return err
		}
		if tx.Status != from {
			return fmt.Errorf("%w: charge %s is %s, expected %s", score_errors.ErrTransactionConflict, chargeRef, tx.Status, from)
		}

		tx.Status = to
		tx.UpdatedAt = at
		sealed, err := s.encode(tx)
		if err != nil {
			return err
		}

		_, err = rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sealed, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = tx
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, fmt.Errorf("%w: charge %s changed concurrently", score_errors.ErrTransactionConflict, chargeRef)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}
