// api/dao/transaction_neo4j_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	score_errors "github.com/farrowscore/api/errors"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
)

// Neo4jTransactionStore models each record as a Transaction node paid for by a
// User node: (u:User)-[:PAID]->(t:Transaction).
//
// Every write and read shares the driver's ExecuteQuery bookmark manager, so a
// read issued after a write observes it even when routed to another member.
type Neo4jTransactionStore struct {
	driver neo4j.DriverWithContext
}

func NewNeo4jTransactionStore(driver neo4j.DriverWithContext) *Neo4jTransactionStore {
	return &Neo4jTransactionStore{driver: driver}
}

func (s *Neo4jTransactionStore) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Transaction chargeRef")
	_, err := neo4j.ExecuteQuery(ctx, s.driver, `
        CREATE CONSTRAINT unique_transaction_charge_ref IF NOT EXISTS
        FOR (t:Transaction) REQUIRE t.chargeRef IS UNIQUE
        `, nil, neo4j.EagerResultTransformer)
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Transaction chargeRef", zap.Error(err))
		return fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	return nil
}

func transactionFromNode(node neo4j.Node) model.Transaction {
	props := node.Props
	str := func(k string) string {
		v, _ := props[k].(string)
		return v
	}
	ts := func(k string) time.Time {
		v, _ := props[k].(time.Time)
		return v
	}
	amount, _ := props["amount"].(float64)
	return model.Transaction{
		ID:         str("id"),
		ChargeRef:  str("chargeRef"),
		UserID:     str("userId"),
		Feature:    model.Feature(str("feature")),
		GameID:     str("gameId"),
		Amount:     amount,
		Currency:   str("currency"),
		Status:     model.TransactionStatus(str("status")),
		PaymentURL: str("paymentUrl"),
		CreatedAt:  ts("createdAt"),
		UpdatedAt:  ts("updatedAt"),
	}
}

func (s *Neo4jTransactionStore) Create(ctx context.Context, tx *model.Transaction) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:      neo4j.AccessModeWrite,
		BookmarkManager: s.driver.ExecuteQueryBookmarkManager(),
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(t neo4j.ManagedTransaction) (interface{}, error) {
		result, err := t.Run(ctx, `
        MATCH (t:Transaction {chargeRef: $chargeRef})
        RETURN count(t) AS existing
        `, map[string]interface{}{"chargeRef": tx.ChargeRef})
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}
		if existing, _, _ := neo4j.GetRecordValue[int64](record, "existing"); existing > 0 {
			return nil, fmt.Errorf("%w: charge %s already recorded", score_errors.ErrTransactionConflict, tx.ChargeRef)
		}

		_, err = t.Run(ctx, `
        MERGE (u:User {id: $userId})
        CREATE (u)-[:PAID]->(t:Transaction {
            id: $id, chargeRef: $chargeRef, userId: $userId, feature: $feature,
            gameId: $gameId, amount: $amount, currency: $currency, status: $status,
            paymentUrl: $paymentUrl, createdAt: $createdAt, updatedAt: $updatedAt
        })
        `, map[string]interface{}{
			"id":         tx.ID,
			"chargeRef":  tx.ChargeRef,
			"userId":     tx.UserID,
			"feature":    string(tx.Feature),
			"gameId":     tx.GameID,
			"amount":     tx.Amount,
			"currency":   tx.Currency,
			"status":     string(tx.Status),
			"paymentUrl": tx.PaymentURL,
			"createdAt":  tx.CreatedAt,
			"updatedAt":  tx.UpdatedAt,
		})
		return nil, err
	})
	if err != nil {
		return wrapNeo4jError(err)
	}
	return nil
}

// Get reads from the writer: verification compares its result against the
// status it is about to swap.
func (s *Neo4jTransactionStore) Get(ctx context.Context, chargeRef string) (*model.Transaction, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, `
        MATCH (t:Transaction {chargeRef: $chargeRef})
        RETURN t
        `, map[string]interface{}{"chargeRef": chargeRef},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithWritersRouting())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	if len(result.Records) == 0 {
		return nil, score_errors.ErrTransactionNotFound
	}
	node, _, err := neo4j.GetRecordValue[neo4j.Node](result.Records[0], "t")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	tx := transactionFromNode(node)
	return &tx, nil
}

func (s *Neo4jTransactionStore) ListByUser(ctx context.Context, userID string, feature model.Feature) ([]model.Transaction, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, `
        MATCH (:User {id: $userId})-[:PAID]->(t:Transaction)
        WHERE $feature = '' OR t.feature = $feature
        RETURN t
        ORDER BY t.createdAt ASC
        `, map[string]interface{}{"userId": userID, "feature": string(feature)},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}

	txs := make([]model.Transaction, 0, len(result.Records))
	for _, record := range result.Records {
		node, _, err := neo4j.GetRecordValue[neo4j.Node](record, "t")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
		}
		txs = append(txs, transactionFromNode(node))
	}
	return txs, nil
}

// UpdateStatus sets the new status only when the node still holds from. The
// first SET takes the node's write lock, so the status compared afterwards is
// the latest committed one.
func (s *Neo4jTransactionStore) UpdateStatus(ctx context.Context, chargeRef string, from, to model.TransactionStatus, at time.Time) (*model.Transaction, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, updateStatusCypher, map[string]interface{}{
		"chargeRef": chargeRef,
		"from":      string(from),
		"to":        string(to),
		"at":        at,
	}, neo4j.EagerResultTransformer, neo4j.ExecuteQueryWithWritersRouting())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	if len(result.Records) == 0 {
		return nil, score_errors.ErrTransactionNotFound
	}

	record := result.Records[0]
	node, _, err := neo4j.GetRecordValue[neo4j.Node](record, "t")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
	}
	tx := transactionFromNode(node)
	if matched, _, _ := neo4j.GetRecordValue[bool](record, "matched"); !matched {
		return nil, fmt.Errorf("%w: charge %s is %s, expected %s", score_errors.ErrTransactionConflict, chargeRef, tx.Status, from)
	}
	return &tx, nil
}

const updateStatusCypher = `
        MATCH (t:Transaction {chargeRef: $chargeRef})
        SET t._lock = true
        WITH t, t.status = $from AS matched
        FOREACH (_ IN CASE WHEN matched THEN [1] ELSE [] END |
            SET t.status = $to, t.updatedAt = $at)
        REMOVE t._lock
        RETURN t, matched
        `

func wrapNeo4jError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, score_errors.ErrTransactionConflict) {
		return err
	}
	return fmt.Errorf("%w: %v", score_errors.ErrDatabaseOperation, err)
}
