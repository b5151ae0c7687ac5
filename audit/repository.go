// api/audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/farrowscore/api/logging"
)

const auditIndex = "score-audit"

type Repository interface {
	LogAccess(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, from, to time.Time, userID, chargeRef string) ([]AuditLog, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
}

// NewElasticsearchRepository creates a new repository with a given Elasticsearch client URL.
func NewElasticsearchRepository(esURL string) (*ElasticsearchRepository, error) {
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient}, nil
}

func (r *ElasticsearchRepository) LogAccess(ctx context.Context, log AuditLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      auditIndex,
		DocumentID: uuid.New().String(),
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing audit log: %s", res.String())
	}
	return nil
}

func buildAuditQuery(from, to time.Time, userID, chargeRef string) map[string]interface{} {
	must := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"gte": from.Format(time.RFC3339),
					"lte": to.Format(time.RFC3339),
				},
			},
		},
	}
	// Identifiers are matched exactly on the keyword sub-field; the analysed
	// text field splits refs on hyphens and lowercases user ids.
	if userID != "" {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"user_id.keyword": userID}})
	}
	if chargeRef != "" {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"charge_ref.keyword": chargeRef}})
	}
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"sort": []interface{}{
			map[string]interface{}{"timestamp": map[string]interface{}{"order": "asc"}},
		},
	}
}

// QueryLogs returns the audit entries in [from, to], optionally narrowed by user and charge.
func (r *ElasticsearchRepository) QueryLogs(ctx context.Context, from, to time.Time, userID, chargeRef string) ([]AuditLog, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildAuditQuery(from, to, userID, chargeRef)); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(auditIndex),
		r.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching audit logs: %s", res.String())
	}

	var body struct {
		Hits struct {
			Hits []struct {
				Source AuditLog `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	logs := make([]AuditLog, 0, len(body.Hits.Hits))
	for _, hit := range body.Hits.Hits {
		logs = append(logs, hit.Source)
	}
	return logs, nil
}

// LogRepository writes audit entries to the application log and keeps the most
// recent ones in memory for querying.
type LogRepository struct {
	mu       sync.RWMutex
	entries  []AuditLog
	capacity int
}

func NewLogRepository(capacity int) *LogRepository {
	if capacity <= 0 {
		capacity = 1000
	}
	return &LogRepository{capacity: capacity}
}

func (r *LogRepository) LogAccess(_ context.Context, log AuditLog) error {
	logger.Info("AUDIT",
		zap.String("action", log.Action),
		logger.UserID(log.UserID),
		logger.Feature(log.Feature),
		zap.String("gameID", log.GameID),
		logger.ChargeRef(log.ChargeRef),
		zap.String("status", log.Status),
		zap.Bool("accessGranted", log.AccessGranted))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, log)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
	return nil
}

func (r *LogRepository) QueryLogs(_ context.Context, from, to time.Time, userID, chargeRef string) ([]AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	logs := make([]AuditLog, 0)
	for _, entry := range r.entries {
		if entry.Timestamp.Before(from) || entry.Timestamp.After(to) {
			continue
		}
		if userID != "" && entry.UserID != userID {
			continue
		}
		if chargeRef != "" && entry.ChargeRef != chargeRef {
			continue
		}
		logs = append(logs, entry)
	}
	return logs, nil
}
