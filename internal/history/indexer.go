// internal/history/indexer.go
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"assistant-agents/internal/common/database"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/models"
)

// Indexer mirrors finalized decisions to Elasticsearch for later analysis.
// Indexing is best effort: failures are logged, never propagated to the
// request path.
type Indexer struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewIndexer(es *database.ElasticsearchClient, index string, log logger.Logger) *Indexer {
	return &Indexer{es: es, index: index, logger: log}
}

// Index writes one decision document keyed by its id.
func (i *Indexer) Index(ctx context.Context, d models.Decision) {
	body, err := json.Marshal(d)
	if err != nil {
		i.logger.Warn("failed to serialize decision for indexing", map[string]interface{}{
			"decisionId": d.ID,
			"error":      err.Error(),
		})
		return
	}

	res, err := i.es.Client.Index(
		i.index,
		bytes.NewReader(body),
		i.es.Client.Index.WithDocumentID(d.ID),
		i.es.Client.Index.WithContext(ctx),
	)
	if err != nil {
		i.logger.Warn("decision indexing failed", map[string]interface{}{
			"decisionId": d.ID,
			"error":      err.Error(),
		})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		i.logger.Warn("decision indexing rejected", map[string]interface{}{
			"decisionId": d.ID,
			"status":     res.Status(),
		})
		return
	}

	i.logger.Debug("decision indexed", map[string]interface{}{
		"decisionId": d.ID,
		"index":      i.index,
	})
}

// Search returns the raw search response body for a query string against the
// decision index.
func (i *Indexer) Search(ctx context.Context, query string) (map[string]interface{}, error) {
	res, err := i.es.Client.Search(
		i.es.Client.Search.WithContext(ctx),
		i.es.Client.Search.WithIndex(i.index),
		i.es.Client.Search.WithQuery(query),
	)
	if err != nil {
		return nil, fmt.Errorf("decision search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("decision search error: %s", res.Status())
	}

	var out map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return out, nil
}
