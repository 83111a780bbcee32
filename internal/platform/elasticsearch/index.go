package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// authEventsMapping is the mapping for the auth analytics index.
func authEventsMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"event":       map[string]interface{}{"type": "keyword"},
				"uid":         map[string]interface{}{"type": "keyword"},
				"method":      map[string]interface{}{"type": "keyword"},
				"platform":    map[string]interface{}{"type": "keyword"},
				"is_mobile":   map[string]interface{}{"type": "boolean"},
				"is_new_user": map[string]interface{}{"type": "boolean"},
				"device_id":   map[string]interface{}{"type": "keyword"},
				"occurred_at": map[string]interface{}{"type": "date"},
			},
		},
	}
	b, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling auth events mapping to JSON: %w", err)
	}
	return string(b), nil
}

// CreateAuthEventsIndexIfNotExists creates the analytics index with its mapping
// if it does not already exist.
func CreateAuthEventsIndexIfNotExists(ctx context.Context, client *ESClientWrapper, indexName string, logger *zap.Logger) error {
	log := logger.Named("elasticsearch_index_setup").With(zap.String("index_name", indexName))

	res, err := esapi.IndicesExistsRequest{Index: []string{indexName}}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error checking if index %s exists: %w", indexName, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		log.Info("Auth events index already exists")
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("error checking if index %s exists: status %s", indexName, res.Status())
	}

	mappingJSON, err := authEventsMapping()
	if err != nil {
		return err
	}

	createRes, err := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mappingJSON),
	}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error creating index %s: %w", indexName, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		var errorBody map[string]interface{}
		if err := json.NewDecoder(createRes.Body).Decode(&errorBody); err == nil {
			log.Error("Failed to create auth events index", zap.String("status", createRes.Status()), zap.Any("error_details", errorBody))
		}
		return fmt.Errorf("failed to create index %s: status %s", indexName, createRes.Status())
	}

	log.Info("Auth events index created")
	return nil
}
