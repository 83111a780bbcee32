package analytics

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"vibewise_backend/internal/config"
	"vibewise_backend/internal/platform/elasticsearch"
)

const indexTimeout = 5 * time.Second

// Recorder records auth events. Record never fails the caller.
type Recorder interface {
	Record(ctx context.Context, event Event)
	Close()
}

// NewRecorder returns an Elasticsearch-backed recorder, or a no-op one when client is nil.
func NewRecorder(client *elasticsearch.ESClientWrapper, cfg *config.Config, logger *zap.Logger) Recorder {
	if client == nil || client.Client == nil {
		return NopRecorder{}
	}
	return &esRecorder{
		client:    client,
		indexName: cfg.AnalyticsIndexName,
		logger:    logger.Named("AnalyticsRecorder"),
	}
}

// NopRecorder discards every event.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, Event) {}

// Close implements Recorder.
func (NopRecorder) Close() {}

type esRecorder struct {
	client    *elasticsearch.ESClientWrapper
	indexName string
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// Record indexes the event in the background. The request context only
// contributes its values; cancellation of the HTTP request does not drop the event.
func (r *esRecorder) Record(ctx context.Context, event Event) {
	body, err := EventToDocument(event)
	if err != nil {
		r.logger.Warn("Dropping analytics event", zap.Error(err))
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		indexCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexTimeout)
		defer cancel()

		res, err := esapi.IndexRequest{
			Index: r.indexName,
			Body:  strings.NewReader(body),
		}.Do(indexCtx, r.client.Client)
		if err != nil {
			r.logger.Error("Failed to index analytics event", zap.String("event", event.Name), zap.Error(err))
			return
		}
		defer res.Body.Close()
		if res.IsError() {
			r.logger.Error("Elasticsearch rejected analytics event", zap.String("event", event.Name), zap.String("status", res.Status()))
		}
	}()
}

// Close waits for in-flight events to be indexed.
func (r *esRecorder) Close() {
	r.wg.Wait()
}
