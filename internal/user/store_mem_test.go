package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
)

// memoryStore is an in-process Store used by the tests.
type memoryStore struct {
	mu      sync.Mutex
	docs    map[string]map[string]interface{}
	sets    []string
	failGet map[string]error
	failSet map[string]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		docs:    map[string]map[string]interface{}{},
		failGet: map[string]error{},
		failSet: map[string]error{},
	}
}

func resolve(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if v == firestore.ServerTimestamp {
			v = time.Now().UTC()
		}
		out[k] = v
	}
	return out
}

func (m *memoryStore) Get(_ context.Context, path string) (map[string]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failGet[path]; err != nil {
		return nil, err
	}
	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrDocumentNotFound)
	}
	return doc, nil
}

func (m *memoryStore) Set(_ context.Context, path string, data map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failSet[path]; err != nil {
		return err
	}
	m.sets = append(m.sets, path)
	m.docs[path] = resolve(data)
	return nil
}

func (m *memoryStore) Update(_ context.Context, path string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failSet[path]; err != nil {
		return err
	}
	doc, ok := m.docs[path]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrDocumentNotFound)
	}
	for k, v := range resolve(fields) {
		doc[k] = v
	}
	return nil
}

var errUnavailable = errors.New("firestore unavailable")
