// File: internal/user/store.go
package user

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrDocumentNotFound is returned by Get and Update for a missing document.
var ErrDocumentNotFound = errors.New("document not found")

// Store reads and writes documents by slash-separated path.
// A value of firestore.ServerTimestamp is replaced by the commit time.
type Store interface {
	Get(ctx context.Context, path string) (map[string]interface{}, error)
	Set(ctx context.Context, path string, data map[string]interface{}) error
	Update(ctx context.Context, path string, fields map[string]interface{}) error
}

type firestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Store over a Firestore client.
func NewFirestoreStore(client *firestore.Client) Store {
	return &firestoreStore{client: client}
}

// doc resolves path; Doc returns nil for paths with an odd number of segments.
func (s *firestoreStore) doc(path string) (*firestore.DocumentRef, error) {
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("invalid document path %q", path)
	}
	return ref, nil
}

// Get retrieves the document at path.
func (s *firestoreStore) Get(ctx context.Context, path string) (map[string]interface{}, error) {
	doc, err := s.doc(path)
	if err != nil {
		return nil, err
	}
	snap, err := doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s: %w", path, ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	return snap.Data(), nil
}

// Set overwrites the document at path.
func (s *firestoreStore) Set(ctx context.Context, path string, data map[string]interface{}) error {
	doc, err := s.doc(path)
	if err != nil {
		return err
	}
	if _, err := doc.Set(ctx, data); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// Update changes the given fields of an existing document.
func (s *firestoreStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	doc, err := s.doc(path)
	if err != nil {
		return err
	}
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := doc.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s: %w", path, ErrDocumentNotFound)
		}
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return nil
}
