package main

import (
	"context"
	"errors"
	"testing"

	"vibewise_backend/internal/user"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeLister struct {
	users []*fbauth.UserRecord
	err   error
}

func (f fakeLister) ForEachUser(_ context.Context, fn func(*fbauth.UserRecord) error) error {
	for _, u := range f.users {
		if err := fn(u); err != nil {
			return err
		}
	}
	return f.err
}

type fakeBootstrapper struct {
	existing map[string]bool
	failing  map[string]bool
	seen     []user.Profile
}

func (f *fakeBootstrapper) EnsureUserDocument(_ context.Context, p user.Profile) (bool, error) {
	f.seen = append(f.seen, p)
	if f.failing[p.UID] {
		return false, errors.New("firestore unavailable")
	}
	return !f.existing[p.UID], nil
}

func record(uid, email string) *fbauth.UserRecord {
	return &fbauth.UserRecord{UserInfo: &fbauth.UserInfo{UID: uid, Email: email, DisplayName: "User " + uid}}
}

func TestRunUserBackfill_CountsCreatedAndExisting(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	lister := fakeLister{users: []*fbauth.UserRecord{record("a", "a@x.io"), record("b", "b@x.io"), nil, record("c", "c@x.io")}}
	boot := &fakeBootstrapper{existing: map[string]bool{"b": true}}

	stats, err := runUserBackfill(context.Background(), lister, boot, zap.New(core), 2)
	require.NoError(t, err)
	assert.Equal(t, backfillStats{Scanned: 3, Created: 2}, stats)
	require.Len(t, boot.seen, 3)
	assert.Equal(t, user.Profile{UID: "a", Email: "a@x.io", DisplayName: "User a"}, boot.seen[0])
	assert.Equal(t, 1, logs.FilterMessage("Backfill progress").Len())
}

func TestRunUserBackfill_ContinuesPastFailures(t *testing.T) {
	lister := fakeLister{users: []*fbauth.UserRecord{record("a", ""), record("b", "")}}
	boot := &fakeBootstrapper{failing: map[string]bool{"a": true}}

	stats, err := runUserBackfill(context.Background(), lister, boot, zap.NewNop(), 0)
	require.Error(t, err)
	assert.Equal(t, backfillStats{Scanned: 2, Created: 1, Failed: 1}, stats)
}

func TestRunUserBackfill_ListingError(t *testing.T) {
	lister := fakeLister{users: []*fbauth.UserRecord{record("a", "")}, err: errors.New("quota exceeded")}

	stats, err := runUserBackfill(context.Background(), lister, &fakeBootstrapper{}, zap.NewNop(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 1, stats.Created)
}
