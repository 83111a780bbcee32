package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryPendingRedirectStore_ConsumeOnce(t *testing.T) {
	store := NewInMemoryPendingRedirectStore(time.Minute)
	ctx := context.Background()
	want := PendingRedirect{RedirectURI: "vibewise://auth-callback", CodeVerifier: "v", DeviceID: "d"}

	require.NoError(t, store.Save(ctx, "state-1", want))
	assert.Error(t, store.Save(ctx, "state-1", want), "state values are single use")

	got, ok := store.Consume(ctx, "state-1")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = store.Consume(ctx, "state-1")
	assert.False(t, ok)
	_, ok = store.Consume(ctx, "")
	assert.False(t, ok)
}

func TestInMemoryPendingRedirectStore_Expires(t *testing.T) {
	store := NewInMemoryPendingRedirectStore(20 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "state-1", PendingRedirect{}))

	time.Sleep(40 * time.Millisecond)
	_, ok := store.Consume(ctx, "state-1")
	assert.False(t, ok)
}
