package elasticsearch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vibewise_backend/internal/config"
)

func TestAuthEventsMapping(t *testing.T) {
	raw, err := authEventsMapping()
	require.NoError(t, err)

	var parsed map[string]map[string]map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	props := parsed["mappings"]["properties"]
	assert.Equal(t, "keyword", props["event"]["type"])
	assert.Equal(t, "date", props["occurred_at"]["type"])
}

func TestNewClient_DisabledWithoutURL(t *testing.T) {
	client, err := NewClient(&config.Config{}, zap.NewNop())
	assert.NoError(t, err)
	assert.Nil(t, client)
}
