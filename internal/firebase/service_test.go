package firebase

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vibewise_backend/internal/config"
)

func TestCredentialOptions(t *testing.T) {
	logger := zap.NewNop()

	opts, err := credentialOptions(&config.Config{}, logger)
	require.NoError(t, err)
	assert.Empty(t, opts, "ADC needs no explicit option")

	opts, err = credentialOptions(&config.Config{FirebaseServiceAccountKeyPath: "./keys/../keys/sa.json"}, logger)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	encoded := base64.StdEncoding.EncodeToString([]byte(`{"type":"service_account"}`))
	opts, err = credentialOptions(&config.Config{FirebaseServiceAccountJSONBase64: encoded}, logger)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = credentialOptions(&config.Config{FirebaseServiceAccountJSONBase64: "%%%not-base64"}, logger)
	assert.Error(t, err)
}

func TestVerifyIDToken_EmptyToken(t *testing.T) {
	svc := &FirebaseService{logger: zap.NewNop()}
	_, err := svc.VerifyIDToken(context.Background(), "")
	assert.Error(t, err)
}
