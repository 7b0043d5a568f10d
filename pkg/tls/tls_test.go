package tls

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Disabled(t *testing.T) {
	cfg, source, err := Load(context.Background(), TLSConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Nil(t, source)
	assert.NoError(t, source.Close())
}
