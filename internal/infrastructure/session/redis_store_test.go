package session_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rice-stock/internal/infrastructure/session"
)

// Integración: requiere un Redis accesible en REDIS_TEST_ADDR.
func TestRedisStore_GuardarYBorrar(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Integration test - requires REDIS_TEST_ADDR")
	}
	ctx := context.Background()
	s, err := session.NewRedisStore(ctx, addr, "", 0, "test-org")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, true))
	ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Save(ctx, false))
	ok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisStore_SinServidorFalla(t *testing.T) {
	_, err := session.NewRedisStore(context.Background(), "127.0.0.1:1", "", 0, "test-org")
	assert.Error(t, err)
}
