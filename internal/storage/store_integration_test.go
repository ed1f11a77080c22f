//go:build integration

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbconsole/pkg/testutil/containers"
)

func TestRedisBackendIntegration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	backendContract(t, NewRedisBackend(rc.Client, "it"))

	// namespaces do not collide
	ctx := context.Background()
	a := New(NewRedisBackend(rc.Client, "alice"))
	b := New(NewRedisBackend(rc.Client, "bob"))
	require.NoError(t, a.SetToken(ctx, "token-a"))
	tok, err := b.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	keys, err := rc.Client.Keys(ctx, "rbconsole:alice:*").Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"rbconsole:alice:" + KeyToken}, keys)
}

func TestPostgresBackendIntegration(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	b := NewPostgresBackend(pc.DB, "it")
	require.NoError(t, b.EnsureSchema(ctx))
	require.NoError(t, b.EnsureSchema(ctx))
	backendContract(t, b)

	st := New(b)
	presets := []PresetRecord{{Name: "prod", Status: "FAIL", LastUsed: 42}}
	require.NoError(t, st.SetPresets(ctx, presets))
	got, err := st.Presets(ctx)
	require.NoError(t, err)
	assert.Equal(t, presets, got)
}
