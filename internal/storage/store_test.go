package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"rbconsole/internal/platform/config"
	"rbconsole/pkg/platform/sentinel"
)

// backendContract runs the same checks against any Backend.
func backendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Get(ctx, "missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, b.Set(ctx, "a", []byte(`{"v":1,"data":"x"}`)))
	require.NoError(t, b.Set(ctx, "b", []byte("raw")))
	got, err := b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1,"data":"x"}`, string(got))

	require.NoError(t, b.Set(ctx, "a", []byte("overwritten")))
	got, err = b.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "overwritten", string(got))

	require.NoError(t, b.Delete(ctx, "a", "b", "never-set"))
	_, err = b.Get(ctx, "a")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = b.Get(ctx, "b")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, b.Delete(ctx))
}

func TestMemoryBackend(t *testing.T) {
	backendContract(t, NewMemoryBackend())
}

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	b := NewFileBackend(path)
	backendContract(t, b)

	require.NoError(t, b.Set(context.Background(), "k", []byte("v")))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a second backend on the same file sees the write
	got, err := NewFileBackend(path).Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestFileBackendCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := NewFileBackend(path).Get(context.Background(), "k")
	assert.ErrorContains(t, err, "decode state file")
}

type StoreSuite struct {
	suite.Suite
	backend *MemoryBackend
	store   *Store
	ctx     context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.backend = NewMemoryBackend()
	s.store = New(s.backend)
	s.ctx = context.Background()
}

func (s *StoreSuite) raw(key string) string {
	v, err := s.backend.Get(s.ctx, key)
	s.Require().NoError(err)
	return string(v)
}

func (s *StoreSuite) TestMissingKeysReadAsZeroValues() {
	token, err := s.store.Token(s.ctx)
	s.NoError(err)
	s.Empty(token)

	dark, err := s.store.DarkMode(s.ctx)
	s.NoError(err)
	s.False(dark)

	presets, err := s.store.Presets(s.ctx)
	s.NoError(err)
	s.Nil(presets)
}

func (s *StoreSuite) TestTokenRoundTripUsesEnvelope() {
	s.Require().NoError(s.store.SetToken(s.ctx, "abc.def.ghi"))
	s.JSONEq(`{"v":1,"data":"abc.def.ghi"}`, s.raw(KeyToken))

	token, err := s.store.Token(s.ctx)
	s.Require().NoError(err)
	s.Equal("abc.def.ghi", token)

	s.Require().NoError(s.store.ClearToken(s.ctx))
	token, err = s.store.Token(s.ctx)
	s.NoError(err)
	s.Empty(token)
}

func (s *StoreSuite) TestThemeAndDarkMode() {
	s.Require().NoError(s.store.SetTheme(s.ctx, "dark"))
	s.Require().NoError(s.store.SetDarkMode(s.ctx, true))

	theme, err := s.store.Theme(s.ctx)
	s.Require().NoError(err)
	s.Equal("dark", theme)
	dark, err := s.store.DarkMode(s.ctx)
	s.Require().NoError(err)
	s.True(dark)

	s.Require().NoError(s.store.ClearAll(s.ctx))
	theme, err = s.store.Theme(s.ctx)
	s.NoError(err)
	s.Empty(theme)
}

func (s *StoreSuite) TestLegacyValuesAreMigrated() {
	s.Run("bare token", func() {
		s.Require().NoError(s.backend.Set(s.ctx, KeyToken, []byte("legacy-token")))
		token, err := s.store.Token(s.ctx)
		s.Require().NoError(err)
		s.Equal("legacy-token", token)
		s.JSONEq(`{"v":1,"data":"legacy-token"}`, s.raw(KeyToken))
	})

	s.Run("dark mode flag", func() {
		s.Require().NoError(s.backend.Set(s.ctx, KeyDarkMode, []byte("1")))
		dark, err := s.store.DarkMode(s.ctx)
		s.Require().NoError(err)
		s.True(dark)
		s.JSONEq(`{"v":1,"data":true}`, s.raw(KeyDarkMode))

		s.Require().NoError(s.backend.Set(s.ctx, KeyDarkMode, []byte("")))
		dark, err = s.store.DarkMode(s.ctx)
		s.Require().NoError(err)
		s.False(dark)
	})

	s.Run("preset array", func() {
		legacy := `[{"name":"prod","status":"FAIL","severity":"HIGH","cloud":"aws","framework":"CIS","lastUsed":1700000000000}]`
		s.Require().NoError(s.backend.Set(s.ctx, KeyPresets, []byte(legacy)))

		presets, err := s.store.Presets(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(presets, 1)
		s.Equal(PresetRecord{
			Name: "prod", Status: "FAIL", Severity: "HIGH", Cloud: "aws", Framework: "CIS", LastUsed: 1700000000000,
		}, presets[0])
		s.Contains(s.raw(KeyPresets), `"v":1`)
	})
}

func (s *StoreSuite) TestUnknownVersionIsRejected() {
	s.Require().NoError(s.backend.Set(s.ctx, KeyPresets, []byte(`{"v":2,"data":[]}`)))
	_, err := s.store.Presets(s.ctx)
	s.ErrorIs(err, sentinel.ErrSchemaVersion)

	// the value is left untouched
	s.Equal(`{"v":2,"data":[]}`, s.raw(KeyPresets))
}

func (s *StoreSuite) TestCorruptLegacyPresets() {
	s.Require().NoError(s.backend.Set(s.ctx, KeyPresets, []byte(`not-json`)))
	_, err := s.store.Presets(s.ctx)
	s.ErrorContains(err, "decode legacy presets")
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, &config.Profile{Storage: config.StorageMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, st.Backend())

	path := filepath.Join(t.TempDir(), "custom.json")
	st, err = Open(ctx, &config.Profile{Storage: config.StorageFile, StorageDSN: path})
	require.NoError(t, err)
	fb, ok := st.Backend().(*FileBackend)
	require.True(t, ok)
	assert.Equal(t, path, fb.Path())

	_, err = Open(ctx, &config.Profile{Storage: "s3"})
	assert.ErrorContains(t, err, "unknown storage")
}
