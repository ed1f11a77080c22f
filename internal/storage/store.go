package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"rbconsole/pkg/platform/sentinel"
)

// Keys as the browser console named them, kept so migrated state lines up.
const (
	KeyToken    = "rb.jwt"
	KeyTheme    = "rb.theme"
	KeyDarkMode = "rb.darkMode"
	KeyPresets  = "rb.resultPresets"
)

// AllKeys lists every key the store manages.
var AllKeys = []string{KeyToken, KeyTheme, KeyDarkMode, KeyPresets}

// SchemaVersion is written into every envelope.
const SchemaVersion = 1

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

// PresetRecord is the stored form of a saved results filter.
// LastUsed is unix milliseconds.
type PresetRecord struct {
	Name      string `json:"name"`
	Status    string `json:"status,omitempty"`
	Severity  string `json:"severity,omitempty"`
	Cloud     string `json:"cloud,omitempty"`
	Framework string `json:"framework,omitempty"`
	LastUsed  int64  `json:"lastUsed"`
}

// Store gives typed Get/Set/Clear access to the console keys.
// Missing keys read as zero values, never as errors.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Backend exposes the underlying backend.
func (s *Store) Backend() Backend { return s.backend }

// Close releases the backend.
func (s *Store) Close() error { return s.backend.Close() }

// Token returns the stored access token, or "".
func (s *Store) Token(ctx context.Context) (string, error) {
	var token string
	err := s.read(ctx, KeyToken, &token, func(raw []byte) (any, error) {
		// the browser stored the bare token string
		return strings.Trim(strings.TrimSpace(string(raw)), `"`), nil
	})
	return token, err
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.write(ctx, KeyToken, token)
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.backend.Delete(ctx, KeyToken)
}

// Theme returns the stored theme name, or "".
func (s *Store) Theme(ctx context.Context) (string, error) {
	var theme string
	err := s.read(ctx, KeyTheme, &theme, func(raw []byte) (any, error) {
		return strings.Trim(strings.TrimSpace(string(raw)), `"`), nil
	})
	return theme, err
}

func (s *Store) SetTheme(ctx context.Context, theme string) error {
	return s.write(ctx, KeyTheme, theme)
}

func (s *Store) ClearTheme(ctx context.Context) error {
	return s.backend.Delete(ctx, KeyTheme)
}

// DarkMode reports the dark mode flag.
func (s *Store) DarkMode(ctx context.Context) (bool, error) {
	var dark bool
	err := s.read(ctx, KeyDarkMode, &dark, func(raw []byte) (any, error) {
		// the browser wrote "1" for on and "" for off
		v := strings.Trim(strings.TrimSpace(string(raw)), `"`)
		if v == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("unrecognized dark mode value %q", v)
		}
		return b, nil
	})
	return dark, err
}

func (s *Store) SetDarkMode(ctx context.Context, dark bool) error {
	return s.write(ctx, KeyDarkMode, dark)
}

func (s *Store) ClearDarkMode(ctx context.Context) error {
	return s.backend.Delete(ctx, KeyDarkMode)
}

// Presets returns the saved presets in stored order.
func (s *Store) Presets(ctx context.Context) ([]PresetRecord, error) {
	var presets []PresetRecord
	err := s.read(ctx, KeyPresets, &presets, func(raw []byte) (any, error) {
		var legacy []PresetRecord
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy presets: %w", err)
		}
		return legacy, nil
	})
	return presets, err
}

func (s *Store) SetPresets(ctx context.Context, presets []PresetRecord) error {
	if presets == nil {
		presets = []PresetRecord{}
	}
	return s.write(ctx, KeyPresets, presets)
}

func (s *Store) ClearPresets(ctx context.Context) error {
	return s.backend.Delete(ctx, KeyPresets)
}

// ClearAll removes every managed key.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.backend.Delete(ctx, AllKeys...)
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{V: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// read decodes key into dst. Unversioned values go through legacy and are
// rewritten as current envelopes.
func (s *Store) read(ctx context.Context, key string, dst any, legacy func([]byte) (any, error)) error {
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}

	data, versioned, err := unwrap(raw)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if versioned {
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	}

	migrated, err := legacy(raw)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	// round-trip through JSON so dst gets the migrated value with its own type
	data, err = json.Marshal(migrated)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	if err := s.write(ctx, key, migrated); err != nil {
		s.logger.WarnContext(ctx, "failed to rewrite legacy value", "key", key, "error", err)
	} else {
		s.logger.DebugContext(ctx, "migrated legacy value", "key", key, "version", SchemaVersion)
	}
	return nil
}

// unwrap returns the envelope payload. A value that is not an object with a "v"
// field is legacy; an envelope with another version is rejected.
func unwrap(raw []byte) (json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false, nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, false, nil
	}
	rawV, ok := probe["v"]
	if !ok {
		return nil, false, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false, fmt.Errorf("%w: malformed envelope %s", sentinel.ErrSchemaVersion, rawV)
	}
	if env.V != SchemaVersion {
		return nil, false, fmt.Errorf("%w: got v=%d, want v=%d", sentinel.ErrSchemaVersion, env.V, SchemaVersion)
	}
	return env.Data, true, nil
}
