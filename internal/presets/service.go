// Package presets manages saved result filters. Presets live only on the
// console side; the backend never sees them.
package presets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"rbconsole/internal/listing"
	"rbconsole/internal/storage"
	"rbconsole/pkg/platform/sentinel"
)

// ErrEmptyName is returned when saving a preset without a name.
var ErrEmptyName = errors.New("preset name is required")

// Store is the slice of storage.Store the service needs.
type Store interface {
	Presets(ctx context.Context) ([]storage.PresetRecord, error)
	SetPresets(ctx context.Context, presets []storage.PresetRecord) error
}

// Preset is a named results filter. Only status, severity, cloud and
// framework are captured.
type Preset struct {
	Name     string
	Filter   listing.Filter
	LastUsed time.Time
}

// Service saves, applies and lists presets ordered by last use, newest first.
type Service struct {
	store  Store
	clock  func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		clock:  time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Save stores f under name, replacing any preset with the same name.
func (s *Service) Save(ctx context.Context, name string, f listing.Filter) (Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Preset{}, ErrEmptyName
	}
	records, err := s.store.Presets(ctx)
	if err != nil {
		return Preset{}, fmt.Errorf("load presets: %w", err)
	}

	rec := storage.PresetRecord{
		Name:      name,
		Status:    f.Status,
		Severity:  f.Severity,
		Cloud:     f.Cloud,
		Framework: f.Framework,
		LastUsed:  s.clock().UnixMilli(),
	}
	updated := append([]storage.PresetRecord{rec}, without(records, name)...)
	if err := s.persist(ctx, updated); err != nil {
		return Preset{}, err
	}
	s.logger.DebugContext(ctx, "preset saved", "name", name)
	return toPreset(rec), nil
}

// Apply returns the saved filter for name and marks it as just used.
func (s *Service) Apply(ctx context.Context, name string) (listing.Filter, error) {
	records, err := s.store.Presets(ctx)
	if err != nil {
		return listing.Filter{}, fmt.Errorf("load presets: %w", err)
	}
	for i := range records {
		if records[i].Name != name {
			continue
		}
		records[i].LastUsed = s.clock().UnixMilli()
		// persist reorders records in place
		applied := records[i]
		if err := s.persist(ctx, records); err != nil {
			return listing.Filter{}, err
		}
		return toPreset(applied).Filter, nil
	}
	return listing.Filter{}, fmt.Errorf("preset %q: %w", name, sentinel.ErrNotFound)
}

// List returns presets newest first.
func (s *Service) List(ctx context.Context) ([]Preset, error) {
	records, err := s.store.Presets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	sortByLastUsed(records)
	out := make([]Preset, 0, len(records))
	for _, r := range records {
		out = append(out, toPreset(r))
	}
	return out, nil
}

// Delete removes name. Unknown names return sentinel.ErrNotFound.
func (s *Service) Delete(ctx context.Context, name string) error {
	records, err := s.store.Presets(ctx)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	kept := without(records, name)
	if len(kept) == len(records) {
		return fmt.Errorf("preset %q: %w", name, sentinel.ErrNotFound)
	}
	return s.persist(ctx, kept)
}

func (s *Service) persist(ctx context.Context, records []storage.PresetRecord) error {
	sortByLastUsed(records)
	if err := s.store.SetPresets(ctx, records); err != nil {
		return fmt.Errorf("save presets: %w", err)
	}
	return nil
}

func without(records []storage.PresetRecord, name string) []storage.PresetRecord {
	out := make([]storage.PresetRecord, 0, len(records))
	for _, r := range records {
		if r.Name != name {
			out = append(out, r)
		}
	}
	return out
}

func sortByLastUsed(records []storage.PresetRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastUsed > records[j].LastUsed
	})
}

func toPreset(r storage.PresetRecord) Preset {
	return Preset{
		Name: r.Name,
		Filter: listing.Filter{
			Status:    r.Status,
			Severity:  r.Severity,
			Cloud:     r.Cloud,
			Framework: r.Framework,
		},
		LastUsed: time.UnixMilli(r.LastUsed),
	}
}
