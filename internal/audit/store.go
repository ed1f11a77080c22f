package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"rbconsole/internal/platform/kafka"
)

// Store is an append-only audit sink.
type Store interface {
	Name() string
	Append(ctx context.Context, event Event) error
}

// MemoryStore keeps events in process. Used by tests and when no broker is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// List returns events in append order.
func (s *MemoryStore) List() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// LogStore writes events to a structured logger.
type LogStore struct {
	logger *slog.Logger
}

func NewLogStore(logger *slog.Logger) *LogStore {
	return &LogStore{logger: logger}
}

func (s *LogStore) Name() string { return "log" }

func (s *LogStore) Append(ctx context.Context, e Event) error {
	s.logger.InfoContext(ctx, "audit",
		"audit_id", e.ID,
		"category", e.Category,
		"action", e.Action,
		"route", e.Route,
		"status", e.Status,
		"subject", e.Subject,
		"request_id", e.RequestID,
		"client_ip", e.ClientIP,
		"browser", e.Browser,
		"os", e.OS,
	)
	return nil
}

// Producer is the slice of the Kafka producer the audit sink needs.
type Producer interface {
	Publish(ctx context.Context, key, value []byte) error
}

var _ Producer = (*kafka.Producer)(nil)

// KafkaStore publishes JSON events keyed by request id so retries of one
// request land on one partition.
type KafkaStore struct {
	producer Producer
}

func NewKafkaStore(producer Producer) *KafkaStore {
	return &KafkaStore{producer: producer}
}

func (s *KafkaStore) Name() string { return "kafka" }

func (s *KafkaStore) Append(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	key := e.RequestID
	if key == "" {
		key = e.ID
	}
	return s.producer.Publish(ctx, []byte(key), value)
}

// MultiStore appends to every sink and joins their errors.
type MultiStore []Store

func (m MultiStore) Name() string { return "multi" }

func (m MultiStore) Append(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, e); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
