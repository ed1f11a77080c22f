// Package audit records state-changing console actions that pass through the
// gateway and fans them out to log, memory or Kafka sinks.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"rbconsole/internal/platform/metrics"
)

// ErrBufferFull is returned by Emit in async mode when the queue is full.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher stamps events and hands them to a Store, either inline or
// through a bounded queue drained by a Worker.
type Publisher struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	bufferSize int
	queue      chan Event
	done       chan struct{}
	closeOnce  sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer queues up to n events instead of appending inline.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) { p.bufferSize = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.bufferSize > 0 {
		p.queue = make(chan Event, p.bufferSize)
		p.done = make(chan struct{})
		w := NewWorker(store, p.queue, p.report)
		go func() {
			defer close(p.done)
			w.Run(context.Background())
		}()
	}
	return p
}

// Emit records e. In async mode a full queue fails fast with ErrBufferFull,
// or with the context error if ctx is already done.
func (p *Publisher) Emit(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = p.now()
	}
	if e.Category == "" {
		e.Category = CategoryFor(e.Action)
	}

	if p.queue == nil {
		err := p.store.Append(ctx, e)
		p.report(ctx, e, err)
		return err
	}

	select {
	case p.queue <- e:
		return nil
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p.count("dropped")
	p.logger.WarnContext(ctx, "audit event dropped", "action", e.Action, "request_id", e.RequestID)
	return ErrBufferFull
}

// Close drains the queue. Emit must not be called afterwards.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.queue != nil {
			close(p.queue)
			<-p.done
		}
	})
}

func (p *Publisher) report(ctx context.Context, e Event, err error) {
	if err != nil {
		p.count("error")
		p.logger.ErrorContext(ctx, "audit append failed",
			"sink", p.store.Name(),
			"action", e.Action,
			"request_id", e.RequestID,
			"error", err,
		)
		return
	}
	p.count("ok")
}

func (p *Publisher) count(outcome string) {
	if p.metrics != nil {
		p.metrics.IncrementAuditEvent(p.store.Name(), outcome)
	}
}
