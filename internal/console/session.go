package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
)

// ErrStale is returned by every view and action once the session was
// rejected. The operator has to log in again.
var ErrStale = errors.New("session expired, log in again")

// Session tracks whether the backend rejected the current credentials.
// Unauthorized is meant to be wired as the API client's 401 hook.
type Session struct {
	stale    atomic.Bool
	redirect func(ctx context.Context)
	logger   *slog.Logger
}

// NewSession builds a session; redirect runs once on the first rejection.
func NewSession(redirect func(ctx context.Context), logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{redirect: redirect, logger: logger}
}

// Unauthorized marks every page stale and sends the operator to login.
func (s *Session) Unauthorized(ctx context.Context) {
	if !s.stale.CompareAndSwap(false, true) {
		return
	}
	s.logger.InfoContext(ctx, "session rejected, discarding page state")
	if s.redirect != nil {
		s.redirect(ctx)
	}
}

func (s *Session) Stale() bool {
	return s.stale.Load()
}

// Check returns ErrStale once the session was rejected.
func (s *Session) Check() error {
	if s.Stale() {
		return ErrStale
	}
	return nil
}

// Reset clears the stale mark after a successful login.
func (s *Session) Reset() {
	s.stale.Store(false)
}
