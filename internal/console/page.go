// Package console holds the page controllers of the terminal console. Each
// controller owns its local page state, calls the compliance API through a
// narrow port and reports outcomes as toasts. A rejected session marks every
// page stale; stale pages refuse further actions and renders.
package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"rbconsole/internal/apiclient"
)

// Deps are shared by every controller.
type Deps struct {
	Session  *Session
	Notifier Notifier
	Logger   *slog.Logger
}

type page struct {
	name    string
	session *Session
	guard   *Guard
	notify  Notifier
	logger  *slog.Logger
}

func newPage(name string, d Deps) page {
	p := page{
		name:    name,
		session: d.Session,
		guard:   NewGuard(),
		notify:  d.Notifier,
		logger:  d.Logger,
	}
	if p.session == nil {
		p.session = NewSession(nil, nil)
	}
	if p.notify == nil {
		p.notify = discard{}
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// run executes one guarded action. A 401 surfacing from fn marks the
// session stale even when the client hook was not wired. Other failures,
// except form errors shown inline, become an error toast.
func (p *page) run(ctx context.Context, action string, fn func(ctx context.Context) error) error {
	if err := p.session.Check(); err != nil {
		return err
	}
	err := p.guard.Do(action, func() error { return fn(ctx) })
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBusy):
		p.logger.DebugContext(ctx, "action ignored, already running", "page", p.name, "action", action)
		return err
	case errors.Is(err, apiclient.ErrUnauthorized):
		p.session.Unauthorized(ctx)
		return ErrStale
	}
	p.logger.DebugContext(ctx, "action failed", "page", p.name, "action", action, "error", err)
	var formErr *FormError
	if !errors.As(err, &formErr) {
		p.notify.Error(failed(action, err))
	}
	return err
}

func failed(action string, err error) string {
	if action == "" {
		return err.Error()
	}
	return strings.ToUpper(action[:1]) + action[1:] + " failed: " + err.Error()
}

// view guards every render.
func (p *page) view() error {
	return p.session.Check()
}

// Busy reports whether action is in flight on this page.
func (p *page) Busy(action string) bool {
	return p.guard.Busy(action)
}
