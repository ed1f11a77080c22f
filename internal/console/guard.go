package console

import (
	"errors"
	"sync"
)

// ErrBusy is returned when an action is triggered while the same action is
// still in flight. The API is not called.
var ErrBusy = errors.New("action already in progress")

// Guard holds one loading flag per action name.
type Guard struct {
	mu      sync.Mutex
	running map[string]bool
}

func NewGuard() *Guard {
	return &Guard{running: make(map[string]bool)}
}

// Do runs fn unless action is already running.
func (g *Guard) Do(action string, fn func() error) error {
	if !g.acquire(action) {
		return ErrBusy
	}
	defer g.release(action)
	return fn()
}

// Busy reports whether action is in flight.
func (g *Guard) Busy(action string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running[action]
}

func (g *Guard) acquire(action string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running[action] {
		return false
	}
	g.running[action] = true
	return true
}

func (g *Guard) release(action string) {
	g.mu.Lock()
	delete(g.running, action)
	g.mu.Unlock()
}
