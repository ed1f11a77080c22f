package console

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
)

// Drawer lazily fetches the detail of one row. Nothing is cached: closing
// discards the detail and reopening fetches again.
type Drawer[T any] struct {
	fetch func(ctx context.Context, id string) (T, error)

	mu      sync.Mutex
	id      string
	loading bool
	detail  *T
}

func NewDrawer[T any](fetch func(ctx context.Context, id string) (T, error)) *Drawer[T] {
	return &Drawer[T]{fetch: fetch}
}

// Open fetches the detail for id. A failed fetch leaves the drawer closed.
func (d *Drawer[T]) Open(ctx context.Context, id string) (T, error) {
	d.mu.Lock()
	d.id, d.loading, d.detail = id, true, nil
	d.mu.Unlock()

	detail, err := d.fetch(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.id != id {
		// closed or reopened on another row meanwhile
		return detail, err
	}
	d.loading = false
	if err != nil {
		d.id = ""
		return detail, err
	}
	d.detail = &detail
	return detail, nil
}

func (d *Drawer[T]) Close() {
	d.mu.Lock()
	d.id, d.loading, d.detail = "", false, nil
	d.mu.Unlock()
}

func (d *Drawer[T]) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Detail returns the open detail, if any.
func (d *Drawer[T]) Detail() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detail == nil {
		var zero T
		return zero, false
	}
	return *d.detail, true
}

// Pretty renders a nested evidence or fix payload as indented JSON. Payloads
// that are not valid JSON are returned as-is.
func Pretty(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
