package console

import (
	"context"
	"sync"

	"rbconsole/internal/listing"
	"rbconsole/internal/models"
)

// pagedList is the filter and page-number state shared by list pages.
type pagedList[T any] struct {
	fetch func(ctx context.Context, q listing.Query) (models.Page[T], error)

	mu    sync.Mutex
	query listing.Query
	items []T
}

func newPagedList[T any](fetch func(ctx context.Context, q listing.Query) (models.Page[T], error)) *pagedList[T] {
	return &pagedList[T]{fetch: fetch, query: listing.NewQuery(listing.Filter{})}
}

// load fetches q and commits it only on success.
func (l *pagedList[T]) load(ctx context.Context, q listing.Query) error {
	page, err := l.fetch(ctx, q)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.query, l.items = q, page.Items
	l.mu.Unlock()
	return nil
}

func (l *pagedList[T]) current() listing.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

func (l *pagedList[T]) next() listing.Query {
	q := l.current()
	q.Page = listing.Pager{Page: q.Page}.Next().Page
	return q
}

// prev reports false on the first page.
func (l *pagedList[T]) prev() (listing.Query, bool) {
	q := l.current()
	pager := listing.Pager{Page: q.Page}
	if pager.PrevDisabled() {
		return q, false
	}
	q.Page = pager.Prev().Page
	return q, true
}

func (l *pagedList[T]) snapshot() (listing.Query, []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query, l.items
}
