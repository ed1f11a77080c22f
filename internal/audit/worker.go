package audit

import "context"

// Worker drains queued events into a store until the inbox is closed.
type Worker struct {
	store  Store
	inbox  <-chan Event
	report func(ctx context.Context, e Event, err error)
}

func NewWorker(store Store, inbox <-chan Event, report func(ctx context.Context, e Event, err error)) *Worker {
	return &Worker{store: store, inbox: inbox, report: report}
}

// Run appends every event; a failed append is reported and the loop goes on.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		err := w.store.Append(ctx, event)
		if w.report != nil {
			w.report(ctx, event, err)
		}
	}
}
