package console

import "sync"

// Notifier shows transient messages to the operator.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Notice is one recorded message.
type Notice struct {
	Error   bool
	Message string
}

// Recorder keeps notices in memory. JSON output mode uses it to attach
// notices to the payload instead of printing them.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Info(msg string)  { r.add(Notice{Message: msg}) }
func (r *Recorder) Error(msg string) { r.add(Notice{Error: true, Message: msg}) }

func (r *Recorder) add(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Messages returns just the text of recorded notices.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Message)
	}
	return out
}

type discard struct{}

func (discard) Info(string)  {}
func (discard) Error(string) {}
