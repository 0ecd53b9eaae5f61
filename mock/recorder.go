package mock

import (
	"context"
	"sync"

	"github.com/daniel-torresc/emerald-backend-sub002/domain/audit"
)

// Recorder captures audit events synchronously so tests can assert on them
// without waiting on a background worker.
type Recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(ctx context.Context, e audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]audit.Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Last returns the most recent event. It panics when nothing was recorded;
// tests should check Len first.
func (r *Recorder) Last() audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

var _ audit.Recorder = (*Recorder)(nil)
