package autocomplete

import (
	"context"
	"sync"
)

// Tracker keeps one live query per widget. Starting a query cancels the
// widget's previous one, so a slow response can never overwrite a newer
// suggestion list.
//
// Queries may carry the sequence number the browser assigned when the user
// typed. A query whose sequence is not above the widget's highest one is
// stale on arrival, even when it reaches the server last.
type Tracker struct {
	mu      sync.Mutex
	next    uint64
	widgets map[string]*generation
}

type generation struct {
	n   uint64
	seq uint64
	// cancel is nil once the generation finished; the entry then only
	// remembers seq
	cancel context.CancelFunc
}

// Ticket identifies one query generation of a widget
type Ticket struct {
	tracker *Tracker
	widget  string
	n       uint64
	cancel  context.CancelFunc
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{widgets: make(map[string]*generation)}
}

// Begin starts a new generation for widget and cancels the one in flight.
// The returned context is cancelled when a newer generation begins or the
// ticket is released.
func (t *Tracker) Begin(ctx context.Context, widget string) (context.Context, *Ticket) {
	return t.BeginSeq(ctx, widget, 0)
}

// BeginSeq is Begin for a query numbered seq by the client. A zero seq means
// unnumbered and orders by arrival. A numbered query older than the widget's
// latest numbered one gets a ticket that is already stale and a cancelled
// context; the live generation is left alone.
func (t *Tracker) BeginSeq(ctx context.Context, widget string, seq uint64) (context.Context, *Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	n := t.next
	ticket := &Ticket{tracker: t, widget: widget, n: n, cancel: cancel}

	prev, ok := t.widgets[widget]
	if ok && seq != 0 && prev.seq >= seq {
		cancel()
		return ctx, ticket
	}

	if ok && prev.cancel != nil {
		prev.cancel()
	}
	if ok && seq == 0 {
		seq = prev.seq
	}
	t.widgets[widget] = &generation{n: n, seq: seq, cancel: cancel}

	return ctx, ticket
}

// Current reports whether no newer generation has begun for the widget
func (tk *Ticket) Current() bool {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	gen, ok := tk.tracker.widgets[tk.widget]
	return ok && gen.n == tk.n
}

// Generation returns the ticket's generation number. Numbers grow across
// all widgets of the tracker and are never reused.
func (tk *Ticket) Generation() uint64 {
	return tk.n
}

// Release frees the ticket's context. A current unnumbered widget entry is
// dropped; a numbered one keeps its sequence so late older queries stay
// stale.
func (tk *Ticket) Release() {
	tk.cancel()

	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	gen, ok := tk.tracker.widgets[tk.widget]
	if !ok || gen.n != tk.n {
		return
	}
	if gen.seq == 0 {
		delete(tk.tracker.widgets, tk.widget)
		return
	}
	gen.cancel = nil
}

// Len returns the number of widgets with a query in flight
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, gen := range t.widgets {
		if gen.cancel != nil {
			n++
		}
	}
	return n
}
