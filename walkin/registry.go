package walkin

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Factory builds the controller of a terminal.
type Factory func(terminal string) *Controller

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIdleTimeout drops terminals not seen for d. Zero keeps them forever.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idle = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

type terminalSession struct {
	flow *Controller
	seen time.Time
}

// Registry holds one Controller per front-desk terminal. An evicted terminal gets a fresh
// controller on its next request, which recovers from the snapshot store.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*terminalSession
	factory   Factory
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewRegistry(factory Factory, opts ...RegistryOption) *Registry {
	r := &Registry{sessions: make(map[string]*terminalSession), factory: factory, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Session returns the terminal's controller positioned at path.
func (r *Registry) Session(ctx context.Context, terminal, path string) (*Controller, Step, string) {
	terminal = strings.TrimSpace(terminal)

	r.mu.Lock()
	now := r.now()
	r.sweep(now)
	s, ok := r.sessions[terminal]
	if !ok {
		s = &terminalSession{flow: r.factory(terminal)}
		r.sessions[terminal] = s
	}
	s.seen = now
	c := s.flow
	r.mu.Unlock()

	step, redirect := c.Mount(ctx, path)
	return c, step, redirect
}

// Len is the number of known terminals.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweep runs at most once per sweepInterval and skips terminals with a submission in flight.
func (r *Registry) sweep(now time.Time) {
	if r.idle <= 0 || now.Sub(r.lastSweep) < r.sweepInterval() {
		return
	}
	r.lastSweep = now
	for terminal, s := range r.sessions {
		if now.Sub(s.seen) >= r.idle && !s.flow.Submitting() {
			delete(r.sessions, terminal)
		}
	}
}

func (r *Registry) sweepInterval() time.Duration {
	if r.idle < time.Minute {
		return r.idle
	}
	return time.Minute
}
