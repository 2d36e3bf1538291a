package booking

import (
	"time"
)

// Engine bundles the slot generator, the booking validator and the
// appointment lifecycle manager over one Store. Every call takes an explicit
// business ID; there is no ambient tenant. Safe for concurrent use.
type Engine struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

type Option func(*Engine)

// WithNotifier wires post-commit event delivery (e-mail, etc.).
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithClock replaces time.Now, used by tests to pin "now".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		notifier: NopNotifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
