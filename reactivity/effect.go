package reactivity

import "fmt"

// Effect is a re-runnable unit of work. Running it re-collects its
// subscriptions from scratch, so conditional reads shed stale dependencies
// on every run.
type Effect struct {
	id     uint64
	rs     *ReactiveSystem
	fn     func() any
	active bool

	// deps mirrors membership: e ∈ d.subs ⇔ d ∈ e.deps.
	deps []*dep

	lazy         bool
	scheduler    func(*Effect)
	onTrack      func(TrackEvent)
	onTrigger    func(TriggerEvent)
	onStop       func()
	allowRecurse bool
}

// EffectOption configures an effect at construction.
type EffectOption func(*Effect)

// Lazy defers the initial run; the host runs the effect itself.
func Lazy() EffectOption {
	return func(e *Effect) { e.lazy = true }
}

// WithScheduler routes every trigger of the effect through fn instead of
// running it inline. The scheduler decides when (or whether) to call Run.
func WithScheduler(fn func(*Effect)) EffectOption {
	return func(e *Effect) { e.scheduler = fn }
}

// OnTrack installs a debug callback fired once per newly tracked access.
func OnTrack(fn func(TrackEvent)) EffectOption {
	return func(e *Effect) { e.onTrack = fn }
}

// OnTrigger installs a debug callback fired once per fired subscription.
func OnTrigger(fn func(TriggerEvent)) EffectOption {
	return func(e *Effect) { e.onTrigger = fn }
}

// OnStop installs a finalizer invoked by Stop.
func OnStop(fn func()) EffectOption {
	return func(e *Effect) { e.onStop = fn }
}

// AllowRecurse opts the effect into re-entrant self-triggering. Off by
// default, which breaks the write-during-compute loop.
func AllowRecurse() EffectOption {
	return func(e *Effect) { e.allowRecurse = true }
}

// NewEffect builds an effect over fn and, unless lazy, runs it once.
func NewEffect(rs *ReactiveSystem, fn func() any, opts ...EffectOption) *Effect {
	rs.nextEffectID++
	e := &Effect{
		id:     rs.nextEffectID,
		rs:     rs,
		fn:     fn,
		active: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.lazy {
		e.Run()
	}
	return e
}

// ID is the effect's creation-ordered identifier. Trigger runs scheduled
// effects in ascending ID order.
func (e *Effect) ID() uint64 {
	return e.id
}

// Run executes the effect body under a fresh tracking frame.
//
// Inactive effects still compute on direct invocation (unless they carry a
// scheduler) but do not participate in tracking. An effect already on the
// active stack does nothing, which is the guard against infinite recursion,
// unless it opted into AllowRecurse, in which case the nested run executes.
func (e *Effect) Run() any {
	if !e.active {
		if e.scheduler != nil {
			return nil
		}
		return e.fn()
	}
	rs := e.rs
	if rs.onStack(e) && !e.allowRecurse {
		return nil
	}

	e.cleanup()

	rs.effectStack = append(rs.effectStack, e)
	rs.trackStack = append(rs.trackStack, rs.shouldTrack)
	rs.shouldTrack = true

	defer func() {
		rs.effectStack = rs.effectStack[:len(rs.effectStack)-1]
		rs.shouldTrack = rs.trackStack[len(rs.trackStack)-1]
		rs.trackStack = rs.trackStack[:len(rs.trackStack)-1]

		if r := recover(); r != nil {
			// Stacks are restored either way; the subscriptions
			// collected before the failure stay as they are and the
			// next successful run corrects them.
			if rs.onError != nil {
				rs.onError(e, recoveredError(r))
				return
			}
			panic(r)
		}
	}()

	return e.fn()
}

// cleanup detaches every subscription edge, both sides.
func (e *Effect) cleanup() {
	for _, d := range e.deps {
		d.subs.Remove(e)
	}
	e.deps = e.deps[:0]
}

// Stop detaches the effect from the graph. Idempotent. After Stop no further
// triggers reach the effect; a direct Run still computes fn when there is no
// scheduler.
func Stop(e *Effect) {
	if !e.active {
		return
	}
	e.cleanup()
	if e.onStop != nil {
		e.onStop()
	}
	e.active = false
}

func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("effect panic: %v", r)
}
