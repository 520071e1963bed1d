package reactivity

import (
	"fmt"
	"log"
	"reflect"
)

// OnErrorFunc receives effect body failures when the host installs one at
// system creation. Without it, failures propagate to the caller of Run.
type OnErrorFunc func(from *Effect, err error)

// WarnFunc receives dev diagnostics such as refused readonly mutations.
type WarnFunc func(msg string)

// ReactiveSystem owns every piece of shared reactivity state: the wrap
// registry, the active-effect stack and the tracking-enabled stack. All
// operations on one system must run on a single logical goroutine; hosts
// wanting parallelism run disjoint systems.
type ReactiveSystem struct {
	nextEffectID uint64

	effectStack []*Effect
	shouldTrack bool
	trackStack  []bool

	// adopted maps raw container identity to its store so wrapping the
	// same target twice yields the same proxy handles.
	adopted map[uintptr]any
	skipped map[uintptr]struct{}

	// targetDeps indexes subscriptions for arbitrary Track targets that
	// are not stores, refs or computeds.
	targetDeps map[any]keyDeps

	onError OnErrorFunc
	onWarn  WarnFunc
}

func CreateReactiveSystem(onError OnErrorFunc) *ReactiveSystem {
	rs := &ReactiveSystem{
		shouldTrack: true,
		adopted:     map[uintptr]any{},
		skipped:     map[uintptr]struct{}{},
		targetDeps:  map[any]keyDeps{},
		onError:     onError,
	}
	return rs
}

// OnWarn replaces the default warn sink (stdlib log).
func (rs *ReactiveSystem) OnWarn(fn WarnFunc) {
	rs.onWarn = fn
}

func (rs *ReactiveSystem) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if rs.onWarn != nil {
		rs.onWarn(msg)
		return
	}
	log.Printf("reactivity: %s", msg)
}

// currentEffect is the top of the active-effect stack, if any.
func (rs *ReactiveSystem) currentEffect() *Effect {
	if len(rs.effectStack) == 0 {
		return nil
	}
	return rs.effectStack[len(rs.effectStack)-1]
}

// onStack reports whether e is anywhere on the active-effect stack, not just
// the top. A nested computed may push a different effect atop this one.
func (rs *ReactiveSystem) onStack(e *Effect) bool {
	for _, f := range rs.effectStack {
		if f == e {
			return true
		}
	}
	return false
}

// PauseTracking disables dependency collection until the matching
// ResetTracking. Pairs nest.
func (rs *ReactiveSystem) PauseTracking() {
	rs.trackStack = append(rs.trackStack, rs.shouldTrack)
	rs.shouldTrack = false
}

// EnableTracking force-enables dependency collection until the matching
// ResetTracking.
func (rs *ReactiveSystem) EnableTracking() {
	rs.trackStack = append(rs.trackStack, rs.shouldTrack)
	rs.shouldTrack = true
}

// ResetTracking restores the tracking flag saved by the last PauseTracking
// or EnableTracking.
func (rs *ReactiveSystem) ResetTracking() {
	n := len(rs.trackStack)
	if n == 0 {
		rs.shouldTrack = true
		return
	}
	rs.shouldTrack = rs.trackStack[n-1]
	rs.trackStack = rs.trackStack[:n-1]
}

// Untrack runs fn with tracking paused and returns its result.
func Untrack[T any](rs *ReactiveSystem, fn func() T) T {
	rs.PauseTracking()
	defer rs.ResetTracking()
	return fn()
}

// identity returns a stable pointer identity for reference-shaped values
// (maps, slices, pointers, channels, funcs). Everything else has none.
func identity(v any) (uintptr, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		p := rv.Pointer()
		if p == 0 {
			return 0, false
		}
		return p, true
	default:
		return 0, false
	}
}

// comparableTarget reports whether v can be used as a map key without
// panicking, which the arbitrary-target dep index requires.
func comparableTarget(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Comparable()
}

// depOwner is implemented by anything that owns its own key→DepSet index:
// stores, refs and computeds.
type depOwner interface {
	depFor(key any, create bool) *dep
}

// depRanger is the part of the trigger path that needs every DepSet of a
// target (CLEAR, length shrink).
type depRanger interface {
	eachDep(fn func(key any, d *dep))
}

// depFor resolves the DepSet for (target, key), creating it when asked.
// Proxy handles resolve to their backing store first.
func (rs *ReactiveSystem) depFor(target any, key any, create bool) *dep {
	target = resolveTarget(target)
	if o, ok := target.(depOwner); ok {
		return o.depFor(key, create)
	}
	if !comparableTarget(target) {
		return nil
	}
	m, ok := rs.targetDeps[target]
	if !ok {
		if !create {
			return nil
		}
		m = keyDeps{}
		rs.targetDeps[target] = m
	}
	return m.get(key, create)
}

// resolveTarget unwraps a proxy handle to its backing store; any other
// value resolves to itself.
func resolveTarget(target any) any {
	if h, ok := target.(proxyHandle); ok {
		return h.targetStore()
	}
	return target
}
