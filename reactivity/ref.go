package reactivity

// untypedRef is the ref brand. The object interceptor uses it for
// auto-unwrap and write forwarding without knowing the element type.
type untypedRef interface {
	isRef()
	valueAny() any
	peekAny() any
	setAny(v any)
}

// Ref is the single-slot reactive cell. It is its own track/trigger target
// with the fixed key "value". Deep refs wrap container payloads on write;
// shallow refs store payloads as given.
type Ref[T any] struct {
	rs      *ReactiveSystem
	dep     *dep
	raw     any
	value   T
	shallow bool
}

// NewRef builds a deep ref.
func NewRef[T any](rs *ReactiveSystem, v T) *Ref[T] {
	return newRef(rs, v, false)
}

// NewShallowRef builds a ref whose payload is never wrapped.
func NewShallowRef[T any](rs *ReactiveSystem, v T) *Ref[T] {
	return newRef(rs, v, true)
}

func newRef[T any](rs *ReactiveSystem, v T, shallow bool) *Ref[T] {
	r := &Ref[T]{rs: rs, dep: newDep(), shallow: shallow}
	r.store(v)
	return r
}

func (r *Ref[T]) store(v T) {
	if r.shallow {
		r.raw = any(v)
		r.value = v
		return
	}
	r.raw = ToRaw(any(v))
	// Container payloads hand back their deep read-write proxy, when the
	// element type can hold one.
	if wrapped := r.rs.wrap(any(v), mutableDeep); wrapped != nil {
		if tv, ok := wrapped.(T); ok {
			r.value = tv
			return
		}
	}
	r.value = v
}

// Value reads the cell and tracks the access.
func (r *Ref[T]) Value() T {
	r.rs.Track(r, OpGet, "value")
	return r.value
}

// Peek reads the cell without creating a dependency.
func (r *Ref[T]) Peek() T {
	return r.value
}

// Set writes the cell, triggering subscribers on a NaN-aware change of the
// raw payload.
func (r *Ref[T]) Set(v T) {
	newRaw := any(v)
	if !r.shallow {
		newRaw = ToRaw(newRaw)
	}
	if !hasChanged(newRaw, r.raw) {
		return
	}
	old := r.raw
	r.store(v)
	r.rs.Trigger(r, OpSet, "value", newRaw, old, nil)
}

func (r *Ref[T]) depFor(key any, create bool) *dep {
	if key == "value" {
		return r.dep
	}
	return nil
}

func (r *Ref[T]) eachDep(fn func(key any, d *dep)) {
	fn("value", r.dep)
}

func (r *Ref[T]) isRef() {}

func (r *Ref[T]) valueAny() any {
	return any(r.Value())
}

func (r *Ref[T]) peekAny() any {
	return any(r.value)
}

func (r *Ref[T]) setAny(v any) {
	if v == nil {
		var zero T
		r.Set(zero)
		return
	}
	tv, ok := v.(T)
	if !ok {
		r.rs.warnf("ref write of %T ignored: element type mismatch", v)
		return
	}
	r.Set(tv)
}

// IsRef reports whether x carries the ref brand. Computeds carry it too.
func IsRef(x any) bool {
	_, ok := x.(untypedRef)
	return ok
}
