package reactivity

// Computed is the lazy, memoized derived cell: an effect over the getter
// plus a dirty bit. dirty means the cached value must not be trusted.
type Computed[T any] struct {
	rs     *ReactiveSystem
	effect *Effect
	dep    *dep
	cached T
	dirty  bool
	setter func(T)
}

// NewComputed builds a read-only computed over getter. The getter does not
// run until the first read.
func NewComputed[T any](rs *ReactiveSystem, getter func() T) *Computed[T] {
	return newComputed(rs, getter, nil)
}

// NewWritableComputed routes writes through setter. A nil getter is treated
// as a constant read-only cell.
func NewWritableComputed[T any](rs *ReactiveSystem, getter func() T, setter func(T)) *Computed[T] {
	return newComputed(rs, getter, setter)
}

func newComputed[T any](rs *ReactiveSystem, getter func() T, setter func(T)) *Computed[T] {
	c := &Computed[T]{rs: rs, dep: newDep(), dirty: true, setter: setter}
	if getter == nil {
		rs.warnf("computed has no getter; value is constant")
		c.setter = nil
		getter = func() T {
			var zero T
			return zero
		}
	}
	// The scheduler self-triggers at most once between reads: the first
	// dependency trigger flips the dirty bit and self-triggers downstream;
	// later triggers find it already dirty and do nothing. allowRecurse stays off so a computed
	// cannot transitively invalidate itself.
	c.effect = NewEffect(rs, func() any { return getter() },
		Lazy(),
		WithScheduler(func(*Effect) {
			if !c.dirty {
				c.dirty = true
				rs.Trigger(c, OpSet, "value", nil, nil, nil)
			}
		}))
	return c
}

// Value recomputes when dirty, then tracks the read. After any read the
// dirty bit is clear.
func (c *Computed[T]) Value() T {
	if c.dirty {
		res := c.effect.Run()
		if res == nil {
			var zero T
			c.cached = zero
		} else if v, ok := res.(T); ok {
			c.cached = v
		}
		c.dirty = false
	}
	c.rs.Track(c, OpGet, "value")
	return c.cached
}

// Set invokes the setter, or warns when the computed has none.
func (c *Computed[T]) Set(v T) {
	if c.setter == nil {
		c.rs.warnf("write to computed ignored: no setter")
		return
	}
	c.setter(v)
}

// Effect exposes the inner effect, mainly so hosts can Stop it.
func (c *Computed[T]) Effect() *Effect {
	return c.effect
}

func (c *Computed[T]) depFor(key any, create bool) *dep {
	if key == "value" {
		return c.dep
	}
	return nil
}

func (c *Computed[T]) eachDep(fn func(key any, d *dep)) {
	fn("value", c.dep)
}

func (c *Computed[T]) isRef() {}

func (c *Computed[T]) valueAny() any {
	return any(c.Value())
}

func (c *Computed[T]) peekAny() any {
	return Untrack(c.rs, func() any { return any(c.Value()) })
}

func (c *Computed[T]) setAny(v any) {
	if v == nil {
		var zero T
		c.Set(zero)
		return
	}
	tv, ok := v.(T)
	if !ok {
		c.rs.warnf("computed write of %T ignored: element type mismatch", v)
		return
	}
	c.Set(tv)
}
