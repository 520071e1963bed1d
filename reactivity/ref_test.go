package reactivity_test

import (
	"math"
	"testing"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/stretchr/testify/assert"
)

// should hold a value and notify subscribers on change
func TestRefBasics(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	r := reactivity.NewRef(rs, 1)

	runs := 0
	var seen int
	reactivity.NewEffect(rs, func() any {
		runs++
		seen = r.Value()
		return nil
	})
	assert.Equal(t, 1, seen)

	r.Set(2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, seen)

	r.Set(2)
	assert.Equal(t, 2, runs)

	assert.True(t, reactivity.IsRef(r))
	assert.False(t, reactivity.IsRef(1))
}

// writing NaN over NaN is not a change
func TestRefNaNWrite(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	r := reactivity.NewRef(rs, math.NaN())

	runs := 0
	reactivity.NewEffect(rs, func() any {
		runs++
		return r.Value()
	})
	r.Set(math.NaN())
	assert.Equal(t, 1, runs)

	r.Set(1.5)
	assert.Equal(t, 2, runs)
}

// should not create a dependency on peek
func TestRefPeek(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	r := reactivity.NewRef(rs, 1)

	runs := 0
	reactivity.NewEffect(rs, func() any {
		runs++
		return r.Peek()
	})
	r.Set(2)
	assert.Equal(t, 1, runs)
}

// a deep ref wraps container payloads so nested writes propagate
func TestRefDeepWrapsContainers(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	r := reactivity.NewRef[any](rs, map[string]any{"n": 1})

	got := r.Value()
	assert.True(t, reactivity.IsReactive(got))

	runs := 0
	var seen any
	reactivity.NewEffect(rs, func() any {
		runs++
		seen = r.Value().(*reactivity.Record).Get("n")
		return nil
	})
	got.(*reactivity.Record).Set("n", 2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, seen)
}

// a shallow ref hands the payload back untouched
func TestShallowRef(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	m := map[string]any{"n": 1}
	r := reactivity.NewShallowRef[any](rs, m)

	got := r.Value()
	assert.False(t, reactivity.IsProxy(got))

	// replacing the payload still notifies
	runs := 0
	reactivity.NewEffect(rs, func() any {
		runs++
		return r.Value()
	})
	r.Set(map[string]any{"n": 2})
	assert.Equal(t, 2, runs)
}

// a ref field of a record auto-unwraps on read and forwards plain writes
func TestRefAutoUnwrapInRecord(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	n := reactivity.NewRef(rs, 5)
	o := reactivity.ReactiveRecord(rs, map[string]any{"n": n})

	assert.Equal(t, 5, o.Get("n"))

	runs := 0
	var seen any
	reactivity.NewEffect(rs, func() any {
		runs++
		seen = o.Get("n")
		return nil
	})

	// writing through the ref reaches record readers
	n.Set(6)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 6, seen)

	// writing a plain value through the record forwards into the ref
	o.Set("n", 7)
	assert.Equal(t, 3, runs)
	assert.Equal(t, 7, n.Peek())
	assert.Equal(t, 7, seen)

	// writing a new ref replaces the slot instead of forwarding
	n2 := reactivity.NewRef(rs, 8)
	o.Set("n", n2)
	assert.Equal(t, 4, runs)
	assert.Equal(t, 8, seen)
	assert.Equal(t, 7, n.Peek())
}
