package reactivity_test

import (
	"testing"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/stretchr/testify/assert"
)

// should compute lazily and cache until a dependency changes
func TestComputedDirtyBit(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	x := reactivity.NewRef(rs, 3)

	getterRuns := 0
	c := reactivity.NewComputed(rs, func() int {
		getterRuns++
		return x.Value() * 2
	})
	assert.Equal(t, 0, getterRuns)

	assert.Equal(t, 6, c.Value())
	assert.Equal(t, 6, c.Value())
	assert.Equal(t, 1, getterRuns)

	x.Set(4)
	assert.Equal(t, 1, getterRuns)

	assert.Equal(t, 8, c.Value())
	assert.Equal(t, 2, getterRuns)
}

// should notify downstream effects exactly once per invalidation
func TestComputedDownstreamEffect(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	x := reactivity.NewRef(rs, 1)
	c := reactivity.NewComputed(rs, func() int {
		return x.Value() + 10
	})

	runs := 0
	var seen int
	reactivity.NewEffect(rs, func() any {
		runs++
		seen = c.Value()
		return nil
	})
	assert.Equal(t, 1, runs)
	assert.Equal(t, 11, seen)

	x.Set(2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 12, seen)
}

// should chain computeds and keep each memoized
func TestComputedChain(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	x := reactivity.NewRef(rs, 1)

	doubleRuns, quadRuns := 0, 0
	double := reactivity.NewComputed(rs, func() int {
		doubleRuns++
		return x.Value() * 2
	})
	quad := reactivity.NewComputed(rs, func() int {
		quadRuns++
		return double.Value() * 2
	})

	assert.Equal(t, 4, quad.Value())
	assert.Equal(t, 1, doubleRuns)
	assert.Equal(t, 1, quadRuns)

	x.Set(2)
	assert.Equal(t, 8, quad.Value())
	assert.Equal(t, 2, doubleRuns)
	assert.Equal(t, 2, quadRuns)
}

// should work over reactive containers
func TestComputedOverRecord(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	o := reactivity.ReactiveRecord(rs, map[string]any{"first": "Ada", "last": "Lovelace"})

	c := reactivity.NewComputed(rs, func() string {
		return o.Get("first").(string) + " " + o.Get("last").(string)
	})
	assert.Equal(t, "Ada Lovelace", c.Value())

	o.Set("last", "Byron")
	assert.Equal(t, "Ada Byron", c.Value())
}

// should route writes through the setter
func TestWritableComputed(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	n := reactivity.NewRef(rs, 1)

	plusOne := reactivity.NewWritableComputed(rs,
		func() int { return n.Value() + 1 },
		func(v int) { n.Set(v - 1) },
	)
	assert.Equal(t, 2, plusOne.Value())

	plusOne.Set(10)
	assert.Equal(t, 9, n.Peek())
	assert.Equal(t, 10, plusOne.Value())
}

// should warn and ignore writes to a setter-less computed
func TestComputedSetterlessWrite(t *testing.T) {
	var warnings []string
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	rs.OnWarn(func(msg string) { warnings = append(warnings, msg) })

	c := reactivity.NewComputed(rs, func() int { return 1 })
	c.Set(5)
	assert.Len(t, warnings, 1)
	assert.Equal(t, 1, c.Value())
}

// a computed without a getter is a constant
func TestComputedMissingGetter(t *testing.T) {
	var warnings []string
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	rs.OnWarn(func(msg string) { warnings = append(warnings, msg) })

	c := reactivity.NewWritableComputed[int](rs, nil, nil)
	assert.Len(t, warnings, 1)
	assert.Equal(t, 0, c.Value())
}

// a computed carries the ref brand and auto-unwraps inside records
func TestComputedIsRef(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	x := reactivity.NewRef(rs, 2)
	c := reactivity.NewComputed(rs, func() int { return x.Value() * 3 })
	assert.True(t, reactivity.IsRef(c))

	o := reactivity.ReactiveRecord(rs, map[string]any{"c": c})
	assert.Equal(t, 6, o.Get("c"))

	runs := 0
	var seen any
	reactivity.NewEffect(rs, func() any {
		runs++
		seen = o.Get("c")
		return nil
	})
	x.Set(3)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 9, seen)
}

// stopping the inner effect freezes the computed
func TestComputedStop(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	x := reactivity.NewRef(rs, 1)

	getterRuns := 0
	c := reactivity.NewComputed(rs, func() int {
		getterRuns++
		return x.Value()
	})
	assert.Equal(t, 1, c.Value())

	reactivity.Stop(c.Effect())
	x.Set(2)
	assert.Equal(t, 1, c.Value())
	assert.Equal(t, 1, getterRuns)
}
