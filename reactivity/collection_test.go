package reactivity_test

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/stretchr/testify/assert"
)

// should re-run iteration on a value set but not on an equal write
func TestDictIterateOnSet(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	m := reactivity.ReactiveDict(rs, map[any]any{"k": 1})

	runs := 0
	var sum int
	reactivity.NewEffect(rs, func() any {
		runs++
		sum = 0
		m.ForEach(func(value, key any) {
			sum += value.(int)
		})
		return nil
	})
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, sum)

	m.Set("k", 2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, sum)

	m.Set("k", 2)
	assert.Equal(t, 2, runs)
}

// should track specific keys for get and has
func TestDictKeyedTracking(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	m := reactivity.ReactiveDict(rs, map[any]any{"a": 1, "b": 2})

	aRuns, hasRuns := 0, 0
	reactivity.NewEffect(rs, func() any {
		aRuns++
		return m.Get("a")
	})
	reactivity.NewEffect(rs, func() any {
		hasRuns++
		return m.Has("c")
	})

	m.Set("b", 20)
	assert.Equal(t, 1, aRuns)
	assert.Equal(t, 1, hasRuns)

	m.Set("a", 10)
	assert.Equal(t, 2, aRuns)

	m.Set("c", 3)
	assert.Equal(t, 2, hasRuns)
	assert.True(t, m.Has("c"))
}

// a keys-only watcher must ignore value-only sets but see adds and deletes
func TestDictKeysOnlyWatcher(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	m := reactivity.ReactiveDict(rs, map[any]any{"a": 1})

	keyRuns := 0
	var keys []any
	reactivity.NewEffect(rs, func() any {
		keyRuns++
		keys = m.Keys()
		return nil
	})
	assert.Equal(t, []any{"a"}, keys)

	m.Set("a", 2)
	assert.Equal(t, 1, keyRuns)

	m.Set("b", 1)
	assert.Equal(t, 2, keyRuns)
	assert.Equal(t, []any{"a", "b"}, keys)

	m.Delete("a")
	assert.Equal(t, 3, keyRuns)
	assert.Equal(t, []any{"b"}, keys)
}

// should re-run size watchers on add, delete and keyed-map sets
func TestDictSize(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	m := reactivity.ReactiveDict(rs, map[any]any{})

	var size int
	runs := 0
	reactivity.NewEffect(rs, func() any {
		runs++
		size = m.Size()
		return nil
	})
	assert.Equal(t, 0, size)

	m.Set("a", 1)
	assert.Equal(t, 1, size)
	assert.Equal(t, 2, runs)

	// a keyed-map SET fires the whole-container enumeration too
	m.Set("a", 2)
	assert.Equal(t, 3, runs)

	m.Delete("a")
	assert.Equal(t, 0, size)
	assert.Equal(t, 4, runs)
}

// clear must fire every watcher and expose the old entries to debug hooks
func TestDictClearSnapshot(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	m := reactivity.ReactiveDict(rs, map[any]any{"a": 1, "b": 2})

	var oldTarget any
	keyRuns := 0
	reactivity.NewEffect(rs, func() any {
		keyRuns++
		return m.Get("a")
	}, reactivity.OnTrigger(func(ev reactivity.TriggerEvent) {
		if ev.Op == reactivity.OpClear {
			oldTarget = ev.OldTarget
		}
	}))

	m.Clear()
	assert.Equal(t, 2, keyRuns)
	snapshot, ok := oldTarget.(map[any]any)
	assert.True(t, ok)
	assert.Equal(t, 1, snapshot["a"])
	assert.Equal(t, 2, snapshot["b"])
	assert.Equal(t, 0, m.Size())

	// clearing an empty dict fires nothing
	m.Clear()
	assert.Equal(t, 2, keyRuns)
}

// should wrap entry values handed to callbacks and lookups under deep flavor
func TestDictDeepWrapsValues(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	m := reactivity.ReactiveDict(rs, map[any]any{"o": map[string]any{"n": 1}})

	got := m.Get("o")
	assert.True(t, reactivity.IsReactive(got))

	m.ForEach(func(value, key any) {
		assert.True(t, reactivity.IsReactive(value))
	})
}

// should re-run size and has watchers on add and delete
func TestUniqueSetAddDelete(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	s := reactivity.ReactiveUniqueSet(rs, mapset.NewThreadUnsafeSet[any](1, 2))

	var size int
	sizeRuns := 0
	reactivity.NewEffect(rs, func() any {
		sizeRuns++
		size = s.Size()
		return nil
	})
	hasRuns := 0
	var has3 bool
	reactivity.NewEffect(rs, func() any {
		hasRuns++
		has3 = s.Has(3)
		return nil
	})

	assert.True(t, s.Add(3))
	assert.Equal(t, 3, size)
	assert.Equal(t, 2, sizeRuns)
	assert.Equal(t, 2, hasRuns)
	assert.True(t, has3)

	// adding an existing value fires nothing
	assert.False(t, s.Add(3))
	assert.Equal(t, 2, sizeRuns)

	assert.True(t, s.Delete(3))
	assert.Equal(t, 2, size)
	assert.False(t, has3)

	assert.False(t, s.Delete(3))
}

// should iterate set values in insertion order
func TestUniqueSetIteration(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	s := reactivity.ReactiveUniqueSet(rs, mapset.NewThreadUnsafeSet[any]())
	s.Add("a")
	s.Add("b")
	s.Add("c")

	var seen []any
	runs := 0
	reactivity.NewEffect(rs, func() any {
		runs++
		seen = seen[:0]
		s.ForEach(func(v any) { seen = append(seen, v) })
		return nil
	})
	assert.Equal(t, []any{"a", "b", "c"}, seen)

	s.Delete("b")
	assert.Equal(t, 2, runs)
	assert.Equal(t, []any{"a", "c"}, seen)

	s.Clear()
	assert.Equal(t, 3, runs)
	assert.Empty(t, seen)
}

// weak variants still track their keys without any enumeration surface
func TestWeakVariants(t *testing.T) {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	wd := reactivity.ReactiveWeakDict(rs, map[any]any{})
	k := &struct{ name string }{"k"}

	runs := 0
	reactivity.NewEffect(rs, func() any {
		runs++
		return wd.Get(k)
	})
	wd.Set(k, 1)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, wd.Get(k))
	assert.True(t, wd.Has(k))
	assert.True(t, wd.Delete(k))
	assert.Equal(t, 3, runs)

	ws := reactivity.ReactiveWeakSet(rs, mapset.NewThreadUnsafeSet[any]())
	hasRuns := 0
	reactivity.NewEffect(rs, func() any {
		hasRuns++
		return ws.Has(k)
	})
	ws.Add(k)
	assert.Equal(t, 2, hasRuns)
	assert.True(t, ws.Has(k))
	ws.Delete(k)
	assert.Equal(t, 3, hasRuns)
}

// readonly collections refuse mutation and never track
func TestReadonlyCollections(t *testing.T) {
	var warnings []string
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	rs.OnWarn(func(msg string) { warnings = append(warnings, msg) })

	rom := reactivity.Readonly(rs, map[any]any{"a": 1}).(*reactivity.Dict)

	runs := 0
	reactivity.NewEffect(rs, func() any {
		runs++
		return rom.Get("a")
	})

	rom.Set("a", 2)
	assert.Len(t, warnings, 1)
	assert.Equal(t, 1, rom.Get("a"))
	assert.Equal(t, 1, runs)

	rom.Clear()
	assert.Len(t, warnings, 2)
	assert.Equal(t, 1, rom.Size())
}
