package reactivity

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// dep is the set of effects subscribed to one (target, key) pair.
// It's a set because sooner or later registrations must deduplicate: a key
// read twice inside one effect still re-runs that effect only once.
type dep struct {
	subs mapset.Set[*Effect]
}

func newDep() *dep {
	return &dep{
		// One logical goroutine per system, so the thread-unsafe flavor.
		subs: mapset.NewThreadUnsafeSet[*Effect](),
	}
}

// keyDeps is the per-target key→DepSet index. Entries are created lazily and
// never shrunk; effect cleanup empties the sets instead.
type keyDeps map[any]*dep

func (m keyDeps) get(key any, create bool) *dep {
	d, ok := m[key]
	if !ok {
		if !create {
			return nil
		}
		d = newDep()
		m[key] = d
	}
	return d
}

func (m keyDeps) each(fn func(key any, d *dep)) {
	for k, d := range m {
		fn(k, d)
	}
}

// track records the active effect as a subscriber of d and mirrors the edge
// on the effect's subscription list, keeping both sides consistent.
func (rs *ReactiveSystem) track(d *dep, target any, op TrackOp, key any) {
	if d == nil || !rs.shouldTrack {
		return
	}
	e := rs.currentEffect()
	if e == nil {
		return
	}
	if d.subs.Contains(e) {
		return
	}
	d.subs.Add(e)
	e.deps = append(e.deps, d)
	if e.onTrack != nil {
		e.onTrack(TrackEvent{
			Effect: e,
			Target: target,
			Op:     op,
			Key:    key,
		})
	}
}
