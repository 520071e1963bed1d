package reactivity

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// TrackOp classifies a read for debug events.
type TrackOp uint8

const (
	OpGet TrackOp = iota
	OpHas
	OpIterate
)

func (op TrackOp) String() string {
	switch op {
	case OpGet:
		return "get"
	case OpHas:
		return "has"
	case OpIterate:
		return "iterate"
	}
	return "unknown"
}

// TriggerOp classifies a write for the trigger collection rules and debug
// events.
type TriggerOp uint8

const (
	OpSet TriggerOp = iota
	OpAdd
	OpDelete
	OpClear
)

func (op TriggerOp) String() string {
	switch op {
	case OpSet:
		return "set"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	}
	return "unknown"
}

// sentinel keys have their own type so no string key can collide with them.
// Ids are xxhash-derived, same trick as flimsy's error symbol.
type sentinel uint64

var (
	// KeyIterate stands for any whole-container enumeration.
	KeyIterate = sentinel(xxhash.Sum64String("ITERATE"))
	// KeyMapKeyIterate stands for enumerating only the keys of a dict.
	KeyMapKeyIterate = sentinel(xxhash.Sum64String("MAP_KEY_ITERATE"))
)

// KeyLength is the sequence length key.
const KeyLength = "length"

// TrackEvent is handed to an effect's OnTrack debug callback.
type TrackEvent struct {
	Effect *Effect
	Target any
	Op     TrackOp
	Key    any
}

// TriggerEvent is handed to an effect's OnTrigger debug callback.
type TriggerEvent struct {
	Effect    *Effect
	Target    any
	Op        TriggerOp
	Key       any
	NewValue  any
	OldValue  any
	OldTarget any
}

// Track records (target, key) as a dependency of the active effect. No-op
// when tracking is disabled or no effect is running.
func (rs *ReactiveSystem) Track(target any, op TrackOp, key any) {
	if !rs.shouldTrack || rs.currentEffect() == nil {
		return
	}
	d := rs.depFor(target, key, true)
	rs.track(d, target, op, key)
}

// Trigger schedules every effect subscribed to the write described by
// (target, op, key). The run set is collected atomically from the state at
// trigger time, deduplicated, and executed in ascending effect id order;
// writes performed by the running effects cannot grow this run set.
//
// oldTarget carries the pre-clear snapshot for OpClear so debug hooks may
// inspect it; it is nil for every other op.
func (rs *ReactiveSystem) Trigger(target any, op TriggerOp, key any, newValue, oldValue, oldTarget any) {
	resolved := resolveTarget(target)

	var run []*dep
	add := func(d *dep) {
		if d != nil {
			run = append(run, d)
		}
	}
	addKey := func(k any) {
		if o, ok := resolved.(depOwner); ok {
			add(o.depFor(k, false))
			return
		}
		add(rs.depFor(resolved, k, false))
	}

	ls, isList := resolved.(*listStore)

	switch {
	case op == OpClear:
		// Every DepSet of the target joins the run set.
		if r, ok := resolved.(depRanger); ok {
			r.eachDep(func(_ any, d *dep) { add(d) })
		} else if comparableTarget(resolved) {
			if m, ok := rs.targetDeps[resolved]; ok {
				m.each(func(_ any, d *dep) { add(d) })
			}
		}

	case isList && key == KeyLength:
		// Shrinking a sequence invalidates the length plus every index
		// at or beyond the new length.
		newLen, _ := newValue.(int)
		ls.deps.each(func(k any, d *dep) {
			if k == KeyLength {
				add(d)
				return
			}
			if i, ok := k.(int); ok && i >= newLen {
				add(d)
			}
		})

	default:
		addKey(key)
		switch op {
		case OpAdd:
			switch resolved.(type) {
			case *listStore:
				addKey(KeyLength)
			case *dictStore:
				addKey(KeyIterate)
				addKey(KeyMapKeyIterate)
			default:
				addKey(KeyIterate)
			}
		case OpDelete:
			switch resolved.(type) {
			case *listStore:
				// Sequence deletes flow through length writes.
			case *dictStore:
				addKey(KeyIterate)
				addKey(KeyMapKeyIterate)
			default:
				addKey(KeyIterate)
			}
		case OpSet:
			if _, ok := resolved.(*dictStore); ok {
				addKey(KeyIterate)
			}
		}
	}

	if len(run) == 0 {
		return
	}

	// Snapshot and dedupe before running anything: effects mutate their
	// own subscription lists mid-run.
	seen := map[*Effect]struct{}{}
	var effects []*Effect
	for _, d := range run {
		for _, e := range d.subs.ToSlice() {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			effects = append(effects, e)
		}
	}
	sort.Slice(effects, func(i, j int) bool { return effects[i].id < effects[j].id })

	active := rs.currentEffect()
	for _, e := range effects {
		if e == active && !e.allowRecurse {
			continue
		}
		if e.onTrigger != nil {
			e.onTrigger(TriggerEvent{
				Effect:    e,
				Target:    target,
				Op:        op,
				Key:       key,
				NewValue:  newValue,
				OldValue:  oldValue,
				OldTarget: oldTarget,
			})
		}
		if e.scheduler != nil {
			e.scheduler(e)
		} else {
			e.Run()
		}
	}
}
