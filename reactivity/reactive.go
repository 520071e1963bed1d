package reactivity

import (
	"math"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// flavor determines read behavior and whether writes are rejected. It is
// immutable per proxy handle.
type flavor uint8

const (
	mutableDeep flavor = iota
	mutableShallow
	readonlyDeep
	readonlyShallow

	nFlavors
)

func (f flavor) readonly() bool {
	return f == readonlyDeep || f == readonlyShallow
}

func (f flavor) shallow() bool {
	return f == mutableShallow || f == readonlyShallow
}

// proxyHandle is the common face of Record, List, Dict, UniqueSet and the
// weak variants. The four reserved introspection keys of the interceptor
// become the IsReactive / IsReadonly / IsProxy / ToRaw functions.
type proxyHandle interface {
	proxyFlavor() flavor
	targetStore() any
	rawTarget() any
	wrappedReactive() bool
}

type base struct {
	rs     *ReactiveSystem
	flavor flavor
	// overReactive marks a readonly handle constructed over a read-write
	// handle rather than over the raw target.
	overReactive bool
}

func (b *base) proxyFlavor() flavor {
	return b.flavor
}

func (b *base) wrappedReactive() bool {
	return b.overReactive
}

// eligible reports whether a raw value can carry a proxy at all.
func eligible(v any) bool {
	switch v.(type) {
	case map[string]any, []any, map[any]any, mapset.Set[any]:
		return true
	}
	return false
}

// Reactive returns a deep read-write proxy over target. Ineligible targets
// are warned about and returned unchanged.
func Reactive(rs *ReactiveSystem, target any) any {
	return rs.wrapTop(target, mutableDeep)
}

// ShallowReactive tracks and triggers only root-level access; nested values
// are returned as-is.
func ShallowReactive(rs *ReactiveSystem, target any) any {
	return rs.wrapTop(target, mutableShallow)
}

// Readonly returns a deep read-only proxy. Reads never track; writes are
// refused with a warning.
func Readonly(rs *ReactiveSystem, target any) any {
	return rs.wrapTop(target, readonlyDeep)
}

// ShallowReadonly is Readonly for the root level only.
func ShallowReadonly(rs *ReactiveSystem, target any) any {
	return rs.wrapTop(target, readonlyShallow)
}

// ReactiveRecord is the typed constructor for plain records.
func ReactiveRecord(rs *ReactiveSystem, fields map[string]any) *Record {
	return recordHandle(rs, rs.adoptRecord(fields), mutableDeep, false)
}

// ReactiveList is the typed constructor for ordered sequences.
func ReactiveList(rs *ReactiveSystem, items []any) *List {
	return listHandle(rs, rs.adoptList(items), mutableDeep, false)
}

// ReactiveDict is the typed constructor for keyed maps.
func ReactiveDict(rs *ReactiveSystem, entries map[any]any) *Dict {
	return dictHandle(rs, rs.adoptDict(entries), mutableDeep, false)
}

// ReactiveUniqueSet is the typed constructor for unique sets.
func ReactiveUniqueSet(rs *ReactiveSystem, values mapset.Set[any]) *UniqueSet {
	return setHandle(rs, rs.adoptSet(values), mutableDeep, false)
}

// ReactiveWeakDict wraps entries as a weak keyed map: no size, no clear, no
// iteration, exactly like the underlying primitive.
func ReactiveWeakDict(rs *ReactiveSystem, entries map[any]any) *WeakDict {
	return weakDictHandle(rs, rs.adoptDict(entries), mutableDeep)
}

// ReactiveWeakSet wraps values as a weak unique set.
func ReactiveWeakSet(rs *ReactiveSystem, values mapset.Set[any]) *WeakUniqueSet {
	return weakSetHandle(rs, rs.adoptSet(values), mutableDeep)
}

func (rs *ReactiveSystem) wrapTop(target any, f flavor) any {
	if _, ok := target.(proxyHandle); !ok && !eligible(target) {
		if id, marked := identity(target); marked {
			if _, skip := rs.skipped[id]; skip {
				return target
			}
		}
		rs.warnf("value of type %T cannot be made reactive", target)
		return target
	}
	return rs.wrap(target, f)
}

// wrap applies the registry rules. It returns target unchanged when target
// is ineligible, marked raw, or already a proxy satisfying the request.
func (rs *ReactiveSystem) wrap(target any, f flavor) any {
	if target == nil {
		return nil
	}
	if h, ok := target.(proxyHandle); ok {
		hf := h.proxyFlavor()
		switch {
		case hf == f:
			return target
		case hf.readonly() == f.readonly():
			// Already a proxy on the requested side of the
			// readonly divide.
			return target
		case hf.readonly() && !f.readonly():
			// A mutable flavor over a read-only proxy yields the
			// read-only proxy.
			return target
		default:
			// Read-only over read-write: a new read-only handle
			// over the same store, deliberately.
			return rs.readonlyOver(h, f)
		}
	}
	if id, ok := identity(target); ok {
		if _, skip := rs.skipped[id]; skip {
			return target
		}
	}
	switch t := target.(type) {
	case map[string]any:
		return recordHandle(rs, rs.adoptRecord(t), f, false)
	case []any:
		return listHandle(rs, rs.adoptList(t), f, false)
	case map[any]any:
		return dictHandle(rs, rs.adoptDict(t), f, false)
	case mapset.Set[any]:
		return setHandle(rs, rs.adoptSet(t), f, false)
	}
	return target
}

func (rs *ReactiveSystem) readonlyOver(h proxyHandle, f flavor) any {
	switch s := h.targetStore().(type) {
	case *recordStore:
		return recordHandle(rs, s, f, true)
	case *listStore:
		return listHandle(rs, s, f, true)
	case *dictStore:
		if _, weak := h.(*WeakDict); weak {
			return weakDictHandle(rs, s, f)
		}
		return dictHandle(rs, s, f, true)
	case *setStore:
		if _, weak := h.(*WeakUniqueSet); weak {
			return weakSetHandle(rs, s, f)
		}
		return setHandle(rs, s, f, true)
	}
	return h
}

// wrapNested wraps a value read out of a deep proxy in the reader's flavor.
// Non-containers pass through.
func (rs *ReactiveSystem) wrapNested(v any, f flavor) any {
	if _, ok := v.(proxyHandle); ok {
		return rs.wrap(v, f)
	}
	if eligible(v) {
		return rs.wrap(v, f)
	}
	return v
}

// IsReactive reports whether v is a read-write proxy, or a read-only proxy
// constructed over a read-write one.
func IsReactive(v any) bool {
	h, ok := v.(proxyHandle)
	if !ok {
		return false
	}
	return !h.proxyFlavor().readonly() || h.wrappedReactive()
}

// IsReadonly reports whether v is a read-only proxy.
func IsReadonly(v any) bool {
	h, ok := v.(proxyHandle)
	return ok && h.proxyFlavor().readonly()
}

// IsProxy reports whether v is any proxy handle.
func IsProxy(v any) bool {
	_, ok := v.(proxyHandle)
	return ok
}

// ToRaw follows the raw chain to a fixed point. Safe for non-proxies.
func ToRaw(v any) any {
	for {
		h, ok := v.(proxyHandle)
		if !ok {
			return v
		}
		v = h.rawTarget()
	}
}

// MarkRaw marks target so wrap passes it through untouched. Returns target.
// Only reference-shaped values can carry the mark.
func MarkRaw(rs *ReactiveSystem, target any) any {
	id, ok := identity(target)
	if !ok {
		rs.warnf("value of type %T cannot be marked raw", target)
		return target
	}
	rs.skipped[id] = struct{}{}
	return target
}

// adoptRecord installs (or finds) the store for a raw record.
func (rs *ReactiveSystem) adoptRecord(fields map[string]any) *recordStore {
	id, ok := identity(fields)
	if ok {
		if s, hit := rs.adopted[id]; hit {
			return s.(*recordStore)
		}
	}
	s := &recordStore{fields: fields, deps: keyDeps{}}
	if ok {
		rs.adopted[id] = s
	}
	return s
}

func (rs *ReactiveSystem) adoptList(items []any) *listStore {
	id, ok := identity(items)
	if ok {
		if s, hit := rs.adopted[id]; hit {
			return s.(*listStore)
		}
	}
	s := &listStore{items: items, deps: keyDeps{}}
	if ok {
		rs.adopted[id] = s
	}
	return s
}

// rememberList re-registers a list store after its backing array moved, so
// wrapping the current raw slice still finds the same store.
func (rs *ReactiveSystem) rememberList(s *listStore) {
	if id, ok := identity(s.items); ok {
		rs.adopted[id] = s
	}
}

func (rs *ReactiveSystem) adoptDict(entries map[any]any) *dictStore {
	id, ok := identity(entries)
	if ok {
		if s, hit := rs.adopted[id]; hit {
			return s.(*dictStore)
		}
	}
	s := &dictStore{values: entries, deps: keyDeps{}}
	for k := range entries {
		s.order = append(s.order, k)
	}
	if ok {
		rs.adopted[id] = s
	}
	return s
}

func (rs *ReactiveSystem) adoptSet(values mapset.Set[any]) *setStore {
	id, ok := identity(values)
	if ok {
		if s, hit := rs.adopted[id]; hit {
			return s.(*setStore)
		}
	}
	s := &setStore{values: values, deps: keyDeps{}}
	s.order = append(s.order, values.ToSlice()...)
	if ok {
		rs.adopted[id] = s
	}
	return s
}

// hasChanged is the NaN-aware change detector: a write of NaN over NaN is
// not a change, everything else defers to deep equality.
func hasChanged(a, b any) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			if math.IsNaN(af) && math.IsNaN(bf) {
				return false
			}
			return af != bf
		}
	}
	return !reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}

// strictEquals is identity equality for the sequence lookup methods:
// reference-shaped values compare by pointer, everything comparable by value.
func strictEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}
