package reactivity

import "sort"

// recordStore is the shared backing of every Record handle over one raw
// record. The key→DepSet index lives here so it cannot outlive the target.
type recordStore struct {
	fields  map[string]any
	deps    keyDeps
	handles [nFlavors]any
}

func (s *recordStore) depFor(key any, create bool) *dep {
	return s.deps.get(key, create)
}

func (s *recordStore) eachDep(fn func(key any, d *dep)) {
	s.deps.each(fn)
}

// Record is the accessor proxy over a plain record. One handle exists per
// (store, flavor).
type Record struct {
	base
	store *recordStore
}

func recordHandle(rs *ReactiveSystem, s *recordStore, f flavor, overReactive bool) *Record {
	if h := s.handles[f]; h != nil {
		return h.(*Record)
	}
	h := &Record{base: base{rs: rs, flavor: f, overReactive: overReactive}, store: s}
	s.handles[f] = h
	return h
}

func (r *Record) targetStore() any { return r.store }
func (r *Record) rawTarget() any   { return r.store.fields }

// Get reads a field. Read-write flavors track the access; deep flavors
// auto-unwrap refs and lazily wrap nested containers.
func (r *Record) Get(key string) any {
	v := r.store.fields[key]
	if !r.flavor.readonly() {
		r.rs.Track(r, OpGet, key)
	}
	if r.flavor.shallow() {
		return v
	}
	if ref, ok := v.(untypedRef); ok {
		if r.flavor.readonly() {
			return ref.peekAny()
		}
		return ref.valueAny()
	}
	return r.rs.wrapNested(v, r.flavor)
}

// Set writes a field, forwarding to an existing ref slot when the incoming
// value is not itself a ref. Triggers ADD for new keys and SET for changed
// values, with NaN-aware change detection.
func (r *Record) Set(key string, value any) {
	if r.flavor.readonly() {
		r.rs.warnf("set of key %q ignored: target is readonly", key)
		return
	}
	s := r.store
	stored, hadKey := s.fields[key]
	old := stored
	if !r.flavor.shallow() {
		value = ToRaw(value)
		old = ToRaw(old)
		if ref, ok := stored.(untypedRef); ok {
			if _, newIsRef := value.(untypedRef); !newIsRef {
				ref.setAny(value)
				return
			}
		}
	}
	s.fields[key] = value
	if !hadKey {
		r.rs.Trigger(r, OpAdd, key, value, nil, nil)
	} else if hasChanged(value, old) {
		r.rs.Trigger(r, OpSet, key, value, old, nil)
	}
}

// Delete removes a field, triggering DELETE only when the key existed.
func (r *Record) Delete(key string) bool {
	if r.flavor.readonly() {
		r.rs.warnf("delete of key %q ignored: target is readonly", key)
		return false
	}
	old, hadKey := r.store.fields[key]
	if !hadKey {
		return false
	}
	delete(r.store.fields, key)
	r.rs.Trigger(r, OpDelete, key, nil, old, nil)
	return true
}

// Has tracks a HAS access on key.
func (r *Record) Has(key string) bool {
	if !r.flavor.readonly() {
		r.rs.Track(r, OpHas, key)
	}
	_, ok := r.store.fields[key]
	return ok
}

// Keys enumerates own keys, tracking the whole-container sentinel. Keys are
// returned sorted so enumeration order is deterministic.
func (r *Record) Keys() []string {
	if !r.flavor.readonly() {
		r.rs.Track(r, OpIterate, KeyIterate)
	}
	keys := make([]string, 0, len(r.store.fields))
	for k := range r.store.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of fields without tracking individual keys.
func (r *Record) Len() int {
	if !r.flavor.readonly() {
		r.rs.Track(r, OpIterate, KeyIterate)
	}
	return len(r.store.fields)
}
