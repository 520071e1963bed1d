package reactivity

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Keyed maps and unique sets expose state only through methods, so the
// interceptors here shim every method rather than key access. Entries added
// through a proxy are kept in insertion order; entries already present when
// the target is adopted come first, in Go map (or set) iteration order.

type dictStore struct {
	order       []any
	values      map[any]any
	deps        keyDeps
	handles     [nFlavors]any
	weakHandles [nFlavors]any
}

func (s *dictStore) depFor(key any, create bool) *dep {
	return s.deps.get(key, create)
}

func (s *dictStore) eachDep(fn func(key any, d *dep)) {
	s.deps.each(fn)
}

func (s *dictStore) removeOrdered(key any) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

type setStore struct {
	order       []any
	values      mapset.Set[any]
	deps        keyDeps
	handles     [nFlavors]any
	weakHandles [nFlavors]any
}

func (s *setStore) depFor(key any, create bool) *dep {
	return s.deps.get(key, create)
}

func (s *setStore) eachDep(fn func(key any, d *dep)) {
	s.deps.each(fn)
}

func (s *setStore) removeOrdered(v any) {
	for i, k := range s.order {
		if k == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// keyForms returns the lookup forms of a dict/set key: the key as given and,
// when it differs and is usable, its raw form. Callers may hold the wrapped
// key while the store holds the raw one, or the reverse.
func keyForms(key any) []any {
	raw := ToRaw(key)
	if comparableTarget(raw) && !strictEquals(raw, key) {
		return []any{key, raw}
	}
	return []any{key}
}

// Dict is the accessor proxy over a keyed map.
type Dict struct {
	base
	store *dictStore
}

func dictHandle(rs *ReactiveSystem, s *dictStore, f flavor, overReactive bool) *Dict {
	if h := s.handles[f]; h != nil {
		return h.(*Dict)
	}
	h := &Dict{base: base{rs: rs, flavor: f, overReactive: overReactive}, store: s}
	s.handles[f] = h
	return h
}

func (d *Dict) targetStore() any { return d.store }
func (d *Dict) rawTarget() any   { return d.store.values }

func (d *Dict) Get(key any) any {
	return dictGet(d.rs, d.store, d.flavor, d, key)
}

func (d *Dict) Has(key any) bool {
	return dictHas(d.rs, d.store, d.flavor, d, key)
}

func (d *Dict) Set(key, value any) {
	dictSet(d.rs, d.store, d.flavor, d, key, value)
}

func (d *Dict) Delete(key any) bool {
	return dictDelete(d.rs, d.store, d.flavor, d, key)
}

// Size tracks the whole-container enumeration.
func (d *Dict) Size() int {
	if !d.flavor.readonly() {
		d.rs.Track(d, OpIterate, KeyIterate)
	}
	return len(d.store.values)
}

// Clear snapshots the old entries so debug hooks can inspect them, then
// fires every DepSet of the target.
func (d *Dict) Clear() {
	if d.flavor.readonly() {
		d.rs.warnf("clear ignored: target is readonly")
		return
	}
	s := d.store
	if len(s.values) == 0 {
		return
	}
	oldTarget := make(map[any]any, len(s.values))
	for k, v := range s.values {
		oldTarget[k] = v
	}
	for k := range s.values {
		delete(s.values, k)
	}
	s.order = s.order[:0]
	d.rs.Trigger(d, OpClear, nil, nil, nil, oldTarget)
}

// ForEach visits entries in insertion order. Callbacks receive wrapped
// values and keys under deep flavors.
func (d *Dict) ForEach(fn func(value, key any)) {
	if !d.flavor.readonly() {
		d.rs.Track(d, OpIterate, KeyIterate)
	}
	for _, k := range append([]any(nil), d.store.order...) {
		v, ok := d.store.values[k]
		if !ok {
			continue
		}
		fn(d.wrapOut(v), d.wrapOut(k))
	}
}

// Keys enumerates only the keys, which subscribes to the keys-only sentinel:
// value-only SETs do not re-run a keys watcher.
func (d *Dict) Keys() []any {
	if !d.flavor.readonly() {
		d.rs.Track(d, OpIterate, KeyMapKeyIterate)
	}
	out := make([]any, len(d.store.order))
	for i, k := range d.store.order {
		out[i] = d.wrapOut(k)
	}
	return out
}

func (d *Dict) Values() []any {
	if !d.flavor.readonly() {
		d.rs.Track(d, OpIterate, KeyIterate)
	}
	out := make([]any, 0, len(d.store.order))
	for _, k := range d.store.order {
		if v, ok := d.store.values[k]; ok {
			out = append(out, d.wrapOut(v))
		}
	}
	return out
}

func (d *Dict) Entries() [][2]any {
	if !d.flavor.readonly() {
		d.rs.Track(d, OpIterate, KeyIterate)
	}
	out := make([][2]any, 0, len(d.store.order))
	for _, k := range d.store.order {
		if v, ok := d.store.values[k]; ok {
			out = append(out, [2]any{d.wrapOut(k), d.wrapOut(v)})
		}
	}
	return out
}

func (d *Dict) wrapOut(v any) any {
	if d.flavor.shallow() {
		return v
	}
	return d.rs.wrapNested(v, d.flavor)
}

// WeakDict is Dict without size, clear and iteration, as in the underlying
// weak primitive.
type WeakDict struct {
	base
	store *dictStore
}

func weakDictHandle(rs *ReactiveSystem, s *dictStore, f flavor) *WeakDict {
	if h := s.weakHandles[f]; h != nil {
		return h.(*WeakDict)
	}
	h := &WeakDict{base: base{rs: rs, flavor: f}, store: s}
	s.weakHandles[f] = h
	return h
}

func (d *WeakDict) targetStore() any { return d.store }
func (d *WeakDict) rawTarget() any   { return d.store.values }

func (d *WeakDict) Get(key any) any {
	return dictGet(d.rs, d.store, d.flavor, d, key)
}

func (d *WeakDict) Has(key any) bool {
	return dictHas(d.rs, d.store, d.flavor, d, key)
}

func (d *WeakDict) Set(key, value any) {
	dictSet(d.rs, d.store, d.flavor, d, key, value)
}

func (d *WeakDict) Delete(key any) bool {
	return dictDelete(d.rs, d.store, d.flavor, d, key)
}

func dictGet(rs *ReactiveSystem, s *dictStore, f flavor, target any, key any) any {
	if !comparableTarget(key) {
		rs.warnf("dict key of type %T is not usable", key)
		return nil
	}
	forms := keyForms(key)
	if !f.readonly() {
		for _, k := range forms {
			rs.Track(target, OpGet, k)
		}
	}
	for _, k := range forms {
		if v, ok := s.values[k]; ok {
			if f.shallow() {
				return v
			}
			return rs.wrapNested(v, f)
		}
	}
	return nil
}

func dictHas(rs *ReactiveSystem, s *dictStore, f flavor, target any, key any) bool {
	if !comparableTarget(key) {
		rs.warnf("dict key of type %T is not usable", key)
		return false
	}
	forms := keyForms(key)
	if !f.readonly() {
		for _, k := range forms {
			rs.Track(target, OpHas, k)
		}
	}
	for _, k := range forms {
		if _, ok := s.values[k]; ok {
			return true
		}
	}
	return false
}

func dictSet(rs *ReactiveSystem, s *dictStore, f flavor, target any, key, value any) {
	if f.readonly() {
		rs.warnf("set of key %v ignored: target is readonly", key)
		return
	}
	if !comparableTarget(key) {
		rs.warnf("dict key of type %T is not usable", key)
		return
	}
	if !f.shallow() {
		value = ToRaw(value)
	}
	k := key
	hadKey := false
	for _, form := range keyForms(key) {
		if _, ok := s.values[form]; ok {
			k = form
			hadKey = true
			break
		}
	}
	old := s.values[k]
	s.values[k] = value
	if !hadKey {
		s.order = append(s.order, k)
		rs.Trigger(target, OpAdd, k, value, nil, nil)
	} else if hasChanged(value, old) {
		rs.Trigger(target, OpSet, k, value, old, nil)
	}
}

func dictDelete(rs *ReactiveSystem, s *dictStore, f flavor, target any, key any) bool {
	if f.readonly() {
		rs.warnf("delete of key %v ignored: target is readonly", key)
		return false
	}
	if !comparableTarget(key) {
		rs.warnf("dict key of type %T is not usable", key)
		return false
	}
	for _, form := range keyForms(key) {
		if old, ok := s.values[form]; ok {
			delete(s.values, form)
			s.removeOrdered(form)
			rs.Trigger(target, OpDelete, form, nil, old, nil)
			return true
		}
	}
	return false
}

// UniqueSet is the accessor proxy over a unique set. The raw store is a
// mapset set, so the caller's set and the proxy stay in sync.
type UniqueSet struct {
	base
	store *setStore
}

func setHandle(rs *ReactiveSystem, s *setStore, f flavor, overReactive bool) *UniqueSet {
	if h := s.handles[f]; h != nil {
		return h.(*UniqueSet)
	}
	h := &UniqueSet{base: base{rs: rs, flavor: f, overReactive: overReactive}, store: s}
	s.handles[f] = h
	return h
}

func (u *UniqueSet) targetStore() any { return u.store }
func (u *UniqueSet) rawTarget() any   { return u.store.values }

func (u *UniqueSet) Add(value any) bool {
	return setAdd(u.rs, u.store, u.flavor, u, value)
}

func (u *UniqueSet) Has(value any) bool {
	return setHas(u.rs, u.store, u.flavor, u, value)
}

func (u *UniqueSet) Delete(value any) bool {
	return setDelete(u.rs, u.store, u.flavor, u, value)
}

func (u *UniqueSet) Size() int {
	if !u.flavor.readonly() {
		u.rs.Track(u, OpIterate, KeyIterate)
	}
	return u.store.values.Cardinality()
}

func (u *UniqueSet) Clear() {
	if u.flavor.readonly() {
		u.rs.warnf("clear ignored: target is readonly")
		return
	}
	s := u.store
	if s.values.Cardinality() == 0 {
		return
	}
	oldTarget := s.values.Clone()
	s.values.Clear()
	s.order = s.order[:0]
	u.rs.Trigger(u, OpClear, nil, nil, nil, oldTarget)
}

func (u *UniqueSet) ForEach(fn func(value any)) {
	if !u.flavor.readonly() {
		u.rs.Track(u, OpIterate, KeyIterate)
	}
	for _, v := range append([]any(nil), u.store.order...) {
		if u.store.values.Contains(v) {
			fn(u.wrapOut(v))
		}
	}
}

func (u *UniqueSet) Values() []any {
	if !u.flavor.readonly() {
		u.rs.Track(u, OpIterate, KeyIterate)
	}
	out := make([]any, 0, len(u.store.order))
	for _, v := range u.store.order {
		if u.store.values.Contains(v) {
			out = append(out, u.wrapOut(v))
		}
	}
	return out
}

func (u *UniqueSet) wrapOut(v any) any {
	if u.flavor.shallow() {
		return v
	}
	return u.rs.wrapNested(v, u.flavor)
}

// WeakUniqueSet is UniqueSet without size, clear and iteration.
type WeakUniqueSet struct {
	base
	store *setStore
}

func weakSetHandle(rs *ReactiveSystem, s *setStore, f flavor) *WeakUniqueSet {
	if h := s.weakHandles[f]; h != nil {
		return h.(*WeakUniqueSet)
	}
	h := &WeakUniqueSet{base: base{rs: rs, flavor: f}, store: s}
	s.weakHandles[f] = h
	return h
}

func (u *WeakUniqueSet) targetStore() any { return u.store }
func (u *WeakUniqueSet) rawTarget() any   { return u.store.values }

func (u *WeakUniqueSet) Add(value any) bool {
	return setAdd(u.rs, u.store, u.flavor, u, value)
}

func (u *WeakUniqueSet) Has(value any) bool {
	return setHas(u.rs, u.store, u.flavor, u, value)
}

func (u *WeakUniqueSet) Delete(value any) bool {
	return setDelete(u.rs, u.store, u.flavor, u, value)
}

func setAdd(rs *ReactiveSystem, s *setStore, f flavor, target any, value any) bool {
	if f.readonly() {
		rs.warnf("add ignored: target is readonly")
		return false
	}
	if !f.shallow() {
		value = ToRaw(value)
	}
	if !comparableTarget(value) {
		rs.warnf("set value of type %T is not usable", value)
		return false
	}
	if s.values.Contains(value) {
		return false
	}
	s.values.Add(value)
	s.order = append(s.order, value)
	rs.Trigger(target, OpAdd, value, value, nil, nil)
	return true
}

func setHas(rs *ReactiveSystem, s *setStore, f flavor, target any, value any) bool {
	if !comparableTarget(value) {
		return false
	}
	forms := keyForms(value)
	if !f.readonly() {
		for _, v := range forms {
			rs.Track(target, OpHas, v)
		}
	}
	for _, v := range forms {
		if s.values.Contains(v) {
			return true
		}
	}
	return false
}

func setDelete(rs *ReactiveSystem, s *setStore, f flavor, target any, value any) bool {
	if f.readonly() {
		rs.warnf("delete ignored: target is readonly")
		return false
	}
	if !comparableTarget(value) {
		return false
	}
	for _, v := range keyForms(value) {
		if s.values.Contains(v) {
			s.values.Remove(v)
			s.removeOrdered(v)
			rs.Trigger(target, OpDelete, v, nil, v, nil)
			return true
		}
	}
	return false
}
