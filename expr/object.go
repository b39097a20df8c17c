package expr

// Object is an ordered string-keyed map. Go map iteration order is
// undefined, so an explicit key slice is kept alongside the map — the
// same reason teacher's sql AST keeps Idents/Fields as ordered slices
// rather than bare maps, needed here because Part::All field collection
// must preserve declaration order (pick.rs's object arm relies on it).
type Object struct {
	keys []string
	vals map[string]Value
}

func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set inserts or replaces key, appending to the key order on first
// insertion only.
func (o *Object) Set(key string, v Value) {
	if o.vals == nil {
		o.vals = make(map[string]Value)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Del removes key, preserving the order of the remaining keys.
func (o *Object) Del(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Values returns the values in key-insertion order.
func (o *Object) Values() []Value {
	out := make([]Value, len(o.keys))
	for i, k := range o.keys {
		out[i] = o.vals[k]
	}
	return out
}

func (o *Object) Len() int { return len(o.keys) }

func (o *Object) Clone() *Object {
	cp := NewObject()
	for _, k := range o.keys {
		cp.Set(k, o.vals[k].Clone())
	}
	return cp
}

func (o *Object) Equal(p *Object) bool {
	if o == nil || p == nil {
		return o == p
	}
	if o.Len() != p.Len() {
		return false
	}
	for _, k := range o.keys {
		a, ok := o.vals[k]
		if !ok {
			return false
		}
		b, ok := p.Get(k)
		if !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}
