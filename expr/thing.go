package expr

import "fmt"

// Thing is a record id: a table name plus an id value, which may itself
// be a string, number, object, or array. Grounded on teacher's sql.Thing
// (sql AST) and original_source's expr::Thing.
type Thing struct {
	TB string
	ID Value
}

func NewThing(tb string, id Value) *Thing {
	return &Thing{TB: tb, ID: id}
}

func (t *Thing) String() string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", t.TB, idString(t.ID))
}

func idString(v Value) string {
	switch v.Kind {
	case KindString:
		return v.Str()
	case KindNumber:
		if v.Number().IsFloat() {
			return fmt.Sprintf("%v", v.Number().Float())
		}
		return fmt.Sprintf("%d", v.Number().Int())
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (t *Thing) Equal(o *Thing) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.TB == o.TB && t.ID.Equal(o.ID)
}

// Dir is the direction of a graph edge traversal.
type Dir int

const (
	DirBoth Dir = iota
	DirIn
	DirOut
)

// Edges names a graph-edge traversal originating at a Thing, restricted
// to an optional set of edge table names.
type Edges struct {
	Dir   Dir
	From  *Thing
	Table []string
}

func (e *Edges) Equal(o *Edges) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.Dir != o.Dir || !e.From.Equal(o.From) || len(e.Table) != len(o.Table) {
		return false
	}
	for i := range e.Table {
		if e.Table[i] != o.Table[i] {
			return false
		}
	}
	return true
}

// Bound is one endpoint of a Range: a Value and whether it's inclusive.
// A zero-value Bound with Open=true represents an unbounded side.
type Bound struct {
	Value Value
	Open  bool
	Incl  bool
}

// Range is an id range used by a RangeIterable to scan a span of a
// table's keyspace without materializing every id up front.
type Range struct {
	TB  string
	Beg Bound
	End Bound
}

func (r *Range) Equal(o *Range) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.TB == o.TB &&
		r.Beg.Open == o.Beg.Open && r.Beg.Incl == o.Beg.Incl && r.Beg.Value.Equal(o.Beg.Value) &&
		r.End.Open == o.End.Open && r.End.Incl == o.End.Incl && r.End.Value.Equal(o.End.Value)
}

// Mock generates a sequence of synthetic Thing ids for a table, used by
// CREATE |table:n| style bulk-insert statements.
type Mock struct {
	TB    string
	Count int
}

func (m *Mock) Things() []*Thing {
	out := make([]*Thing, m.Count)
	for i := 0; i < m.Count; i++ {
		out[i] = NewThing(m.TB, Int(int64(i+1)))
	}
	return out
}

// Geometry is a minimal GeoJSON-shaped value. Full geometry predicate
// support is out of scope (spec.md Non-goals); this exists only so the
// value sum type is closed. Encode writes a Geometry as null, so it does
// not survive an Encode/Decode round trip.
type Geometry struct {
	Type        string
	Coordinates interface{}
}

func (g *Geometry) Equal(o *Geometry) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.Type == o.Type && fmt.Sprint(g.Coordinates) == fmt.Sprint(o.Coordinates)
}
