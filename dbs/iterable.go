package dbs

import "github.com/surrealdb/surrealdb/expr"

// IterableKind tags what an Iterable produces. A closed tagged sum,
// grounded on original_source/crates/core/src/dbs/iterator.rs's Iterable
// enum and on teacher's db/iterator.go dispatch targets
// (processThing/processTable/processBatch/processModel/processQuery/
// processArray).
type IterableKind int

const (
	IterableValue IterableKind = iota
	IterableThing
	IterableTable
	IterableRange
	IterableEdges
	IterableMock
	IterableArray
)

// Iterable describes one source the iterator will pull records from.
// Several may be present for a single statement (e.g. `SELECT * FROM
// a, b`); the Iterator drives them in sequence, and their mere number
// disables start/limit push-down (spec.md §4.2 "check_set_start_limit").
type Iterable struct {
	Kind  IterableKind
	Value expr.Value
	Thing *expr.Thing
	Table string
	Range *expr.Range
	Edges *expr.Edges
	Mock  *expr.Mock
	Array []expr.Value

	// Index, when non-empty, names the index this iterable is known to
	// scan through, letting the planner confirm push-down safety without
	// re-deriving it (see Planner.IsIteratorCondition/IsOrder).
	Index string
}

func ThingIterable(t *expr.Thing) Iterable { return Iterable{Kind: IterableThing, Thing: t} }

func TableIterable(tb string) Iterable { return Iterable{Kind: IterableTable, Table: tb} }

func RangeIterable(r *expr.Range) Iterable { return Iterable{Kind: IterableRange, Range: r} }

func EdgesIterable(e *expr.Edges) Iterable { return Iterable{Kind: IterableEdges, Edges: e} }

func MockIterable(m *expr.Mock) Iterable { return Iterable{Kind: IterableMock, Mock: m} }

func ArrayIterable(vs []expr.Value) Iterable { return Iterable{Kind: IterableArray, Array: vs} }

func ValueIterable(v expr.Value) Iterable { return Iterable{Kind: IterableValue, Value: v} }

// IsIndexScan reports whether this iterable is known to be backed by an
// index, the fact check_set_start_limit needs to allow push-down under
// WHERE or ORDER BY.
func (i Iterable) IsIndexScan() bool { return i.Index != "" }
