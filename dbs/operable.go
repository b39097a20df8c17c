package dbs

import "github.com/surrealdb/surrealdb/expr"

// Operable is what arrives from storage for a single candidate record:
// its current value and, when it has one, the record id that produced
// it. Grounded on original_source dbs/iterator.rs's Operable enum and
// teacher's document.go loading a *data.Doc alongside an optional
// *sql.Thing.
type Operable struct {
	Value expr.Value
	Thing *expr.Thing
}

// Processed is a record together with the iteration context needed to
// place it correctly in Results: which Iterable produced it (Generation
// distinguishes multiple iterables sharing one statement). Ordered marks
// a record that arrived already ordered from storage; the Iterator does
// not set it, and ORDER BY always sorts the rows itself.
type Processed struct {
	Generation int
	Operable   Operable
	Ordered    bool
}
