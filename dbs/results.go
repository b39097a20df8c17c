package dbs

import (
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb/expr"
)

// ResultsKind tags which accumulator shape a query chose up front, per
// spec.md §3: Memory (ordered array), Groups (group-by accumulator,
// flushed to Memory exactly once), Stored (spillable).
type ResultsKind int

const (
	ResultsMemory ResultsKind = iota
	ResultsGroups
	ResultsStored
)

// GroupBy names the fields to group by and the aggregate projections to
// compute per group, grounded on teacher's db/iterator.go Group().
type GroupBy struct {
	Fields []expr.Path
	Aggs   []AggSpec
}

// AggSpec is one aggregate projection: `Alias <- Func(Path)`.
type AggSpec struct {
	Alias string
	Func  string
	Path  expr.Path
}

// OrderField is one ORDER BY clause field.
type OrderField struct {
	Path expr.Path
	Desc bool
}

type group struct {
	key  expr.Value
	rows []expr.Value
}

// Results accumulates the records a query produces, in the shape chosen
// when the Iterator was set up. Grounded on teacher's db/iterator.go
// Group()/Order(), split out into its own reusable type.
type Results struct {
	kind ResultsKind

	rows []expr.Value

	groupBy   *GroupBy
	groups    map[string]*group
	groupKeys []string
	flushed   bool

	spillThreshold int
	spilled        []expr.Value
}

// NewMemoryResults creates a plain ordered-array accumulator.
func NewMemoryResults() *Results {
	return &Results{kind: ResultsMemory}
}

// NewGroupResults creates a GROUP BY accumulator for the given grouping.
func NewGroupResults(g *GroupBy) *Results {
	return &Results{kind: ResultsGroups, groupBy: g, groups: make(map[string]*group)}
}

// NewStoredResults creates a spillable accumulator; once more than
// spillThreshold rows have been pushed, additional rows are kept out of
// main memory in the Stored lane. spillThreshold<=0 disables spilling,
// behaving exactly like Memory (see DESIGN.md Open Question on the
// stored-results threshold).
func NewStoredResults(spillThreshold int) *Results {
	return &Results{kind: ResultsStored, spillThreshold: spillThreshold}
}

func (r *Results) Kind() ResultsKind { return r.kind }

// Push adds one processed record to the accumulator.
func (r *Results) Push(v expr.Value) {
	switch r.kind {
	case ResultsGroups:
		key := groupKey(v, r.groupBy.Fields)
		g, ok := r.groups[key]
		if !ok {
			g = &group{key: v}
			r.groups[key] = g
			r.groupKeys = append(r.groupKeys, key)
		}
		g.rows = append(g.rows, v)
	case ResultsStored:
		if r.spillThreshold > 0 && len(r.rows) >= r.spillThreshold {
			r.spilled = append(r.spilled, v)
		} else {
			r.rows = append(r.rows, v)
		}
	default:
		r.rows = append(r.rows, v)
	}
}

func groupKey(v expr.Value, fields []expr.Path) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		fmt.Fprintf(&b, "%v", expr.Pick(v, f))
	}
	return b.String()
}

// OutputGroup flushes the Groups accumulator into the Memory rows
// exactly once, per spec.md §3 — a second call is a programmer error
// (teacher's iterator calls Group() a single time at the end of Yield).
func (r *Results) OutputGroup() error {
	if r.kind != ResultsGroups {
		return nil
	}
	if r.flushed {
		return Unreachable("OutputGroup called more than once")
	}
	r.flushed = true

	for _, key := range r.groupKeys {
		g := r.groups[key]
		obj := expr.NewObject()
		for _, f := range r.groupBy.Fields {
			if len(f) == 0 {
				continue
			}
			name := fieldName(f)
			obj.Set(name, expr.Pick(g.key, f))
		}
		for _, a := range r.groupBy.Aggs {
			fn, ok := Aggregate(a.Func)
			if !ok {
				return NewError(ErrOther, fmt.Sprintf("unknown aggregate function %q", a.Func))
			}
			obj.Set(a.Alias, fn(g.rows, a.Path))
		}
		r.rows = append(r.rows, expr.ObjectOf(obj))
	}

	return nil
}

func fieldName(p expr.Path) string {
	last := p[len(p)-1]
	if last.Kind == expr.PartField {
		return last.Field
	}
	return fmt.Sprintf("field%d", last.Index)
}

// Rows returns the accumulated main-memory rows. For Groups, OutputGroup
// must be called first.
func (r *Results) Rows() []expr.Value { return r.rows }

// Len reports the number of main-memory rows currently accumulated
// (Stored rows that spilled are not counted, matching the Stored
// variant's whole point of staying out of memory).
func (r *Results) Len() int { return len(r.rows) }

// SetRows replaces the main-memory rows wholesale, used by ORDER BY and
// START/LIMIT to install their post-processed slice.
func (r *Results) SetRows(rows []expr.Value) { r.rows = rows }
