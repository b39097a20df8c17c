package dbs

import "github.com/surrealdb/surrealdb/expr"

// Condition is the WHERE predicate a LogicalPlan carries. A function
// value stands in for a full expression evaluator (out of scope, see
// SPEC_FULL.md Non-goals); callers/tests build one directly, exactly as
// spec.md §6 says LogicalPlan values are constructed by callers since no
// parser is implemented here.
type Condition interface {
	Matches(v expr.Value) (bool, error)
}

// CondFunc adapts a plain function to Condition.
type CondFunc func(v expr.Value) (bool, error)

func (f CondFunc) Matches(v expr.Value) (bool, error) { return f(v) }

// LogicalPlan is the pre-compiled description of one data statement's
// target and post-processing pipeline: iterables to scan, an optional
// WHERE condition, GROUP/ORDER/START/LIMIT/FETCH. Grounded on
// original_source's Iterator fields populated from a parsed statement;
// here it is the direct input callers/tests hand to the Iterator.
type LogicalPlan struct {
	Iterables []Iterable
	Cond      Condition
	Group     *GroupBy
	Order     []OrderField
	Start     *int
	Limit     *int
	Fetch     []expr.Path

	Explain     bool
	ExplainFull bool

	// SyncDistinct forces deduplication of rows across iterables sharing
	// identical keys (spec.md §3 "SyncDistinct"), needed when multiple
	// iterables can produce the same record (e.g. overlapping edges).
	SyncDistinct bool
}

// Explanation is the EXPLAIN/EXPLAIN FULL row set describing the
// decisions an Iterator made: which strategy it used per iterable,
// whether start/limit push-down applied, and (EXPLAIN FULL only) a
// final fetched-row count. Grounded on original_source dbs/iterator.rs's
// `output()` building a Plan via Plan::new/add_record_strategy/
// add_start_limit/add_fetch.
type Explanation struct {
	Rows []ExplainRow
}

type ExplainRow struct {
	Detail string
	Value  expr.Value
}

func (e *Explanation) add(detail string, v expr.Value) {
	e.Rows = append(e.Rows, ExplainRow{Detail: detail, Value: v})
}
