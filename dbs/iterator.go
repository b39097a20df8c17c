package dbs

import (
	"runtime"

	"github.com/surrealdb/surrealdb/expr"
)

// Iterator drives one data statement's LogicalPlan through its full
// pipeline: ingestion from each Iterable, per-record WHERE filtering and
// document processing, SPLIT/GROUP/ORDER, START/LIMIT, and FETCH.
// Grounded on teacher's db/iterator.go (newIterator/setupState/Yield)
// and original_source/crates/core/src/dbs/iterator.rs.
type Iterator struct {
	planner Planner
	doc     DocumentProcessor
	stm     *Statement
	txn     Transaction
}

func NewIterator(planner Planner, doc DocumentProcessor, stm *Statement, txn Transaction) *Iterator {
	return &Iterator{planner: planner, doc: doc, stm: stm, txn: txn}
}

// Run executes the full pipeline and returns the resulting Array value.
func (it *Iterator) Run(ctx *Context) (expr.Value, *Error) {
	plan := it.stm.Plan
	if plan == nil {
		return expr.Array(nil), nil
	}

	if derr := ctx.Dive(); derr != nil {
		return expr.Value{}, derr
	}
	defer ctx.Rise()

	var iterables []Iterable
	if err := it.planner.AddIterables(ctx, plan, func(i Iterable) { iterables = append(iterables, i) }); err != nil {
		return expr.Value{}, WrapError(ErrOther, err)
	}

	for _, i := range iterables {
		tb := tableOf(i)
		if tb == "" {
			continue
		}
		if ok, err := it.planner.CheckTablePermission(ctx, tb); err != nil {
			return expr.Value{}, WrapError(ErrOther, err)
		} else if !ok {
			return expr.Value{}, NewError(ErrPermissionDenied, "no permission to access table `"+tb+"`")
		}
	}

	pd := checkSetStartLimit(ctx, it.planner, plan, iterables)

	var results *Results
	if plan.Group != nil {
		results = NewGroupResults(plan.Group)
	} else {
		results = NewMemoryResults()
	}

	rawSkip := 0
	limit := -1
	if pd.enabled {
		if plan.Start != nil && pd.startSkip {
			rawSkip = *plan.Start
		}
		if plan.Limit != nil {
			limit = *plan.Limit
		}
	}

	count := 0
	seen := 0
	distinct := make(map[string]bool)

scan:
	for gen, iterable := range iterables {
		ops, err := driveIterable(ctx, it.txn, iterable)
		if err != nil {
			return expr.Value{}, err
		}

		for _, op := range ops {
			if plan.SyncDistinct && op.Thing != nil {
				key := op.Thing.String()
				if distinct[key] {
					continue
				}
				distinct[key] = true
			}

			if plan.Cond != nil {
				ok, cerr := plan.Cond.Matches(op.Value)
				if cerr != nil {
					return expr.Value{}, WrapError(ErrOther, cerr)
				}
				if !ok {
					continue
				}
			}

			if rawSkip > 0 {
				rawSkip--
				continue
			}

			val, perr := it.doc.Process(ctx, it.txn, it.stm, Processed{Generation: gen, Operable: op})
			if perr != nil {
				if isIgnore(perr) {
					continue
				}
				return expr.Value{}, perr
			}

			results.Push(val)
			count++

			seen++
			if seen%100 == 0 {
				runtime.Gosched()
				if derr := ctx.Done(false); derr != nil {
					return expr.Value{}, derr
				}
			}

			if pd.enabled && limit >= 0 && count >= limit {
				break scan
			}
		}
	}

	if err := results.OutputGroup(); err != nil {
		return expr.Value{}, WrapError(ErrOther, err)
	}

	rows := results.Rows()

	if len(plan.Order) > 0 {
		rows = sortRows(rows, plan.Order)
	}

	if !(pd.enabled && pd.startSkip) && plan.Start != nil {
		if *plan.Start >= len(rows) {
			rows = nil
		} else {
			rows = rows[*plan.Start:]
		}
	}

	if !pd.enabled && plan.Limit != nil && *plan.Limit < len(rows) {
		rows = rows[:*plan.Limit]
	}

	if len(plan.Fetch) > 0 {
		rows = fetchRows(ctx, it.txn, rows, plan.Fetch)
	}

	if plan.Explain || plan.ExplainFull {
		return explainResult(plan, iterables, pd, len(rows)), nil
	}

	return expr.Array(rows), nil
}

// fetchRows dereferences Thing-valued fields named in paths into their
// full stored record, the FETCH pipeline stage (spec.md §4.2, run last).
func fetchRows(ctx *Context, txn Transaction, rows []expr.Value, paths []expr.Path) []expr.Value {
	out := make([]expr.Value, len(rows))
	for i, row := range rows {
		cp := row.Clone()
		for _, p := range paths {
			target := expr.Pick(cp, p)
			if target.Kind != expr.KindThing {
				continue
			}
			key := target.Thing().String()
			raw, err := txn.Get(ctx.StdContext(), []byte(key))
			if err != nil || raw == nil {
				continue
			}
			resolved, err := decodeCached(ctx, key, raw)
			if err != nil {
				continue
			}
			expr.Put(&cp, p, resolved)
		}
		out[i] = cp
	}
	return out
}

// explainResult renders the Explanation as a Value, per the supplemented
// EXPLAIN/EXPLAIN FULL feature (SPEC_FULL.md).
func explainResult(plan *LogicalPlan, iterables []Iterable, pd pushdown, fetched int) expr.Value {
	exp := &Explanation{}
	for _, it := range iterables {
		strategy := "scan"
		if it.IsIndexScan() {
			strategy = "index:" + it.Index
		}
		exp.add("iterator", expr.Str(strategy))
	}
	exp.add("start-limit-pushdown", expr.Bool(pd.enabled))
	if plan.ExplainFull {
		exp.add("fetched", expr.Int(int64(fetched)))
	}

	rows := make([]expr.Value, len(exp.Rows))
	for i, r := range exp.Rows {
		obj := expr.NewObject()
		obj.Set("detail", expr.Str(r.Detail))
		obj.Set("value", r.Value)
		rows[i] = expr.ObjectOf(obj)
	}
	return expr.Array(rows)
}
