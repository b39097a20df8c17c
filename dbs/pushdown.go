package dbs

// pushdown records whether START/LIMIT may be applied by the Iterator
// during the scan instead of after the full pipeline runs, and whether
// START specifically may be applied as a cheap pre-skip.
type pushdown struct {
	enabled   bool
	startSkip bool
}

// checkSetStartLimit is the push-down safety table, grounded literally
// on original_source/crates/core/src/dbs/iterator.rs's
// `check_set_start_limit` (including its doc-commented worked example,
// reproduced as iterator_test.go's TestPushdownDisabledByWhere):
//
//   - GROUP BY always disables push-down: grouping needs every row.
//   - More than one Iterable always disables push-down: START/LIMIT
//     can't be divided safely across independent sources.
//   - With a WHERE clause, push-down is only safe if the single
//     Iterable is an index scan whose executor confirms it already
//     applies that WHERE condition itself (and, if ORDER BY is also
//     present, that index's natural order matches it too).
//   - With ORDER BY but no WHERE, push-down is only safe if the single
//     Iterable's natural order already matches ORDER BY.
//   - Otherwise (no WHERE, no ORDER BY, no GROUP BY, one Iterable),
//     push-down is always safe.
//
// When enabled, LIMIT always becomes an early-stop (cancel_on_limit).
// START becomes a cheap pre-doc-processing skip only when no per-record
// permission check applies to the target table; otherwise START must
// wait until after permission filtering, so the Iterator applies it
// post-hoc instead.
func checkSetStartLimit(ctx *Context, planner Planner, plan *LogicalPlan, iterables []Iterable) pushdown {
	if plan.Group != nil {
		return pushdown{}
	}
	if len(iterables) != 1 {
		return pushdown{}
	}

	it := iterables[0]
	enabled := false

	switch {
	case plan.Cond != nil:
		enabled = it.IsIndexScan() &&
			planner.IsIteratorCondition(ctx, it, plan.Cond) &&
			(len(plan.Order) == 0 || planner.IsOrder(ctx, it, plan.Order))

	case len(plan.Order) > 0:
		enabled = it.IsIndexScan() && planner.IsOrder(ctx, it, plan.Order)

	default:
		enabled = true
	}

	if !enabled {
		return pushdown{}
	}

	tb := tableOf(it)
	return pushdown{enabled: true, startSkip: !planner.IsAnySpecificPermission(ctx, tb)}
}
