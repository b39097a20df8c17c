//go:build js

package dbs

import (
	"sort"

	"github.com/surrealdb/surrealdb/expr"
)

// sortRows on wasm builds never parallelizes — there is no OS-thread
// pool to spread the work across — matching spec.md §4.2's "parallel on
// non-wasm" clause.
func sortRows(rows []expr.Value, order []OrderField) []expr.Value {
	if len(order) == 0 || len(rows) < 2 {
		return rows
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return compareRows(rows[i], rows[j], order) < 0
	})
	return rows
}
