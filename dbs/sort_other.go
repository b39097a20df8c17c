//go:build !js

package dbs

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/surrealdb/surrealdb/expr"
)

// sortRows stably sorts rows by order. On non-wasm builds, large row
// sets are split into GOMAXPROCS partitions, sorted concurrently with
// errgroup, then merged — spec.md §4.2's "stable, parallel on non-wasm"
// requirement. Grounded on teacher's worker-pool idiom (db/iterator.go)
// generalized here to a parallel sort instead of a parallel scan.
func sortRows(rows []expr.Value, order []OrderField) []expr.Value {
	if len(order) == 0 || len(rows) < 2 {
		return rows
	}

	procs := runtime.GOMAXPROCS(0)
	if procs < 2 || len(rows) < procs*256 {
		sort.SliceStable(rows, func(i, j int) bool {
			return compareRows(rows[i], rows[j], order) < 0
		})
		return rows
	}

	chunks := partition(rows, procs)
	g := new(errgroup.Group)
	for _, c := range chunks {
		c := c
		g.Go(func() error {
			sort.SliceStable(c, func(i, j int) bool {
				return compareRows(c[i], c[j], order) < 0
			})
			return nil
		})
	}
	_ = g.Wait()

	return mergeSorted(chunks, order)
}

func partition(rows []expr.Value, n int) [][]expr.Value {
	size := (len(rows) + n - 1) / n
	var out [][]expr.Value
	for i := 0; i < len(rows); i += size {
		end := i + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[i:end])
	}
	return out
}

// mergeSorted performs a stable k-way merge of already-sorted chunks.
func mergeSorted(chunks [][]expr.Value, order []OrderField) []expr.Value {
	total := 0
	idx := make([]int, len(chunks))
	for _, c := range chunks {
		total += len(c)
	}
	out := make([]expr.Value, 0, total)

	for {
		best := -1
		for ci, c := range chunks {
			if idx[ci] >= len(c) {
				continue
			}
			if best == -1 || compareRows(c[idx[ci]], chunks[best][idx[best]], order) < 0 {
				best = ci
			}
		}
		if best == -1 {
			break
		}
		out = append(out, chunks[best][idx[best]])
		idx[best]++
	}

	return out
}
