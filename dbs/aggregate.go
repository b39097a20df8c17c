package dbs

import "github.com/surrealdb/surrealdb/expr"

// AggFunc computes one aggregate function's value over a group's
// collected rows. Grounded on teacher's db/iterator.go Group() dispatch
// via fncs.Run, reworked into an explicit registry since this module's
// expression evaluator is out of scope (SPEC_FULL.md Non-goals).
type AggFunc func(rows []expr.Value, path expr.Path) expr.Value

// aggregates is the built-in registry: count/sum/mean/min/max/
// array.distinct, the set spec.md's GROUP BY supplement names.
var aggregates = map[string]AggFunc{
	"count": func(rows []expr.Value, path expr.Path) expr.Value {
		return expr.Int(int64(len(rows)))
	},
	"sum": func(rows []expr.Value, path expr.Path) expr.Value {
		acc := expr.IntNum(0)
		for _, r := range rows {
			v := expr.Pick(r, path)
			if v.Kind == expr.KindNumber {
				acc = acc.Add(v.Number())
			}
		}
		return expr.Num(acc)
	},
	"mean": func(rows []expr.Value, path expr.Path) expr.Value {
		acc := expr.IntNum(0)
		n := 0
		for _, r := range rows {
			v := expr.Pick(r, path)
			if v.Kind == expr.KindNumber {
				acc = acc.Add(v.Number())
				n++
			}
		}
		if n == 0 {
			return expr.Int(0)
		}
		return expr.Float(acc.Float() / float64(n))
	},
	"min": func(rows []expr.Value, path expr.Path) expr.Value {
		var min *expr.Number
		for _, r := range rows {
			v := expr.Pick(r, path)
			if v.Kind != expr.KindNumber {
				continue
			}
			n := v.Number()
			if min == nil || n.Less(*min) {
				min = &n
			}
		}
		if min == nil {
			return expr.None()
		}
		return expr.Num(*min)
	},
	"max": func(rows []expr.Value, path expr.Path) expr.Value {
		var max *expr.Number
		for _, r := range rows {
			v := expr.Pick(r, path)
			if v.Kind != expr.KindNumber {
				continue
			}
			n := v.Number()
			if max == nil || max.Less(n) {
				max = &n
			}
		}
		if max == nil {
			return expr.None()
		}
		return expr.Num(*max)
	},
	"array.distinct": func(rows []expr.Value, path expr.Path) expr.Value {
		var out []expr.Value
		for _, r := range rows {
			v := expr.Pick(r, path)
			found := false
			for _, e := range out {
				if e.Equal(v) {
					found = true
					break
				}
			}
			if !found {
				out = append(out, v)
			}
		}
		return expr.Array(out)
	},
}

// Aggregate looks up a registered aggregate function by name.
func Aggregate(name string) (AggFunc, bool) {
	f, ok := aggregates[name]
	return f, ok
}

// RegisterAggregate adds or replaces an aggregate function by name.
func RegisterAggregate(name string, fn AggFunc) {
	aggregates[name] = fn
}
