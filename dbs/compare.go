package dbs

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/surrealdb/surrealdb/expr"
)

var collator = collate.New(language.Und)

// compareValues orders two scalar Values. Locale-aware for strings via
// golang.org/x/text/collate, matching teacher's go.mod require of
// golang.org/x/text for exactly this kind of comparison.
func compareValues(a, b expr.Value) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	switch a.Kind {
	case expr.KindNumber:
		switch {
		case a.Number().Less(b.Number()):
			return -1
		case b.Number().Less(a.Number()):
			return 1
		default:
			return 0
		}
	case expr.KindString:
		return collator.CompareString(a.Str(), b.Str())
	case expr.KindBool:
		if a.Bool() == b.Bool() {
			return 0
		}
		if !a.Bool() {
			return -1
		}
		return 1
	case expr.KindDatetime:
		switch {
		case a.Time().Before(b.Time()):
			return -1
		case a.Time().After(b.Time()):
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// compareRows compares two rows across a multi-field ORDER BY spec,
// short-circuiting at the first field that differs.
func compareRows(a, b expr.Value, order []OrderField) int {
	for _, f := range order {
		c := compareValues(expr.Pick(a, f.Path), expr.Pick(b, f.Path))
		if f.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}
