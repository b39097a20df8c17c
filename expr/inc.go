package expr

// Inc implements the `+=` value operator: pick the current value at
// path, combine it with val, and put the result back. Grounded literally
// on original_source/crates/core/src/expr/value/inc.rs and its test
// table (increment_none/number/array_number/array_value/array_array).
func Inc(root *Value, path Path, val Value) {
	cur := Pick(*root, path)
	Put(root, path, combineInc(cur, val))
}

func combineInc(cur, val Value) Value {
	switch {
	case cur.IsNullOrNone():
		return val

	case cur.Kind == KindNumber && val.Kind == KindNumber:
		return Num(cur.Number().Add(val.Number()))

	case cur.Kind == KindArray && val.Kind == KindArray:
		out := append([]Value{}, cur.Arr()...)
		out = append(out, val.Arr()...)
		return Array(out)

	case cur.Kind == KindArray:
		out := append([]Value{}, cur.Arr()...)
		out = append(out, val)
		return Array(out)

	default:
		return val
	}
}
