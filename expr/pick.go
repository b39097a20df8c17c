package expr

import "strconv"

// Pick is a total, pure read of v at path: it never mutates v and always
// returns a Value (None when nothing is found), grounded literally on
// original_source/crates/core/src/expr/value/pick.rs.
func Pick(v Value, path Path) Value {
	if len(path) == 0 {
		return v
	}

	part, rest := path[0], path[1:]

	switch v.Kind {

	case KindNone, KindNull:
		return None()

	case KindObject:
		switch part.Kind {
		case PartField:
			if fv, ok := v.Obj().Get(part.Field); ok {
				return Pick(fv, rest)
			}
			return None()
		case PartAll:
			vals := v.Obj().Values()
			out := make([]Value, len(vals))
			for i, e := range vals {
				out[i] = Pick(e, rest)
			}
			return Array(out)
		case PartIndex:
			// Matches pick.rs's Object+Index arm: a field lookup by the
			// stringified index, not a map over values.
			if fv, ok := v.Obj().Get(strconv.Itoa(part.Index)); ok {
				return Pick(fv, rest)
			}
			return None()
		case PartFirst, PartLast:
			return None()
		}
		return None()

	case KindArray:
		arr := v.Arr()
		switch part.Kind {
		case PartAll:
			out := make([]Value, len(arr))
			for i, e := range arr {
				out[i] = Pick(e, rest)
			}
			return Array(out)
		case PartFirst:
			if len(arr) == 0 {
				return None()
			}
			return Pick(arr[0], rest)
		case PartLast:
			if len(arr) == 0 {
				return None()
			}
			return Pick(arr[len(arr)-1], rest)
		case PartIndex:
			if part.Index < 0 || part.Index >= len(arr) {
				return None()
			}
			return Pick(arr[part.Index], rest)
		case PartField:
			// The part doesn't describe a shape an array understands on
			// its own, so it's mapped across every element unconsumed,
			// matching pick.rs's `v.iter().map(|v| v.pick(path))` arm —
			// note `path`, not `rest`.
			out := make([]Value, len(arr))
			for i, e := range arr {
				out[i] = Pick(e, path)
			}
			return Array(out)
		}
		return None()

	case KindThing:
		if part.Kind == PartField {
			switch part.Field {
			case "id":
				return Pick(v.Thing().ID, rest)
			case "tb":
				return Pick(Str(v.Thing().TB), rest)
			}
		}
		return None()

	default:
		return None()
	}
}
