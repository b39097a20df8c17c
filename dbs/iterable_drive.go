package dbs

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/surrealdb/surrealdb/expr"
)

// driveIterable pulls every candidate Operable out of one Iterable.
// Grounded on teacher's db/iterator.go setupWorkers/submitTask worker
// pool, generalized here to drive a single Iterable rather than fan out
// across a whole statement's worth of table scans — this module's
// pipeline is cooperative and single-flow-per-query (spec.md §5), so the
// pool pattern is kept only for record-id iterables (Thing and Mock):
// driveThings fetches and decodes each id in its own errgroup goroutine,
// with no limit on how many run at once. Table and range scans read and
// decode their key range sequentially.
func driveIterable(ctx *Context, txn Transaction, it Iterable) ([]Operable, *Error) {
	switch it.Kind {

	case IterableValue:
		return []Operable{{Value: it.Value}}, nil

	case IterableArray:
		out := make([]Operable, len(it.Array))
		for i, v := range it.Array {
			out[i] = Operable{Value: v}
		}
		return out, nil

	case IterableMock:
		things := it.Mock.Things()
		return driveThings(ctx, txn, things)

	case IterableThing:
		return driveThings(ctx, txn, []*expr.Thing{it.Thing})

	case IterableTable:
		return driveTable(ctx, txn, it.Table)

	case IterableRange:
		return driveRange(ctx, txn, it.Range)

	case IterableEdges:
		// Graph traversal requires the edge index, which is a storage
		// concern out of scope for this module's in-memory test double
		// (see SPEC_FULL.md §6) — surfaced as an empty result rather than
		// a hard error so statements that merely mention an edge target
		// in a larger UNION still run.
		return nil, nil

	default:
		return nil, Unreachable("unknown iterable kind")
	}
}

func driveThings(ctx *Context, txn Transaction, things []*expr.Thing) ([]Operable, *Error) {
	out := make([]Operable, len(things))
	g := new(errgroup.Group)
	for i, t := range things {
		i, t := i, t
		g.Go(func() error {
			raw, err := txn.Get(ctx.StdContext(), []byte(t.String()))
			if err != nil {
				return err
			}
			var v expr.Value
			if raw != nil {
				v, err = expr.Decode(raw)
				if err != nil {
					return err
				}
			} else {
				v = expr.Null()
			}
			out[i] = Operable{Value: v, Thing: t}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, WrapError(ErrOther, err)
	}
	return out, nil
}

func driveTable(ctx *Context, txn Transaction, tb string) ([]Operable, *Error) {
	beg := []byte(tb + ":")
	end := []byte(tb + ";") // ';' immediately follows ':' in ASCII, giving an exclusive upper bound for the table's key prefix
	kvs, err := txn.GetRange(ctx.StdContext(), beg, end)
	if err != nil {
		return nil, WrapError(ErrOther, err)
	}
	return decodeKVs(kvs)
}

func driveRange(ctx *Context, txn Transaction, r *expr.Range) ([]Operable, *Error) {
	beg := rangeKey(r.TB, r.Beg)
	end := rangeKey(r.TB, r.End)
	kvs, err := txn.GetRange(ctx.StdContext(), beg, end)
	if err != nil {
		return nil, WrapError(ErrOther, err)
	}
	return decodeKVs(kvs)
}

func rangeKey(tb string, b expr.Bound) []byte {
	if b.Open {
		return []byte(tb + ":")
	}
	return []byte(tb + ":" + idStringForKey(b.Value))
}

func idStringForKey(v expr.Value) string {
	if v.Kind == expr.KindNumber {
		return padInt(v.Number().Int())
	}
	return v.Str()
}

// padInt left-pads so lexical byte ordering matches numeric ordering for
// the in-memory test store's sorted keys.
func padInt(i int64) string {
	const width = 20
	s := []byte{}
	neg := i < 0
	if neg {
		i = -i
	}
	for n := i; ; n /= 10 {
		s = append([]byte{byte('0' + n%10)}, s...)
		if n < 10 {
			break
		}
	}
	for len(s) < width {
		s = append([]byte{'0'}, s...)
	}
	if neg {
		return "-" + string(s)
	}
	return string(s)
}

func decodeKVs(kvs []KV) ([]Operable, *Error) {
	sort.Slice(kvs, func(i, j int) bool { return string(kvs[i].Key) < string(kvs[j].Key) })
	out := make([]Operable, 0, len(kvs))
	for _, kv := range kvs {
		v, err := expr.Decode(kv.Val)
		if err != nil {
			return nil, WrapError(ErrOther, err)
		}
		th := thingFromKey(kv.Key)
		out = append(out, Operable{Value: v, Thing: th})
	}
	return out, nil
}

func thingFromKey(key []byte) *expr.Thing {
	s := string(key)
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return expr.NewThing(s[:i], expr.Str(s[i+1:]))
		}
	}
	return expr.NewThing(s, expr.Str(""))
}
