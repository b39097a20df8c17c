package dbs

import (
	"context"
	"testing"

	"github.com/surrealdb/surrealdb/cnf"
	"github.com/surrealdb/surrealdb/expr"
	"github.com/surrealdb/surrealdb/storekv"
)

func defaultOpts() *cnf.Options { return &cnf.Options{} }

// seedTable writes tb:1..tb:N with field f set per fVals, returning the
// open Datastore so a test can drive an Iterator against it.
func seedTable(t *testing.T, tb string, fVals []bool) *storekv.Store {
	t.Helper()
	store := storekv.New()

	txn, err := store.Begin(context.Background(), true)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	for i, f := range fVals {
		obj := expr.NewObject()
		obj.Set("f", expr.Bool(f))
		enc, err := expr.Encode(expr.ObjectOf(obj))
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		key := []byte(tb + ":" + string(rune('0'+i+1)))
		if err := txn.Put(context.Background(), key, enc); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return store
}

func notField(field string) Condition {
	return CondFunc(func(v expr.Value) (bool, error) {
		fv, ok := v.Obj().Get(field)
		return ok && fv.Kind == expr.KindBool && !fv.Bool(), nil
	})
}

// TestPushdownDisabledByWhere reproduces the literal worked example
// grounded on original_source's check_set_start_limit doc comment:
// `SELECT * FROM t WHERE !f START 1` over t:1(f=true), t:2(f=true),
// t:3(f=false), t:4(f=false) must yield only [t:4]. Push-down must be
// disabled here (no index confirms the WHERE condition), so WHERE
// filters to [t3, t4] first and START=1 removes t3 post-hoc.
func TestPushdownDisabledByWhere(t *testing.T) {
	store := seedTable(t, "t", []bool{true, true, false, false})

	txn, err := store.Begin(context.Background(), true)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	start := 1
	plan := &LogicalPlan{
		Iterables: []Iterable{TableIterable("t")},
		Cond:      notField("f"),
		Start:     &start,
	}
	stm := &Statement{Kind: StmtData, Plan: plan}

	planner := NewDefaultPlanner()
	doc := NewRecordProcessor()
	it := NewIterator(planner, doc, stm, txn)

	ctx := NewContext(context.Background(), defaultOpts())

	result, derr := it.Run(ctx)
	if derr != nil {
		t.Fatalf("run: %v", derr)
	}

	rows := result.Arr()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %v", len(rows), rows)
	}
	id, ok := rows[0].Obj().Get("id")
	if !ok || id.Thing() == nil || id.Thing().String() != "t:4" {
		t.Fatalf("expected row id t:4, got %v", id)
	}
}

// TestPushdownEnabledByIndex exercises the opposite branch of the safety
// table: a single Iterable over an index the Planner confirms already
// applies the WHERE condition makes push-down safe, so START becomes a
// cheap raw skip and LIMIT an early stop.
func TestPushdownEnabledByIndex(t *testing.T) {
	store := seedTable(t, "t", []bool{false, false, false, false})

	txn, err := store.Begin(context.Background(), true)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	start := 1
	limit := 2
	plan := &LogicalPlan{
		Iterables: []Iterable{TableIterable("t")},
		Cond:      notField("f"),
		Start:     &start,
		Limit:     &limit,
	}
	stm := &Statement{Kind: StmtData, Plan: plan}

	planner := NewDefaultPlanner().WithIndex("t", IndexInfo{CoversWhere: true})
	doc := NewRecordProcessor()
	it := NewIterator(planner, doc, stm, txn)

	ctx := NewContext(context.Background(), defaultOpts())

	pd := checkSetStartLimit(ctx, planner, plan, []Iterable{{Kind: IterableTable, Table: "t", Index: "t"}})
	if !pd.enabled {
		t.Fatalf("expected push-down to be enabled when the index covers WHERE")
	}

	result, derr := it.Run(ctx)
	if derr != nil {
		t.Fatalf("run: %v", derr)
	}
	if len(result.Arr()) > limit {
		t.Fatalf("expected at most %d rows, got %d", limit, len(result.Arr()))
	}
}

// TestPushdownDisabledByGroup confirms GROUP BY always disables START/
// LIMIT push-down, regardless of index coverage.
func TestPushdownDisabledByGroup(t *testing.T) {
	planner := NewDefaultPlanner().WithIndex("t", IndexInfo{CoversWhere: true})
	plan := &LogicalPlan{
		Iterables: []Iterable{TableIterable("t")},
		Group:     &GroupBy{},
	}
	ctx := NewContext(context.Background(), defaultOpts())

	pd := checkSetStartLimit(ctx, planner, plan, []Iterable{{Kind: IterableTable, Table: "t", Index: "t"}})
	if pd.enabled {
		t.Fatalf("expected GROUP BY to disable push-down")
	}
}
