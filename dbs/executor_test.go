package dbs

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/surrealdb/surrealdb/cnf"
	"github.com/surrealdb/surrealdb/expr"
	"github.com/surrealdb/surrealdb/storekv"
)

func newTestExecutor() (*Executor, *storekv.Store) {
	store := storekv.New()
	planner := NewDefaultPlanner()
	doc := NewRecordProcessor()
	return NewExecutor(store, planner, doc), store
}

// TestOptionPermissionDenied confirms OPTION requires Edit permission at
// the database scope or higher (spec.md §4.3 "check_execute_option_permissions").
func TestOptionPermissionDenied(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})
	ctx.Auth = &cnf.Auth{Kind: cnf.AuthSC}

	stm := &Statement{Kind: StmtOption, OptionName: "IMPORT", OptionVal: true}
	resp := exec.ExecuteStream(ctx, []*Statement{stm})

	if len(resp) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resp))
	}
	if resp[0].Err == nil || resp[0].Err.Kind != ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", resp[0].Err)
	}
}

// TestOptionPermissionAllowed confirms Db-scope auth or higher privilege
// may set recognized OPTION names, and that an unrecognized name is
// silently ignored rather than rejected.
func TestOptionPermissionAllowed(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})
	ctx.Auth = &cnf.Auth{Kind: cnf.AuthDB}

	stmts := []*Statement{
		{Kind: StmtOption, OptionName: "IMPORT", OptionVal: true},
		{Kind: StmtOption, OptionName: "NOT_A_REAL_OPTION", OptionVal: true},
	}
	resp := exec.ExecuteStream(ctx, stmts)

	if len(resp) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(resp))
	}
	for i, r := range resp {
		if r.Err != nil {
			t.Fatalf("statement %d: unexpected error %v", i, r.Err)
		}
	}
	if !ctx.Import {
		t.Fatalf("expected ctx.Import to be set true")
	}
}

// TestQueryTimedout confirms a Context already past its deadline reports
// QueryTimedout for the next statement and QueryNotExecuted for every
// statement after it, instead of executing them.
func TestQueryTimedout(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{}).WithDeadline(0)
	time.Sleep(time.Millisecond)

	stmts := []*Statement{
		{Kind: StmtReturn, ReturnVal: expr.Int(1)},
		{Kind: StmtReturn, ReturnVal: expr.Int(2)},
	}
	resp := exec.ExecuteStream(ctx, stmts)

	if len(resp) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(resp))
	}
	if resp[0].Err == nil || resp[0].Err.Kind != ErrQueryTimedout {
		t.Fatalf("expected ErrQueryTimedout, got %v", resp[0].Err)
	}
	if resp[1].Err == nil || resp[1].Err.Kind != ErrQueryNotExecuted {
		t.Fatalf("expected ErrQueryNotExecuted for the backfilled statement, got %v", resp[1].Err)
	}
}

func mutateTo(v expr.Value) Mutation {
	return func(current expr.Value) (expr.Value, *Error) { return v, nil }
}

func createPlan(tb, id string) *Statement {
	return &Statement{
		Kind: StmtData,
		Plan: &LogicalPlan{
			Iterables: []Iterable{ThingIterable(expr.NewThing(tb, expr.Str(id)))},
		},
		Mutate:     mutateTo(expr.ObjectOf(expr.NewObject())),
		CreateOnly: true,
	}
}

// TestBeginCommit confirms a BEGIN...COMMIT block around a single CREATE
// yields one successful Response.
func TestBeginCommit(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})

	stmts := []*Statement{
		{Kind: StmtBegin},
		createPlan("person", "1"),
		{Kind: StmtCommit},
	}
	resp := exec.ExecuteStream(ctx, stmts)
	// BEGIN/COMMIT themselves produce no Response of their own — only the
	// data statement between them does.
	if len(resp) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resp))
	}
	if resp[0].Err != nil {
		t.Fatalf("unexpected error: %v", resp[0].Err)
	}
}

// TestBeginDuplicateCreateBackfills confirms a mid-block error erases
// prior successes in that block to QueryNotExecuted rather than leaving
// them looking committed, and that the block stops there: the COMMIT
// that would have followed is fast-forwarded over, not executed, since
// the transaction was already cancelled.
func TestBeginDuplicateCreateBackfills(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})

	stmts := []*Statement{
		{Kind: StmtBegin},
		createPlan("person", "1"),
		createPlan("person", "1"),
		{Kind: StmtCommit},
	}
	resp := exec.ExecuteStream(ctx, stmts)
	if len(resp) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(resp))
	}
	if resp[0].Err == nil || resp[0].Err.Kind != ErrQueryNotExecuted {
		t.Fatalf("expected first CREATE backfilled to QueryNotExecuted, got %v", resp[0].Err)
	}
	if resp[1].Err == nil {
		t.Fatalf("expected second CREATE to carry the real duplicate-record error")
	}
}

// TestBeginReturnTruncates confirms a successful RETURN inside a block
// truncates the block's results to just that RETURN, and statements
// between it and COMMIT/CANCEL are skipped (but COMMIT itself still
// runs, closing the transaction).
func TestBeginReturnTruncates(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})

	stmts := []*Statement{
		{Kind: StmtBegin},
		createPlan("person", "1"),
		{Kind: StmtReturn, ReturnVal: expr.Str("done")},
		createPlan("person", "2"),
		{Kind: StmtCommit},
	}
	resp := exec.ExecuteStream(ctx, stmts)
	if len(resp) != 1 {
		t.Fatalf("expected block truncated to 1 response, got %d", len(resp))
	}
	if resp[0].Err != nil {
		t.Fatalf("unexpected error: %v", resp[0].Err)
	}
	if resp[0].Result.Str() != "done" {
		t.Fatalf("expected RETURN value %q, got %q", "done", resp[0].Result.Str())
	}
}

// TestImplicitCancelOnStreamExhaustion confirms a BEGIN block that never
// reaches COMMIT/CANCEL before the statement stream ends is treated as
// an implicit CANCEL.
func TestImplicitCancelOnStreamExhaustion(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})

	stmts := []*Statement{
		{Kind: StmtBegin},
		createPlan("person", "1"),
	}
	resp := exec.ExecuteStream(ctx, stmts)
	if len(resp) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resp))
	}
	if resp[0].Err == nil || resp[0].Err.Kind != ErrQueryNotExecutedDetail {
		t.Fatalf("expected the implicit-cancel detail error, got %v", resp[0].Err)
	}
}

// TestSetBindsVarAndReturnsNone confirms SET binds its value into the
// Context under the given name and itself yields a None result.
func TestSetBindsVarAndReturnsNone(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})

	stm := &Statement{Kind: StmtSet, SetName: "x", SetVal: expr.Int(42)}
	resp := exec.ExecuteStream(ctx, []*Statement{stm})

	if len(resp) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resp))
	}
	if resp[0].Err != nil {
		t.Fatalf("unexpected error: %v", resp[0].Err)
	}
	if !resp[0].Result.IsNone() {
		t.Fatalf("expected a None result, got %#v", resp[0].Result)
	}
	if got, ok := ctx.Vars["x"]; !ok || got.Number().Int() != 42 {
		t.Fatalf("expected ctx.Vars[x] == 42, got %#v (ok=%v)", got, ok)
	}
}

// TestUseSetsNamespaceAndDatabase confirms USE applies in place and
// returns a None Response, per spec.md §4.3.
func TestUseSetsNamespaceAndDatabase(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})

	stm := &Statement{Kind: StmtUse, UseNS: "n", UseDB: "d"}
	resp := exec.ExecuteStream(ctx, []*Statement{stm})

	if len(resp) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resp))
	}
	if resp[0].Err != nil {
		t.Fatalf("unexpected error: %v", resp[0].Err)
	}
	if !resp[0].Result.IsNone() {
		t.Fatalf("expected a None result, got %#v", resp[0].Result)
	}
	if ctx.NS != "n" || ctx.DB != "d" {
		t.Fatalf("expected NS/DB to be set, got NS=%q DB=%q", ctx.NS, ctx.DB)
	}
}

// TestDataStatementTimeout reproduces scenario 2: a data statement with a
// small TIMEOUT completes normally with an Other query_type.
func TestDataStatementTimeout(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})

	stm := createPlan("person", "1")
	stm.TimeoutSeconds = 2
	resp := exec.ExecuteStream(ctx, []*Statement{stm})

	if len(resp) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resp))
	}
	if resp[0].Err != nil {
		t.Fatalf("unexpected error: %v", resp[0].Err)
	}
	if resp[0].QueryType != QueryTypeOther {
		t.Fatalf("expected query_type Other, got %q", resp[0].QueryType)
	}
}

// TestDataStatementInvalidTimeout reproduces scenario 3: a TIMEOUT so
// large it can't be represented as a time.Duration surfaces an
// "Invalid timeout" error instead of silently wrapping.
func TestDataStatementInvalidTimeout(t *testing.T) {
	exec, _ := newTestExecutor()
	ctx := NewContext(context.Background(), &cnf.Options{})

	stm := createPlan("person", "1")
	stm.TimeoutSeconds = 9460800000000000000 // 300 billion years
	resp := exec.ExecuteStream(ctx, []*Statement{stm})

	if len(resp) != 1 {
		t.Fatalf("expected 1 response, got %d", len(resp))
	}
	if resp[0].Err == nil || resp[0].Err.Kind != ErrInvalidTimeout {
		t.Fatalf("expected ErrInvalidTimeout, got %v", resp[0].Err)
	}
	if !strings.Contains(resp[0].Err.Error(), "Invalid timeout") {
		t.Fatalf("expected error message to contain %q, got %q", "Invalid timeout", resp[0].Err.Error())
	}
}
