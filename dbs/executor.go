package dbs

import (
	"fmt"
	"math"
	"time"

	"github.com/surrealdb/surrealdb/cnf"
	"github.com/surrealdb/surrealdb/expr"
)

// Executor drives a stream of Statements to completion, handling the
// BEGIN/CANCEL/COMMIT transaction-block state machine, OPTION/SET
// bookkeeping, and RETURN's result-truncation behavior. Grounded
// literally on teacher's db/executor.go (execute/operate/begin/cancel/
// commit/groupd) and original_source/crates/core/src/dbs/executor.rs.
type Executor struct {
	DS      Datastore
	Planner Planner
	Doc     DocumentProcessor
}

// NewExecutor builds an Executor over the given Datastore, Planner, and
// DocumentProcessor collaborators.
func NewExecutor(ds Datastore, planner Planner, doc DocumentProcessor) *Executor {
	return &Executor{DS: ds, Planner: planner, Doc: doc}
}

// ExecuteStream runs every statement in stmts against ctx, returning one
// Response per statement that ends up in the output (RETURN truncation
// can mean fewer Responses than len(stmts)).
func (e *Executor) ExecuteStream(ctx *Context, stmts []*Statement) []*Response {
	var results []*Response

	i := 0
	for i < len(stmts) {
		if derr := ctx.Done(true); derr != nil {
			results = append(results, errResponse(derr))
			for j := i + 1; j < len(stmts); j++ {
				results = append(results, errResponse(NewError(ErrQueryNotExecuted, "")))
			}
			return results
		}

		stm := stmts[i]

		if stm.Kind == StmtBegin {
			var block []*Response
			block, i = e.executeBlock(ctx, stmts, i)
			results = append(results, block...)
			continue
		}

		start := time.Now()
		resp := e.executeOne(ctx, nil, stm)
		logSlow(ctx.SlowLogThreshold, stm.Text, time.Since(start))
		results = append(results, resp)
		i++
	}

	return results
}

// executeBlock runs one BEGIN...COMMIT/CANCEL block starting at
// stmts[begin], returning the Responses it produced and the index of
// the statement following the block.
func (e *Executor) executeBlock(ctx *Context, stmts []*Statement, begin int) ([]*Response, int) {
	var block []*Response
	startResults := 0
	skipRemaining := false

	txn, err := e.DS.Begin(ctx.StdContext(), true)
	if err != nil {
		return []*Response{errResponse(WrapError(ErrQueryNotExecutedDetail, err))}, fastForward(stmts, begin) + 1
	}

	j := begin + 1
	for ; j < len(stmts); j++ {

		if derr := ctx.Done(true); derr != nil {
			backfill(block, derr.Kind)
			_ = txn.Cancel()
			return block, fastForward(stmts, j) + 1
		}

		stm := stmts[j]

		switch stm.Kind {

		case StmtBegin:
			backfill(block, ErrQueryNotExecuted)
			block = append(block, errResponse(NewError(ErrQueryNotExecutedDetail, "Nested BEGIN statements are not supported")))
			_ = txn.Cancel()
			return block, fastForward(stmts, j) + 1

		case StmtCancel:
			backfill(block, ErrQueryCancelled)
			_ = txn.Cancel()
			return block, j + 1

		case StmtCommit:
			if err := txn.CompleteChanges(false); err != nil {
				backfill(block, ErrQueryNotExecuted)
				block[len(block)-1] = errResponse(WrapError(ErrQueryNotExecutedDetail, err))
				_ = txn.Cancel()
				return block, j + 1
			}
			if err := txn.Commit(); err != nil {
				backfill(block, ErrQueryNotExecuted)
				block[len(block)-1] = errResponse(WrapError(ErrQueryNotExecutedDetail, err))
				_ = txn.Cancel()
				return block, j + 1
			}
			return block, j + 1

		default:
			if skipRemaining {
				continue
			}

			start := time.Now()
			resp := e.executeOne(ctx, txn, stm)
			logSlow(ctx.SlowLogThreshold, stm.Text, time.Since(start))

			if resp.Err != nil {
				backfill(block, ErrQueryNotExecuted)
				block = append(block, resp)
				_ = txn.Cancel()
				return block, fastForward(stmts, j) + 1
			}

			block = append(block, resp)

			if stm.Kind == StmtReturn {
				final := block[len(block)-1]
				block = append(block[:startResults], final)
				skipRemaining = true
			}
		}
	}

	// Stream exhausted without COMMIT/CANCEL: treated as an implicit
	// CANCEL, per spec.md §4.3.
	backfill(block, ErrQueryCancelled)
	if len(block) > 0 {
		block[len(block)-1] = errResponse(NewError(ErrQueryNotExecutedDetail, "Missing COMMIT statement"))
	} else {
		block = append(block, errResponse(NewError(ErrQueryNotExecutedDetail, "Missing COMMIT statement")))
	}
	_ = txn.Cancel()
	return block, j
}

// backfill rewrites every response in block to kind, the last one
// included; callers that report a specific error for the last statement
// overwrite it afterwards. Used to erase prior successful results from a
// block that ultimately failed/cancelled, per spec.md §4.3.
func backfill(block []*Response, kind ErrKind) {
	for i := range block {
		block[i] = errResponse(NewError(kind, ""))
	}
}

// fastForward scans forward from j to the next CANCEL/COMMIT statement,
// so a mid-block error or nested BEGIN doesn't re-execute the rest of
// the (now-doomed) block.
func fastForward(stmts []*Statement, j int) int {
	for k := j + 1; k < len(stmts); k++ {
		if stmts[k].Kind == StmtCancel || stmts[k].Kind == StmtCommit {
			return k
		}
	}
	return len(stmts) - 1
}

// executeOne runs a single non-control statement: OPTION, SET, RETURN,
// or a data statement driven through the Iterator. txn is nil outside a
// transaction block, in which case a data statement opens its own
// single-statement transaction.
func (e *Executor) executeOne(ctx *Context, txn Transaction, stm *Statement) *Response {
	start := time.Now()

	switch stm.Kind {

	case StmtOption:
		if err := e.applyOption(ctx, stm); err != nil {
			return errResponse(err)
		}
		return okResponse(expr.Null(), time.Since(start))

	case StmtSet:
		if derr := ctx.MutateLocked(func() {
			ctx.Vars[stm.SetName] = stm.SetVal
		}); derr != nil {
			return errResponse(derr)
		}
		return okResponse(expr.None(), time.Since(start))

	case StmtUse:
		if derr := ctx.MutateLocked(func() {
			if stm.UseNS != "" {
				ctx.NS = stm.UseNS
			}
			if stm.UseDB != "" {
				ctx.DB = stm.UseDB
			}
		}); derr != nil {
			return errResponse(derr)
		}
		return okResponse(expr.None(), time.Since(start))

	case StmtReturn:
		return okResponse(stm.ReturnVal, time.Since(start))

	case StmtData:
		return e.executeData(ctx, txn, stm, start)

	default:
		return errResponse(Unreachable("unknown statement kind"))
	}
}

// applyOption handles OPTION NAME = value, per spec.md §4.3: requires
// Edit permission on Option at Db scope, and only the recognized
// uppercased names take effect; everything else is silently ignored.
func (e *Executor) applyOption(ctx *Context, stm *Statement) *Error {
	if ctx.Auth == nil || ctx.Auth.Kind > cnf.AuthDB {
		return NewError(ErrPermissionDenied, "OPTION requires Edit permission at the database scope")
	}

	return ctx.MutateLocked(func() {
		switch upper(stm.OptionName) {
		case "IMPORT":
			ctx.Import = stm.OptionVal
		case "FORCE":
			ctx.Force = stm.OptionVal
		case "FUTURES":
			ctx.Futures = stm.OptionVal
			ctx.FuturesNv = !stm.OptionVal
		}
	})
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// executeData runs a data statement's LogicalPlan through an Iterator
// and folds the per-statement timeout/cancellation check in after the
// compute step, per spec.md §5 ("ctx.done(true) is checked... after
// execute_plan_in_transaction's compute step").
func (e *Executor) executeData(ctx *Context, txn Transaction, stm *Statement, start time.Time) *Response {
	if stm.TimeoutSeconds != 0 {
		d, ok := secondsToDuration(stm.TimeoutSeconds)
		if !ok {
			return errResponse(NewError(ErrInvalidTimeout, fmt.Sprintf("%ds does not fit in a duration", stm.TimeoutSeconds)))
		}
		ctx = ctx.WithDeadline(d)
		defer ctx.Cancel()
	}

	owned := false
	if txn == nil {
		var err error
		txn, err = e.DS.Begin(ctx.StdContext(), true)
		if err != nil {
			return errResponse(WrapError(ErrQueryNotExecutedDetail, err))
		}
		owned = true
	}

	it := NewIterator(e.Planner, e.Doc, stm, txn)
	result, err := it.Run(ctx)

	if derr := ctx.Done(true); derr != nil {
		if owned {
			_ = txn.Cancel()
		}
		return errResponse(derr)
	}

	if err != nil {
		if owned {
			_ = txn.Cancel()
		}
		return errResponse(err)
	}

	if owned {
		if cerr := txn.CompleteChanges(false); cerr != nil {
			_ = txn.Cancel()
			return errResponse(WrapError(ErrQueryNotExecutedDetail, cerr))
		}
		if cerr := txn.Commit(); cerr != nil {
			_ = txn.Cancel()
			return errResponse(WrapError(ErrQueryNotExecutedDetail, cerr))
		}
	}

	if stm.Single && len(result.Arr()) > 1 {
		return errResponse(NewError(ErrSingleOnlyOutput, ""))
	}

	return okResponse(result, time.Since(start))
}

// secondsToDuration converts a requested timeout in seconds to a
// time.Duration, reporting false when the multiplication by
// time.Second overflows int64 nanoseconds (scenario: "TIMEOUT
// 9460800000000000000s" — 300 billion years, far outside what a
// Duration can represent).
func secondsToDuration(secs uint64) (time.Duration, bool) {
	ns := secs * uint64(time.Second)
	if ns/uint64(time.Second) != secs || ns > math.MaxInt64 {
		return 0, false
	}
	return time.Duration(ns), true
}
