package dbs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/surrealdb/surrealdb/cnf"
	"github.com/surrealdb/surrealdb/expr"
)

const maxRecursiveQueries = 50

// Notification is one live-query event delivered through a Context's
// sink after a commit (spec.md §5 "Notification drain").
type Notification struct {
	ID     string
	Action string
	Result interface{}
}

// Context is the conceptually-immutable snapshot shared by every
// statement in one request: session variables, cancellation, the
// notification sink, capabilities, the query planner, and the current
// iteration stage. Grounded on teacher's db/context.go (dive/vers
// recursion guard) and db/vars.go (ctx key constants); the "exactly one
// owner may mutate" rule spec.md §9 calls for is made explicit via
// holders, instead of relying on Rust's borrow checker.
type Context struct {
	std context.Context

	NS   string
	DB   string
	Auth *cnf.Auth

	Force     bool
	Import    bool
	Futures   bool
	FuturesNv bool // FUTURES explicitly disabled ("never"); see DESIGN.md Open Question

	// Vars holds SET-bound session variables (spec.md §4.3 "SET x = expr
	// binds the result into the Context under name x"). Shared by
	// reference across every clone, the same as the rest of this
	// snapshot; mutation still requires sole ownership via MutateLocked.
	Vars map[string]expr.Value

	SlowLogThreshold time.Duration
	MaxRecursion     int

	Planner  Planner
	Document DocumentProcessor
	Cache    *Cache

	sink chan<- Notification

	deadline time.Time
	cancel   context.CancelFunc

	stage int32 // current multi-pass planner iteration stage

	depth int32 // recursion depth, bounded by MaxRecursion

	holders int32 // sole-holder check for in-place mutation
}

// NewContext builds a root Context bound to std for cancellation.
func NewContext(std context.Context, opts *cnf.Options) *Context {
	c := &Context{
		std:              std,
		Auth:             &cnf.Auth{},
		Vars:             make(map[string]expr.Value),
		SlowLogThreshold: opts.Query.SlowLogThreshold,
		MaxRecursion:     opts.Query.MaxRecursion,
		holders:          1,
	}
	if c.MaxRecursion <= 0 {
		c.MaxRecursion = maxRecursiveQueries
	}
	return c
}

// WithDeadline returns a derived Context that will report Done(false)
// past the given deadline.
func (c *Context) WithDeadline(d time.Duration) *Context {
	std, cancel := context.WithTimeout(c.std, d)
	n := c.clone()
	n.std = std
	n.cancel = cancel
	n.deadline = time.Now().Add(d)
	return n
}

// WithNotifications returns a derived Context delivering notifications
// to sink.
func (c *Context) WithNotifications(sink chan<- Notification) *Context {
	n := c.clone()
	n.sink = sink
	return n
}

// WithCache returns a derived Context backed by cache for repeated
// record decodes within this request's lifetime (spec.md §5; see
// DESIGN.md's Cache entry). A nil cache disables caching entirely.
func (c *Context) WithCache(cache *Cache) *Context {
	n := c.clone()
	n.Cache = cache
	return n
}

func (c *Context) clone() *Context {
	cp := *c
	cp.holders = 1
	return &cp
}

// Done reports whether the query should stop: Timedout if the deadline
// passed, Cancelled if the underlying context was cancelled some other
// way. force additionally compares the clock against the deadline before
// the underlying context reports done; it has no effect when no deadline
// is set. Mirrors original_source's `ctx.done(force_check)` signature,
// used at every statement boundary and after computing a plan (spec.md §5).
func (c *Context) Done(force bool) *Error {
	if c.std == nil {
		return nil
	}
	select {
	case <-c.std.Done():
		if !c.deadline.IsZero() && time.Now().After(c.deadline) {
			return NewError(ErrQueryTimedout, "")
		}
		return NewError(ErrQueryCancelled, "")
	default:
		if force && !c.deadline.IsZero() && time.Now().After(c.deadline) {
			return NewError(ErrQueryTimedout, "")
		}
		return nil
	}
}

// Cancel tears down the Context's cancellation, if any was installed.
func (c *Context) Cancel() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Notify sends a notification to the sink, if one is installed. Never
// blocks: a full sink drops the notification rather than stall the
// committing transaction, matching the "fire and forget" drain design
// (spec.md §5/§9).
func (c *Context) Notify(n Notification) {
	if c.sink == nil {
		return
	}
	select {
	case c.sink <- n:
	default:
	}
}

// Dive increments the recursion depth, returning an error once
// MaxRecursion is exceeded — the Go rendition of the shared
// TreeStack/reblessive recursion-bound primitive (spec.md §5), expressed
// with teacher's own dive()/vers() counter idiom (db/context.go) instead
// of a dedicated stack object.
func (c *Context) Dive() *Error {
	if atomic.AddInt32(&c.depth, 1) > int32(c.MaxRecursion) {
		atomic.AddInt32(&c.depth, -1)
		return NewError(ErrInvalidControlFlow, "Exceeded maximum computation depth")
	}
	return nil
}

// Rise undoes one Dive.
func (c *Context) Rise() {
	atomic.AddInt32(&c.depth, -1)
}

// Stage returns the current multi-pass planner iteration stage.
func (c *Context) Stage() int { return int(atomic.LoadInt32(&c.stage)) }

// SetStage advances the iteration stage, used by Planner.NextIterationStage.
func (c *Context) SetStage(n int) { atomic.StoreInt32(&c.stage, int32(n)) }

// Acquire records an additional holder of this Context snapshot (e.g. a
// spawned record-processing goroutine that only reads from it).
func (c *Context) Acquire() { atomic.AddInt32(&c.holders, 1) }

// Release gives up a holder acquired with Acquire.
func (c *Context) Release() { atomic.AddInt32(&c.holders, -1) }

// MutateLocked runs fn only if this goroutine is the Context's sole
// holder, matching spec.md §9's rule that mutating USE/SET/transaction
// fields requires exclusive ownership; detecting concurrent holders at
// that moment is a bug, not a recoverable condition.
func (c *Context) MutateLocked(fn func()) *Error {
	if atomic.LoadInt32(&c.holders) != 1 {
		return Unreachable("attempted to mutate a Context with more than one holder")
	}
	fn()
	return nil
}

// StdContext exposes the underlying stdlib context for collaborators
// that need to pass it through (e.g. Transaction methods).
func (c *Context) StdContext() context.Context {
	if c.std == nil {
		return context.Background()
	}
	return c.std
}
