package dbs

import (
	"time"

	"github.com/surrealdb/surrealdb/expr"
)

// StatementKind tags what a Statement does. A closed tagged sum,
// grounded on teacher's db/executor.go type-switch over
// *sql.{Begin,Cancel,Commit,Return,...}Statement, generalized here since
// this module doesn't implement a parser/AST (SPEC_FULL.md Non-goals) —
// callers build Statement values directly.
type StatementKind int

const (
	StmtBegin StatementKind = iota
	StmtCancel
	StmtCommit
	StmtOption
	StmtSet
	StmtUse
	StmtReturn
	StmtData
)

// Statement is one entry in the stream the Executor drives to
// completion. Only the fields relevant to Kind are meaningful.
type Statement struct {
	Kind StatementKind
	Text string // statement text, used in slow-log warnings

	// TimeoutSeconds is the per-statement timeout, expressed as a count
	// of seconds the way the source syntax ("TIMEOUT 2s") carries it;
	// zero means none. Kept as seconds rather than time.Duration because
	// a duration in nanoseconds can't represent every value a caller
	// might request (scenario: TIMEOUT 9460800000000000000s overflows
	// int64 nanoseconds) — converted with overflow checking in
	// executor.go, surfacing ErrInvalidTimeout when it doesn't fit.
	TimeoutSeconds uint64

	// StmtOption
	OptionName string
	OptionVal  bool

	// StmtSet
	SetName string
	SetVal  expr.Value

	// StmtUse
	UseNS string
	UseDB string

	// StmtReturn
	ReturnVal expr.Value

	// StmtData — a data-bearing statement (CREATE/UPDATE/DELETE/SELECT/...)
	Plan       *LogicalPlan
	Mutate     Mutation
	CreateOnly bool // CREATE: error if the record already exists
	UpdateOnly bool // UPDATE (strict): Ignore if the record is absent
	DeleteOnly bool // DELETE
	Single     bool // expect exactly one result; more than one is SingleOnlyOutput
}

// QueryType tags what kind of query produced a Response: a live query
// subscription, a KILL of one, or anything else. Live/Kill statements
// aren't implemented by this module (no parser/AST — SPEC_FULL.md
// Non-goals), so every Response this package produces carries "Other";
// the field exists so the Response shape matches spec.md §3 in full.
const (
	QueryTypeLive  = "Live"
	QueryTypeKill  = "Kill"
	QueryTypeOther = "Other"
)

// Response is what the Executor returns for one statement.
type Response struct {
	Time      time.Duration
	Status    string
	Result    expr.Value
	Err       *Error
	QueryType string
}

func okResponse(v expr.Value, elapsed time.Duration) *Response {
	return &Response{Time: elapsed, Status: "OK", Result: v, QueryType: QueryTypeOther}
}

func errResponse(err *Error) *Response {
	return &Response{Status: "ERR", Err: err, QueryType: QueryTypeOther}
}
