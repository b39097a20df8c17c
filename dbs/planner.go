package dbs

// Planner is the external collaborator that resolves a statement's
// target into Iterables and answers the push-down safety questions the
// Iterator needs. Spec.md §6 treats it (and query planning generally)
// as a consumed collaborator, not something this module builds out in
// full; Planner is the interface boundary plus one minimal concrete
// implementation (defaultPlanner) grounded on teacher's db/table.go
// permission/index lookups, enough to drive push-down end-to-end.
type Planner interface {
	// CheckTablePermission reports whether ctx's auth level may access
	// tb at all.
	CheckTablePermission(ctx *Context, tb string) (bool, error)

	// AddIterables resolves plan's target into one or more Iterables,
	// most often one, pushing each via push.
	AddIterables(ctx *Context, plan *LogicalPlan, push func(Iterable)) error

	// IsIteratorCondition reports whether it is a single index iterator
	// whose executor confirms it already applies cond itself, so the
	// Iterator need not re-check it per record — the fact
	// check_set_start_limit needs to allow push-down under WHERE.
	IsIteratorCondition(ctx *Context, it Iterable, cond Condition) bool

	// IsOrder reports whether it's natural scan order already satisfies
	// order, so the Iterator need not sort.
	IsOrder(ctx *Context, it Iterable, order []OrderField) bool

	// IsAnySpecificPermission reports whether any per-record permission
	// check applies for tb, which forces START to be deferred until
	// after permission filtering even when push-down is otherwise safe.
	IsAnySpecificPermission(ctx *Context, tb string) bool

	// NextIterationStage advances ctx's iteration stage for statements
	// that must be planned/executed in more than one pass (e.g. to
	// produce EXPLAIN output before the real run). Returns false once no
	// further pass is needed.
	NextIterationStage(ctx *Context) bool
}

// IndexInfo names what an Iterable's backing index guarantees, used by
// defaultPlanner to answer IsIteratorCondition/IsOrder without
// re-deriving it per call.
type IndexInfo struct {
	Table        string
	CoversWhere  bool
	CoversOrder  bool
	HasPermCheck bool
}

// defaultPlanner is a minimal, table-driven Planner good enough to
// exercise every push-down path in this module's tests. A real planner
// performs cost-based index selection; that selection policy is out of
// scope (spec.md §1/§6 — only the interface is specified).
type defaultPlanner struct {
	indexes map[string]IndexInfo
	denied  map[string]bool
}

// NewDefaultPlanner builds a Planner whose index/permission answers are
// supplied directly by the caller (tests configure exactly the index
// shape the scenario needs), matching the Non-goal that no SQL-to-plan
// compiler is implemented here.
func NewDefaultPlanner() *defaultPlanner {
	return &defaultPlanner{indexes: make(map[string]IndexInfo), denied: make(map[string]bool)}
}

func (p *defaultPlanner) WithIndex(tb string, info IndexInfo) *defaultPlanner {
	info.Table = tb
	p.indexes[tb] = info
	return p
}

func (p *defaultPlanner) DenyTable(tb string) *defaultPlanner {
	p.denied[tb] = true
	return p
}

func (p *defaultPlanner) CheckTablePermission(ctx *Context, tb string) (bool, error) {
	return !p.denied[tb], nil
}

func (p *defaultPlanner) AddIterables(ctx *Context, plan *LogicalPlan, push func(Iterable)) error {
	for _, it := range plan.Iterables {
		if info, ok := p.indexes[tableOf(it)]; ok {
			it.Index = info.Table
		}
		push(it)
	}
	return nil
}

func tableOf(it Iterable) string {
	switch it.Kind {
	case IterableTable:
		return it.Table
	case IterableThing:
		return it.Thing.TB
	case IterableRange:
		return it.Range.TB
	default:
		return ""
	}
}

func (p *defaultPlanner) IsIteratorCondition(ctx *Context, it Iterable, cond Condition) bool {
	info, ok := p.indexes[tableOf(it)]
	return ok && it.IsIndexScan() && info.CoversWhere
}

func (p *defaultPlanner) IsOrder(ctx *Context, it Iterable, order []OrderField) bool {
	info, ok := p.indexes[tableOf(it)]
	return ok && it.IsIndexScan() && info.CoversOrder
}

func (p *defaultPlanner) IsAnySpecificPermission(ctx *Context, tb string) bool {
	info, ok := p.indexes[tb]
	return ok && info.HasPermCheck
}

func (p *defaultPlanner) NextIterationStage(ctx *Context) bool {
	return false
}
