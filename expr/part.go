package expr

// PartKind tags the variant a Part holds.
type PartKind int

const (
	PartField PartKind = iota
	PartIndex
	PartAll
	PartFirst
	PartLast
)

// Part is one segment of a path used by Pick/Put/Inc. Like Value, it's a
// closed tagged sum dispatched by switch, not by interface.
type Part struct {
	Kind  PartKind
	Field string
	Index int
}

func Field(name string) Part { return Part{Kind: PartField, Field: name} }

func Index(i int) Part { return Part{Kind: PartIndex, Index: i} }

func All() Part { return Part{Kind: PartAll} }

func First() Part { return Part{Kind: PartFirst} }

func Last() Part { return Part{Kind: PartLast} }

// Path is a sequence of Parts identifying a location inside a Value.
type Path []Part
