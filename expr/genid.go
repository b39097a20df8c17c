package expr

import "github.com/rs/xid"

// NewRecordID generates a compact, sortable id for CREATE statements that
// don't specify an explicit id, the role teacher's go.mod reserves for
// rs/xid without ever importing it directly.
func NewRecordID() Value {
	return Str(xid.New().String())
}
