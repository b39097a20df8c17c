package dbs

import "context"

// Transaction is a single read or read-write transaction handle against
// the underlying key-value store. Grounded on teacher's kvs.TX
// interface (kvs/tx.go) and original_source's Transaction collaborator
// (spec.md §6); the real on-disk implementation is out of scope — see
// the storekv package for the one concrete implementation this module
// ships for running/testing the core end-to-end.
type Transaction interface {
	// Writable reports whether this transaction was opened for writes.
	Writable() bool

	// Lock gives this caller exclusive use of the handle, the Go
	// rendition of teacher's kvs.TX locking and original_source's
	// `Handle::lock() -> Guard` (spec.md §6, §9 "transaction handle is
	// shared only through an exclusive mutex"). Implementations that
	// already serialize access (e.g. storekv's Begin-time mutex) may
	// treat this as a no-op.
	Lock() error

	// Get fetches the value at key. A nil value with no error means the
	// key doesn't exist.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// GetRange fetches all key/value pairs with beg <= key < end, in key
	// order.
	GetRange(ctx context.Context, beg, end []byte) ([]KV, error)

	// Put sets key to val, replacing any current value.
	Put(ctx context.Context, key, val []byte) error

	// Del removes key.
	Del(ctx context.Context, key []byte) error

	// Cancel aborts the transaction. Idempotent and always safe to call;
	// callers ignore its error, matching teacher's Handle.cancel()
	// contract (spec.md §6).
	Cancel() error

	// CompleteChanges flushes buffered writes, the Go rendition of
	// original_source's `Guard::complete_changes(merge: bool)` (spec.md
	// §4.3/§6). The executor calls this before Commit on every
	// successful writable path, ad-hoc or block-COMMIT.
	CompleteChanges(merge bool) error

	// Commit finalizes a write transaction. Calling Commit on a read
	// transaction is a no-op.
	Commit() error
}

// KV is one key/value pair as returned by Transaction.GetRange.
type KV struct {
	Key []byte
	Val []byte
}

// Datastore opens Transactions against the underlying store. Grounded
// on teacher's kvs.DS (kvs/ds.go) store-registry pattern.
type Datastore interface {
	Begin(ctx context.Context, writable bool) (Transaction, error)
	Close() error
}
