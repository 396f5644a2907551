// Package blob provides a minimal key-value blob store abstraction with an
// optimistic conditional write. The registry keeps whole documents under
// single keys, so this interface is all the storage the service needs.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Revision is an opaque version token for a stored value. It is returned by
// Get and must be passed unchanged to CompareAndSwap.
type Revision string

// NoRevision is the revision of an absent key. CompareAndSwap with
// NoRevision succeeds only if the key still does not exist.
const NoRevision Revision = ""

var (
	// ErrRevisionMismatch is returned by CompareAndSwap when the stored
	// value changed since the revision was read.
	ErrRevisionMismatch = errors.New("blob: revision mismatch")
)

// Store is a key-value blob store. Implementations must make
// CompareAndSwap atomic with respect to concurrent writers, or document
// how far they fall short.
type Store interface {
	// Get returns the value under key and its revision. An absent key is
	// not an error: it yields a nil value and NoRevision.
	Get(ctx context.Context, key string) ([]byte, Revision, error)

	// CompareAndSwap writes value under key only if the key's current
	// revision still equals rev. Returns ErrRevisionMismatch otherwise.
	CompareAndSwap(ctx context.Context, key string, value []byte, rev Revision) error

	// Put writes value under key unconditionally (last write wins).
	Put(ctx context.Context, key string, value []byte) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// revisionOf derives a value's revision from its content. All backends use
// the same derivation so revisions survive a backend migration.
func revisionOf(value []byte) Revision {
	sum := sha256.Sum256(value)
	return Revision(hex.EncodeToString(sum[:]))
}
