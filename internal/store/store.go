package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("key not found")

// Entry is one (key, value) pair as held by the store.
type Entry struct {
	Key   string
	Value string
}

// Store is the single persistence primitive the engine is built on: a
// schema-less string-keyed mapping with prefix scan as the only index.
// Entity typing is encoded in key prefixes (device:, check:, plan:,
// settings:), not in the store.
//
// Set is an upsert (create-or-replace, never a partial merge). Delete of
// an absent key is not an error. A single Get/Set on one key is atomic,
// but MSet carries no all-or-nothing guarantee across keys; callers must
// not depend on multi-key atomicity. Any storage error propagates to the
// caller and is never swallowed here.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// MGet returns the values for keys in input order; absent keys are
	// omitted from the result.
	MGet(ctx context.Context, keys ...string) ([]string, error)
	// MSet upserts all entries. No transactional guarantee across keys.
	MSet(ctx context.Context, entries []Entry) error
	// ScanPrefix returns all entries whose key starts with prefix,
	// unordered.
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
