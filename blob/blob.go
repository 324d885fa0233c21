// Package blob provides opaque string key/value stores used to persist whole
// serialized collections under a single key.
package blob

import "context"

// Store reads and writes string values by key. Get reports found=false for a
// key that was never set; that is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
