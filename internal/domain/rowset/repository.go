package rowset

import "context"

// Reader runs read-only SQL against the store.
type Reader interface {
	Select(ctx context.Context, query string) (Result, error)
}
