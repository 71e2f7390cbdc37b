package contract

import "context"

type ResponseCacheRepository interface {
	// Get returns the cached answer for the exact query text.
	Get(ctx context.Context, query string) (string, bool, error)
	// Put stores the answer and persists it before returning.
	Put(ctx context.Context, query, answer string) error
	Count(ctx context.Context) (int, error)
}
