package implementation

import (
	"context"
	"crypto/md5"
	"encoding/hex"

	"airport-assistant-be/internal/repository/contract"
	"airport-assistant-be/pkg/kvstore"
)

type responseCacheRepository struct {
	store *kvstore.FileStore[string]
}

func NewResponseCacheRepository(store *kvstore.FileStore[string]) contract.ResponseCacheRepository {
	return &responseCacheRepository{store: store}
}

// CacheKey is the hex MD5 digest of the exact query text. No case folding or
// trimming is applied, so any one-character difference yields a new key.
func CacheKey(query string) string {
	sum := md5.Sum([]byte(query))
	return hex.EncodeToString(sum[:])
}

func (r *responseCacheRepository) Get(ctx context.Context, query string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	answer, ok := r.store.Get(CacheKey(query))
	return answer, ok, nil
}

func (r *responseCacheRepository) Put(ctx context.Context, query, answer string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Set(CacheKey(query), answer)
}

func (r *responseCacheRepository) Count(ctx context.Context) (int, error) {
	return r.store.Len(), nil
}
