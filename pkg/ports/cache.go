package ports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/aretw0/crema/pkg/domain"
)

// ResultCache stores finished translations.
type ResultCache interface {
	// Get returns the cached translation for key.
	// Returns domain.ErrCacheMiss if the key is absent or expired.
	Get(ctx context.Context, key string) (*domain.Translation, error)

	// Put stores a translation under key.
	Put(ctx context.Context, key string, result *domain.Translation) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently held.
	List(ctx context.Context) ([]string, error)
}

// CacheKey derives the cache key for translating source under mode and maxPressure.
func CacheKey(mode domain.TransitionMode, maxPressure float64, source []byte) string {
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.FormatFloat(maxPressure, 'f', -1, 64)))
	h.Write([]byte{'|'})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}
