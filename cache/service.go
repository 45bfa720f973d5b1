package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidResultType is returned by GetOrFetch when the cached value cannot
// be asserted to the requested type. It signals a key collision between
// callers that store different types under the same key.
var ErrInvalidResultType = errors.New("cache: result type mismatch")

// KeySerializer builds a cache key from a namespace plus arbitrary args.
// It is responsible for producing stable keys across calls, and for exposing
// the prefix that addresses every key within a namespace.
type KeySerializer interface {
	SerializeKey(namespace string, args ...any) string
	NamespacePrefix(namespace string) string
}

// FetchFn is the function signature CacheService expects when fetching from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the caching operations the inventory service needs:
// read-through (GetOrFetch), write-through (Set), and invalidation of a single
// key (Delete) or of an entire namespace (DeleteByPrefix).
// It is exported so that callers can reuse the default serializer or provide
// alternate cache backends.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// GetOrFetch is a type-safe wrapper function that provides generic support for CacheService.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T", ErrInvalidResultType, result)
	}
	return typed, nil
}
