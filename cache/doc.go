// Package cache provides the caching interfaces and key scheme used by the
// book inventory service.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - CacheService: read-through (GetOrFetch), write-through (Set), and
//     invalidation (Delete, DeleteByPrefix) operations
//   - KeySerializer: builds stable, namespace-prefixed cache keys
//
// The cache is partitioned into namespaces; every key starts with its
// namespace followed by the "::" separator. Evicting a namespace means
// deleting every key carrying its prefix, which is how the inventory service
// drops whole families of cached listings after a write.
//
// # Basic Usage
//
// The simplest way to use the cache package is with the default key serializer:
//
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("books", 42) // "books::42"
//
// For read-through access you would typically use this with a CacheService
// implementation:
//
//	book, err := cache.GetOrFetch(ctx, cacheService, key, func(ctx context.Context) (*Book, error) {
//		return store.FindByID(ctx, 42)
//	})
//
// # Key Scheme
//
// Keys are built as namespace::arg::arg... with these rules:
//
//   - Basic types: direct string representation
//   - Pointers: dereferenced; nil serializes as "nil"
//   - Slices: recursive serialization of elements
//   - Anything else: JSON fallback
//
// Nil pointers and empty strings produce different keys on purpose. A search
// where the caller omitted an argument and one where the caller passed ""
// describe the same query, yet they occupy separate cache entries; the
// service layer tolerates this rather than papering over it.
//
// # Namespace Prefixes
//
// NamespacePrefix returns namespace + "::". Callers must evict with that
// prefix rather than the bare namespace name, because namespace names may
// share a textual prefix ("books", "booksAll", "booksSearch") while their
// key spaces must stay independent.
//
// # Error Handling
//
// The key serializer prioritizes stability over fidelity. When JSON
// marshaling fails it falls back to type information rather than panicking,
// so cache operations continue even with problematic argument types.
//
// # See Also
//
// For the service that drives this cache, see the inventory package.
// For the sturdyc-backed implementation, see internal/cacheinfra.
package cache
