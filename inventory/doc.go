// Package inventory implements the book inventory service: CRUD and search
// over a relational record store, with namespaced read-through caching.
//
// # Overview
//
// Three pieces cooperate here:
//
//   - Book / BookRequest: the entity and its inbound DTO
//   - Repository: the record store contract, with a bun-backed implementation
//   - Service: business rules plus the cache coherence protocol
//
// The record store is the single source of truth. The cache holds transient
// copies that are invalidated on write and repopulated on the next read.
//
// # Basic Usage
//
//	db, err := inventory.OpenSQLite("file:books.db")
//	if err != nil {
//		return err
//	}
//	if err := inventory.CreateBooksTable(ctx, db); err != nil {
//		return err
//	}
//
//	cacheService, err := cache.NewCacheService(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	svc := inventory.NewService(
//		inventory.NewBunRepository(db),
//		cacheService,
//		cache.NewDefaultKeySerializer(),
//	)
//
//	book, err := svc.AddBook(ctx, inventory.BookRequest{
//		Title: "Clean Code", Author: "Robert C. Martin", TotalCopies: 3,
//	})
//
// # Business Rules
//
// AvailableCopies always equals TotalCopies right after AddBook, and is reset
// to TotalCopies on every UpdateBook regardless of its previous value. The
// service does not track checkouts; an update discards any in-flight loan
// state on purpose.
//
// # Cache Coherence
//
// Three namespaces partition the cache:
//
//   - "books": one entry per id, populated read-through by GetBookByID and
//     written through by UpdateBook
//   - "booksAll": a single entry holding the full listing
//   - "booksSearch": one entry per raw (title, author) argument pair
//
// Every successful mutation evicts "booksAll" and "booksSearch" in full,
// because any write can change any listing. DeleteBook additionally evicts
// the whole "books" namespace rather than just the deleted id. Reads only
// ever populate; they never invalidate.
//
// Invalidation is not linearized against concurrent read-through population:
// a listing fetched just before a concurrent write may land in the cache
// after that write's eviction. The contract is eventual convergence — the
// next read after an eviction completes sees fresh data — and nothing
// stronger.
//
// # Error Handling
//
// ErrBookNotFound is the single domain error; test for it with errors.Is.
// Store and cache failures propagate unwrapped. A failed store write performs
// no invalidation, leaving the previously cached state intact (stale only
// relative to an update that never happened).
//
// # See Also
//
// For cache configuration and the key scheme, see the cache package. For
// wiring, see pkg/di.
package inventory
