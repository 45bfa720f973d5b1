package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-book-inventory/cache"
)

// Cache namespaces. Per-book records live under nsBooks keyed by id, the full
// listing under a single key in nsAll, and search results under nsSearch keyed
// by the raw (title, author) argument pair.
const (
	nsBooks  = "books"
	nsAll    = "booksAll"
	nsSearch = "booksSearch"
)

// Service is the single entry point for book CRUD and search. It enforces the
// copy-count business rule and keeps the cache coherent with the record
// store: reads are read-through, UpdateBook writes the fresh record through,
// and every mutation evicts the listing namespaces wholesale.
//
// Correctness wins over hit-rate here. Any write can change the membership of
// any cached listing or search result, so those namespaces are dropped in
// full rather than tracked key by key.
type Service struct {
	repo  Repository
	cache cache.CacheService
	keys  cache.KeySerializer
	log   zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger to the service. Without it the service stays
// silent.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// NewService wires the service with its record store and cache. Dependencies
// are passed explicitly; there is no container magic at this level.
func NewService(repo Repository, cacheService cache.CacheService, keys cache.KeySerializer, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		cache: cacheService,
		keys:  keys,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddBook persists a new book built from the request, with available copies
// starting equal to total copies. Every cached listing and search result may
// now be stale, so both namespaces are evicted in full.
func (s *Service) AddBook(ctx context.Context, req BookRequest) (*Book, error) {
	book := &Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Publisher:       req.Publisher,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
	}

	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, err
	}

	s.evictListings(ctx)
	s.log.Debug().Int64("id", saved.ID).Str("title", saved.Title).Msg("book added")
	return saved, nil
}

// GetAllBooks returns every book, read-through cached under a single key.
// Order is whatever the record store yields.
func (s *Service) GetAllBooks(ctx context.Context) ([]*Book, error) {
	key := s.keys.SerializeKey(nsAll, "all")
	return cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) ([]*Book, error) {
		return s.repo.FindAll(ctx)
	})
}

// GetBookByID returns the book with the given id, read-through cached per id.
// It fails with ErrBookNotFound when no such record exists; any other error
// is an infrastructure failure passed along untouched.
func (s *Service) GetBookByID(ctx context.Context, id int64) (*Book, error) {
	key := s.keys.SerializeKey(nsBooks, id)
	return cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) (*Book, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// UpdateBook replaces every caller-suppliable field of the book and resets
// AvailableCopies to the new TotalCopies. Updates do not preserve outstanding
// loans; that is a known simplification, not an oversight.
//
// The persisted record is written through to the per-id cache entry, and the
// listing namespaces are evicted in full.
func (s *Service) UpdateBook(ctx context.Context, id int64, req BookRequest) (*Book, error) {
	existing, err := s.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Work on a copy; existing may be the cached record itself.
	updated := *existing
	updated.Title = req.Title
	updated.Author = req.Author
	updated.ISBN = req.ISBN
	updated.Publisher = req.Publisher
	updated.TotalCopies = req.TotalCopies
	updated.AvailableCopies = req.TotalCopies

	saved, err := s.repo.Save(ctx, &updated)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, s.keys.SerializeKey(nsBooks, id), saved); err != nil {
		s.log.Warn().Err(err).Int64("id", id).Msg("write-through failed")
	}
	s.evictListings(ctx)
	s.log.Debug().Int64("id", id).Msg("book updated")
	return saved, nil
}

// DeleteBook removes the book with the given id, failing with
// ErrBookNotFound when it does not exist. All three namespaces are evicted in
// full; clearing the whole per-book namespace instead of the single key
// guarantees no stale entry for any id can linger.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: id %d", ErrBookNotFound, id)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.evictNamespace(ctx, nsBooks)
	s.evictListings(ctx)
	s.log.Debug().Int64("id", id).Msg("book deleted")
	return nil
}

// SearchBooks returns books matching the given title and/or author
// substrings, case-insensitively. An argument counts as present only when it
// is non-nil and not just whitespace. Both present means both must match;
// neither present means the full listing.
//
// Results are cached under the raw argument pair, so a nil argument and an
// empty one are distinct cache entries even though they describe the same
// query. The full-listing branch likewise does not share the GetAllBooks
// cache key.
func (s *Service) SearchBooks(ctx context.Context, title, author *string) ([]*Book, error) {
	key := s.keys.SerializeKey(nsSearch, title, author)
	return cache.GetOrFetch(ctx, s.cache, key, func(ctx context.Context) ([]*Book, error) {
		hasTitle := present(title)
		hasAuthor := present(author)

		switch {
		case hasTitle && hasAuthor:
			return s.repo.FindByTitleAndAuthor(ctx, *title, *author)
		case hasTitle:
			return s.repo.FindByTitle(ctx, *title)
		case hasAuthor:
			return s.repo.FindByAuthor(ctx, *author)
		default:
			return s.repo.FindAll(ctx)
		}
	})
}

func present(arg *string) bool {
	return arg != nil && strings.TrimSpace(*arg) != ""
}

// evictListings drops the full-listing and search namespaces. Called after
// every successful mutation; never called when the store write failed, so a
// failed write leaves prior cached state intact.
func (s *Service) evictListings(ctx context.Context) {
	s.evictNamespace(ctx, nsAll)
	s.evictNamespace(ctx, nsSearch)
}

func (s *Service) evictNamespace(ctx context.Context, namespace string) {
	if err := s.cache.DeleteByPrefix(ctx, s.keys.NamespacePrefix(namespace)); err != nil {
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("cache eviction failed")
	}
}
