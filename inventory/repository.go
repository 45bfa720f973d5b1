package inventory

import "context"

// Repository is the record store contract the inventory service depends on.
// The store is the single source of truth for book data; the cache only ever
// holds copies that are invalidated on write.
//
// All substring searches are case-insensitive.
type Repository interface {
	// Save persists the book: insert when ID is 0 (assigning the id),
	// full-field update otherwise. Returns the persisted record.
	Save(ctx context.Context, book *Book) (*Book, error)

	// FindByID returns the book with the given id, or ErrBookNotFound.
	FindByID(ctx context.Context, id int64) (*Book, error)

	// FindAll returns every book in store order.
	FindAll(ctx context.Context) ([]*Book, error)

	// ExistsByID reports whether a book with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// DeleteByID removes the book with the given id. Deleting an absent id
	// is not an error at this layer; the service checks existence first.
	DeleteByID(ctx context.Context, id int64) error

	// FindByTitle returns books whose title contains the given substring.
	FindByTitle(ctx context.Context, title string) ([]*Book, error)

	// FindByAuthor returns books whose author contains the given substring.
	FindByAuthor(ctx context.Context, author string) ([]*Book, error)

	// FindByTitleAndAuthor returns books matching both substrings.
	FindByTitleAndAuthor(ctx context.Context, title, author string) ([]*Book, error)
}
