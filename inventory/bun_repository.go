package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// Interface assertion to ensure BunRepository implements Repository.
var _ Repository = (*BunRepository)(nil)

// BunRepository is the relational record store, backed by a bun.DB.
// See OpenSQLite and OpenPostgres for the supported backends.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository creates a record store on top of the given database.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

// Save inserts the book when it has no id yet, otherwise replaces every
// column of the existing row.
func (r *BunRepository) Save(ctx context.Context, book *Book) (*Book, error) {
	if book.ID == 0 {
		res, err := r.db.NewInsert().Model(book).Exec(ctx)
		if err != nil {
			return nil, err
		}
		if book.ID == 0 {
			if id, err := res.LastInsertId(); err == nil {
				book.ID = id
			}
		}
		return book, nil
	}

	if _, err := r.db.NewUpdate().Model(book).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return book, nil
}

// FindByID returns the book with the given id, or ErrBookNotFound.
func (r *BunRepository) FindByID(ctx context.Context, id int64) (*Book, error) {
	book := new(Book)
	err := r.db.NewSelect().Model(book).Where("b.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrBookNotFound, id)
		}
		return nil, err
	}
	return book, nil
}

// FindAll returns every book, ordered by id.
func (r *BunRepository) FindAll(ctx context.Context) ([]*Book, error) {
	var books []*Book
	if err := r.db.NewSelect().Model(&books).Order("b.id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return books, nil
}

// ExistsByID reports whether a book with the given id exists.
func (r *BunRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.db.NewSelect().Model((*Book)(nil)).Where("b.id = ?", id).Exists(ctx)
}

// DeleteByID removes the book with the given id.
func (r *BunRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().Model((*Book)(nil)).Where("b.id = ?", id).Exec(ctx)
	return err
}

// FindByTitle returns books whose title contains the substring, ignoring case.
func (r *BunRepository) FindByTitle(ctx context.Context, title string) ([]*Book, error) {
	var books []*Book
	err := r.db.NewSelect().Model(&books).
		Where("LOWER(b.title) LIKE ?", containsPattern(title)).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// FindByAuthor returns books whose author contains the substring, ignoring case.
func (r *BunRepository) FindByAuthor(ctx context.Context, author string) ([]*Book, error) {
	var books []*Book
	err := r.db.NewSelect().Model(&books).
		Where("LOWER(b.author) LIKE ?", containsPattern(author)).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// FindByTitleAndAuthor returns books matching both substrings, ignoring case.
func (r *BunRepository) FindByTitleAndAuthor(ctx context.Context, title, author string) ([]*Book, error) {
	var books []*Book
	err := r.db.NewSelect().Model(&books).
		Where("LOWER(b.title) LIKE ?", containsPattern(title)).
		Where("LOWER(b.author) LIKE ?", containsPattern(author)).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return books, nil
}

// containsPattern builds the lowercase LIKE pattern for substring matching.
// LOWER() on both sides keeps the comparison portable across sqlite and
// postgres collations.
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
