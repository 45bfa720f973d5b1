package inventory

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// Book is the sole entity managed by the inventory service. The record store
// assigns ID on first save; it stays 0 until then.
//
// AvailableCopies is derived by the service, never supplied by callers: it
// equals TotalCopies at creation and is reset to TotalCopies on every update.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID              int64  `bun:"id,pk,autoincrement" json:"id"`
	Title           string `bun:"title,notnull" json:"title"`
	Author          string `bun:"author,notnull" json:"author"`
	ISBN            string `bun:"isbn" json:"isbn"`
	Publisher       string `bun:"publisher" json:"publisher"`
	TotalCopies     int    `bun:"total_copies,notnull" json:"total_copies"`
	AvailableCopies int    `bun:"available_copies,notnull" json:"available_copies"`
}

// BookRequest carries the caller-supplied fields for AddBook and UpdateBook.
// AvailableCopies is not among them; the service derives it from TotalCopies.
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Publisher   string `json:"publisher"`
	TotalCopies int    `json:"total_copies"`
}

// Validate checks the request fields. It is meant for boundary layers
// translating inbound requests; the inventory service itself does not call
// it and trusts its caller.
func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Author, validation.Required),
		validation.Field(&r.TotalCopies, validation.Min(0)),
	)
}
