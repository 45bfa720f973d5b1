package inventory

import "errors"

// ErrBookNotFound is the only domain error the inventory service defines.
// It is returned by GetBookByID, UpdateBook, and DeleteBook when no record
// matches the given id, and callers must test for it with errors.Is so they
// can tell a missing book apart from an unavailable store.
//
// Infrastructure failures (store or cache errors) are never translated; they
// propagate to the caller as-is.
var ErrBookNotFound = errors.New("book not found")
