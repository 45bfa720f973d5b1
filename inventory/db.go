package inventory

import (
	"context"
	"database/sql"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens a sqlite-backed bun.DB, the lightweight backend for local
// development and tests.
//
// In-memory databases exist per connection, so the pool is pinned to a single
// connection when the DSN asks for one.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		sqldb.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// OpenPostgres opens a postgres-backed bun.DB, the production backend.
func OpenPostgres(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// CreateBooksTable creates the books table if it does not exist yet.
func CreateBooksTable(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Book)(nil)).IfNotExists().Exec(ctx)
	return err
}
