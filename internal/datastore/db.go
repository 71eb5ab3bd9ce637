package datastore

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// OpenPostgres returns a bun handle for dsn. password overrides the one in
// dsn when set.
func OpenPostgres(dsn string, password string) *bun.DB {
	opts := []pgdriver.Option{pgdriver.WithDSN(dsn)}
	if password != "" {
		opts = append(opts, pgdriver.WithPassword(password))
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	return bun.NewDB(sqldb, pgdialect.New())
}
