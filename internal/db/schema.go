package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// Column is one column of a table created by EnsureTable.
type Column struct {
	Name string
	Type string // Postgres type, e.g. "text", "double precision"
}

// CreateTableSQL renders CREATE TABLE IF NOT EXISTS for schema.table with
// the given primary key.
func CreateTableSQL(schema, table string, columns []Column, primaryKey []string) string {
	defs := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		defs = append(defs, fmt.Sprintf("%s %s", pgx.Identifier{c.Name}.Sanitize(), c.Type))
	}
	if len(primaryKey) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", quoteAndJoin(primaryKey)))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{schema, table}.Sanitize(), strings.Join(defs, ", "))
}

// EnsureTable creates the schema and table when they do not exist.
func EnsureTable(ctx context.Context, pool Pool, schema, table string, columns []Column, primaryKey []string) error {
	if len(columns) == 0 {
		return eris.Errorf("db: table %s.%s has no columns", schema, table)
	}

	if _, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
		return eris.Wrapf(err, "db: create schema %s", schema)
	}
	if _, err := pool.Exec(ctx, CreateTableSQL(schema, table, columns, primaryKey)); err != nil {
		return eris.Wrapf(err, "db: create table %s.%s", schema, table)
	}
	return nil
}
