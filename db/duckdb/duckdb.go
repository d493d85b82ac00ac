package duckdb

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"

	"syncData/db"
	"syncData/util"
)

func SinkDialect() db.SinkDialect {
	return db.SinkDialect{
		Name:     "duckdb",
		Quote:    `"`,
		TextType: "VARCHAR",
		TableColumns: func(table string) (string, []any) {
			return `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ? ORDER BY ordinal_position`, []any{table}
		},
	}
}

// Open opens a DuckDB database file; writes go through one connection.
func Open(path string) (*sql.DB, error) {
	if err := util.Mkdir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("duckdb.Open(%s) -> %w", path, err)
	}
	conn.SetMaxOpenConns(1)
	return conn, nil
}
