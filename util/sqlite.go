package util

import (
	"database/sql"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// NewSqliteDB opens a SQLite file with the pure-Go driver. A single
// connection is kept so every write goes through one serialized handle.
func NewSqliteDB(path string) (db *sql.DB, err error) {
	if !strings.HasPrefix(path, "file:") {
		if err = Mkdir(filepath.Dir(path)); err != nil {
			return
		}
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err = sql.Open("sqlite", path+sep+"_pragma=busy_timeout(5000)")
	if err != nil {
		return
	}
	db.SetMaxOpenConns(1)
	return
}
