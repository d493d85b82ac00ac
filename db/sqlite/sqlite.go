package sqlite

import (
	"errors"

	driver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"syncData/db"
	"syncData/util"
)

// Dialect reads from a SQLite file. SQLite has no schemas, the schema
// argument is ignored.
func Dialect() db.Dialect {
	return db.Dialect{
		Name:        "sqlite",
		Quote:       `"`,
		Placeholder: util.QuestionMark,
		ListTables: func(string) (string, []any) {
			return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`, nil
		},
		PrimaryKey: func(_, table string) (string, []any) {
			return `SELECT name FROM pragma_table_info(?) WHERE pk > 0 ORDER BY pk`, []any{table}
		},
		PermissionDenied: PermissionDenied,
	}
}

func SinkDialect() db.SinkDialect {
	return db.SinkDialect{
		Name:     "sqlite",
		Quote:    `"`,
		TextType: "TEXT",
		TableColumns: func(table string) (string, []any) {
			return `SELECT name FROM pragma_table_info(?) ORDER BY cid`, []any{table}
		},
	}
}

func PermissionDenied(err error) bool {
	var e *driver.Error
	if errors.As(err, &e) {
		return e.Code()&0xff == sqlite3.SQLITE_AUTH
	}
	return false
}
