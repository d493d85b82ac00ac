package mysql

import (
	"errors"

	driver "github.com/go-sql-driver/mysql"

	"syncData/db"
	"syncData/util"
)

// privilege error numbers: table/column access, database access, login
var deniedCodes = []uint16{1142, 1143, 1044, 1045}

func Dialect() db.Dialect {
	return db.Dialect{
		Name:        "mysql",
		Quote:       "`",
		Placeholder: util.QuestionMark,
		ListTables: func(schema string) (string, []any) {
			return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`, []any{schema}
		},
		PrimaryKey: func(schema, table string) (string, []any) {
			return `SELECT COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND CONSTRAINT_NAME = 'PRIMARY' ORDER BY ORDINAL_POSITION`, []any{schema, table}
		},
		PermissionDenied: PermissionDenied,
	}
}

func PermissionDenied(err error) bool {
	var e *driver.MySQLError
	if errors.As(err, &e) {
		return util.InSlice(e.Number, deniedCodes)
	}
	return false
}
