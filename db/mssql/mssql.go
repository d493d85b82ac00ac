package mssql

import (
	"errors"
	"fmt"

	driver "github.com/denisenkom/go-mssqldb"

	"syncData/db"
	"syncData/util"
)

// permission denied on object, on column
var deniedNumbers = []int32{229, 230}

func Dialect() db.Dialect {
	return db.Dialect{
		Name:        "mssql",
		Quote:       "[",
		Placeholder: func(i int) string { return fmt.Sprintf("@p%d", i) },
		ListTables: func(schema string) (string, []any) {
			return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`, []any{schema}
		},
		PrimaryKey: func(schema, table string) (string, []any) {
			return `SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE
WHERE CONSTRAINT_NAME = (
SELECT CONSTRAINT_NAME FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 AND CONSTRAINT_TYPE = 'PRIMARY KEY'
) AND TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 ORDER BY ORDINAL_POSITION`, []any{schema, table}
		},
		PermissionDenied: PermissionDenied,
	}
}

func PermissionDenied(err error) bool {
	var e driver.Error
	if errors.As(err, &e) {
		return util.InSlice(e.Number, deniedNumbers)
	}
	return false
}
