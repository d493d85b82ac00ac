package pgsql

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"syncData/db"
)

// insufficient_privilege
const deniedCode = "42501"

func Dialect() db.Dialect {
	return db.Dialect{
		Name:        "pgsql",
		Quote:       `"`,
		Placeholder: func(i int) string { return fmt.Sprintf("$%d", i) },
		ListTables: func(schema string) (string, []any) {
			return `SELECT tablename FROM pg_tables WHERE schemaname = $1 ORDER BY tablename`, []any{schema}
		},
		PrimaryKey: func(schema, table string) (string, []any) {
			return `select pg_attribute.attname as column_name from pg_index, pg_class, pg_attribute, pg_namespace
where pg_namespace.oid = pg_class.relnamespace and pg_namespace.nspname = $1 and pg_class.relname = $2 and indrelid = pg_class.oid and pg_attribute.attrelid = pg_class.oid and pg_attribute.attnum = any(pg_index.indkey) and indisprimary
order by array_position(pg_index.indkey, pg_attribute.attnum)`, []any{schema, table}
		},
		PermissionDenied: PermissionDenied,
	}
}

func PermissionDenied(err error) bool {
	var e *pq.Error
	if errors.As(err, &e) {
		return e.Code == deniedCode
	}
	return false
}
