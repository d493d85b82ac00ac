package util

import (
	"context"
	"database/sql"
)

// QueryReturnList runs a query and returns every row as strings; NULL is "".
func QueryReturnList(ctx context.Context, db *sql.DB, sqlText string, args ...any) (rows [][]string, err error) {
	var cur *sql.Rows
	cur, err = db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return
	}
	defer cur.Close()

	cols, err := cur.Columns()
	if err != nil {
		return
	}

	values := make([]sql.NullString, len(cols))
	valuesP := make([]interface{}, len(cols))
	for i := range values {
		valuesP[i] = &values[i]
	}

	for cur.Next() {
		err = cur.Scan(valuesP...)
		if err != nil {
			return
		}
		row := make([]string, len(cols)) //allocate per row, values is reused
		for i, v := range values {
			row[i] = v.String
		}
		rows = append(rows, row)
	}
	err = cur.Err()
	return
}
