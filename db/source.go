package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"syncData/model"
	"syncData/util"
)

// Source reads tables from a relational database through database/sql.
type Source struct {
	conn    *sql.DB
	dialect Dialect
	schema  string
}

func NewSource(conn *sql.DB, dialect Dialect, schema string) *Source {
	return &Source{conn: conn, dialect: dialect, schema: schema}
}

func (self *Source) Dialect() Dialect {
	return self.dialect
}

func (self *Source) ListTables(ctx context.Context) ([]string, error) {
	query, args := self.dialect.ListTables(self.schema)
	rows, err := util.QueryReturnList(ctx, self.conn, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListTables -> %w", self.dialect.Classify(err))
	}
	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, row[0])
	}
	return tables, nil
}

// DescribeTable discovers the ordered column list with an empty projection
// and the first primary key column from the catalog.
func (self *Source) DescribeTable(ctx context.Context, name string) (*model.TableDescriptor, error) {
	columns, err := self.columns(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("DescribeTable(%s) -> %w", name, self.dialect.Classify(err))
	}

	var key string
	if self.dialect.PrimaryKey != nil {
		query, args := self.dialect.PrimaryKey(self.schema, name)
		rows, err := util.QueryReturnList(ctx, self.conn, query, args...)
		if err != nil {
			return nil, fmt.Errorf("DescribeTable(%s) primary key -> %w", name, self.dialect.Classify(err))
		}
		//composite keys are not supported, the first column is used
		if len(rows) > 0 {
			key = rows[0][0]
		}
	}
	return model.NewTableDescriptor(name, columns, key), nil
}

func (self *Source) columns(ctx context.Context, name string) ([]string, error) {
	rows, err := self.conn.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s WHERE 1=0", self.dialect.Qualify(self.schema, name)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns", name)
	}
	return columns, nil
}

func (self *Source) where(table *model.TableDescriptor, filter *model.KeyFilter) (string, []any) {
	if filter == nil {
		return "", nil
	}
	column := filter.Column
	if column == "" || strings.EqualFold(column, table.PrimaryKey) {
		column = table.SourceKey
	}
	return fmt.Sprintf(" WHERE %s > %s", self.dialect.Enclose(column), self.dialect.Placeholder(1)), []any{filter.After}
}

func (self *Source) CountRows(ctx context.Context, table *model.TableDescriptor, filter *model.KeyFilter) (int64, error) {
	where, args := self.where(table, filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", self.dialect.Qualify(self.schema, table.SourceName), where)
	var n int64
	if err := self.conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountRows(%s) -> %w", table.Name, self.dialect.Classify(err))
	}
	return n, nil
}

// OpenCursor projects the descriptor's columns in order. Keyed tables are
// read in ascending key order so the last key fetched is the maximum.
func (self *Source) OpenCursor(ctx context.Context, table *model.TableDescriptor, filter *model.KeyFilter) (model.Cursor, error) {
	where, args := self.where(table, filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s", util.EncloseAndJoin(table.SourceColumns, self.dialect.Quote), self.dialect.Qualify(self.schema, table.SourceName), where)
	if table.HasKey() {
		query += " ORDER BY " + self.dialect.Enclose(table.SourceKey)
	}

	rows, err := self.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("OpenCursor(%s) -> %w", table.Name, self.dialect.Classify(err))
	}
	return newCursor(rows, len(table.SourceColumns)), nil
}

func (self *Source) Close() error {
	return self.conn.Close()
}
