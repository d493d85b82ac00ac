package model

import "context"

// Logger is the logging surface every component writes to.
// *slog.Logger from github.com/gookit/slog satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// KeyFilter restricts a read to rows whose key column is strictly greater
// than After, ordered ascending by that column.
type KeyFilter struct {
	Column string
	After  string
}

type Source interface {
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, name string) (*TableDescriptor, error)
	CountRows(ctx context.Context, table *TableDescriptor, filter *KeyFilter) (int64, error)
	// OpenCursor streams the descriptor's columns in order. When the table has
	// a key the rows are ordered by it; filter may be nil.
	OpenCursor(ctx context.Context, table *TableDescriptor, filter *KeyFilter) (Cursor, error)
	Close() error
}

type Cursor interface {
	// Fetch returns up to n rows; an empty result means the cursor is drained.
	Fetch(n int) ([]Row, error)
	Close() error
}

type Sink interface {
	// TableColumns returns the sink table's columns, or exists=false when the
	// table is missing.
	TableColumns(ctx context.Context, table string) (columns []string, exists bool, err error)
	CreateTable(ctx context.Context, table string, columns []string) error
	// AddColumns adds nullable text columns in a single transaction.
	AddColumns(ctx context.Context, table string, columns []string) error
	Begin(ctx context.Context) (SinkTx, error)
	// Query returns every row as strings, NULL as "".
	Query(ctx context.Context, query string, args ...any) ([][]string, error)
	Exec(ctx context.Context, query string, args ...any) error
	Close() error
}

type SinkTx interface {
	DeleteAll(ctx context.Context, table string) (int64, error)
	DeleteKeys(ctx context.Context, table, key string, values []string) (int64, error)
	Insert(ctx context.Context, table string, columns []string, rows []Row) error
	Exec(ctx context.Context, query string, args ...any) error
	Commit() error
	Rollback() error
}

type IgnoreSet interface {
	Contains(table string) bool
	Add(tables ...string) error
}
