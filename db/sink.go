package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"syncData/model"
	"syncData/util"
)

// keysPerDelete bounds the IN list of one DELETE statement.
const keysPerDelete = 500

// Sink writes mirrored tables into a local store. Every column is text.
type Sink struct {
	conn    *sql.DB
	dialect SinkDialect
}

func NewSink(conn *sql.DB, dialect SinkDialect) *Sink {
	return &Sink{conn: conn, dialect: dialect}
}

func (self *Sink) TableColumns(ctx context.Context, table string) ([]string, bool, error) {
	query, args := self.dialect.TableColumns(table)
	rows, err := util.QueryReturnList(ctx, self.conn, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("TableColumns(%s) -> %w", table, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	columns := make([]string, len(rows))
	for i, row := range rows {
		columns[i] = row[0]
	}
	return columns, true, nil
}

func (self *Sink) columnDefs(columns []string) []string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = self.dialect.Enclose(c) + " " + self.dialect.TextType
	}
	return defs
}

func (self *Sink) CreateTable(ctx context.Context, table string, columns []string) error {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", self.dialect.Enclose(table), strings.Join(self.columnDefs(columns), ", "))
	if _, err := self.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("CreateTable(%s) -> %w", table, err)
	}
	return nil
}

func (self *Sink) AddColumns(ctx context.Context, table string, columns []string) (err error) {
	if len(columns) == 0 {
		return nil
	}
	tx, err := self.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("AddColumns(%s) -> %w", table, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, def := range self.columnDefs(columns) {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", self.dialect.Enclose(table), def)); err != nil {
			return fmt.Errorf("AddColumns(%s) -> %w", table, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("AddColumns(%s) commit -> %w", table, err)
	}
	return nil
}

func (self *Sink) Begin(ctx context.Context) (model.SinkTx, error) {
	tx, err := self.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Begin -> %w", err)
	}
	return &sinkTx{tx: tx, dialect: self.dialect}, nil
}

func (self *Sink) Query(ctx context.Context, query string, args ...any) ([][]string, error) {
	return util.QueryReturnList(ctx, self.conn, query, args...)
}

func (self *Sink) Exec(ctx context.Context, query string, args ...any) error {
	_, err := self.conn.ExecContext(ctx, query, args...)
	return err
}

func (self *Sink) Close() error {
	return self.conn.Close()
}

type sinkTx struct {
	tx      *sql.Tx
	dialect SinkDialect
}

func (self *sinkTx) DeleteAll(ctx context.Context, table string) (int64, error) {
	res, err := self.tx.ExecContext(ctx, "DELETE FROM "+self.dialect.Enclose(table))
	if err != nil {
		return 0, fmt.Errorf("DeleteAll(%s) -> %w", table, err)
	}
	return res.RowsAffected()
}

// DeleteKeys removes the rows whose key is in values and reports how many
// were removed.
func (self *sinkTx) DeleteKeys(ctx context.Context, table, key string, values []string) (int64, error) {
	var total int64
	for start := 0; start < len(values); start += keysPerDelete {
		end := min(start+keysPerDelete, len(values))
		chunk := values[start:end]

		args := make([]any, len(chunk))
		for i, v := range chunk {
			args[i] = v
		}
		query := fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)", self.dialect.Enclose(table), self.dialect.Enclose(key), util.Placeholders(len(chunk), 1, util.QuestionMark))
		res, err := self.tx.ExecContext(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("DeleteKeys(%s) -> %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("DeleteKeys(%s) -> %w", table, err)
		}
		total += n
	}
	return total, nil
}

// Insert writes rows with one prepared statement.
func (self *sinkTx) Insert(ctx context.Context, table string, columns []string, rows []model.Row) error {
	if len(rows) == 0 {
		return nil
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", self.dialect.Enclose(table), util.EncloseAndJoin(columns, self.dialect.Quote), util.Placeholders(len(columns), 1, util.QuestionMark))
	stmt, err := self.tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("Insert(%s) prepare -> %w", table, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("Insert(%s) -> %w", table, err)
		}
	}
	return nil
}

func (self *sinkTx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := self.tx.ExecContext(ctx, query, args...)
	return err
}

func (self *sinkTx) Commit() error {
	return self.tx.Commit()
}

func (self *sinkTx) Rollback() error {
	return self.tx.Rollback()
}
