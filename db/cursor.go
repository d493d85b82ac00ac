package db

import (
	"database/sql"
	"fmt"

	"syncData/model"
)

type cursor struct {
	rows    *sql.Rows
	width   int
	drained bool
}

func newCursor(rows *sql.Rows, width int) *cursor {
	return &cursor{rows: rows, width: width}
}

func (self *cursor) Fetch(n int) ([]model.Row, error) {
	if self.drained || n <= 0 {
		return nil, nil
	}

	batch := make([]model.Row, 0, n)
	for len(batch) < n {
		if !self.rows.Next() {
			self.drained = true
			if err := self.rows.Err(); err != nil {
				return nil, fmt.Errorf("Fetch -> %w", err)
			}
			break
		}
		row := make(model.Row, self.width)
		ptrs := make([]any, self.width)
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := self.rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("Fetch -> %w", err)
		}
		batch = append(batch, row)
	}
	return batch, nil
}

func (self *cursor) Close() error {
	return self.rows.Close()
}
