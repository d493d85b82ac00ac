package mirror

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"syncData/model"
	"syncData/util"
)

// StateStore keeps one checkpoint row per table inside the sink database.
type StateStore struct {
	sink  model.Sink
	table string
}

func NewStateStore(ctx context.Context, sink model.Sink, table string) (*StateStore, error) {
	self := &StateStore{sink: sink, table: util.EncloseStr(table, `"`)}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
table_name TEXT PRIMARY KEY,
last_sync_time TEXT,
last_key_value TEXT,
sync_method TEXT,
row_count INTEGER)`, self.table)
	if err := sink.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("NewStateStore(%s) -> %w", table, err)
	}
	return self, nil
}

// Get returns nil when the table has never been synced.
func (self *StateStore) Get(ctx context.Context, table string) (*model.Checkpoint, error) {
	query := fmt.Sprintf(`SELECT last_sync_time, last_key_value, sync_method, row_count FROM %s WHERE table_name = ?`, self.table)
	rows, err := self.sink.Query(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("StateStore.Get(%s) -> %w", table, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	cp := &model.Checkpoint{
		TableName:    table,
		LastKeyValue: row[1],
		SyncMethod:   model.SyncMethod(row[2]),
	}
	if row[0] != "" {
		if cp.LastSyncTime, err = time.Parse(time.RFC3339Nano, row[0]); err != nil {
			return nil, fmt.Errorf("StateStore.Get(%s) last_sync_time -> %w", table, err)
		}
	}
	if row[3] != "" {
		if cp.RowCount, err = strconv.ParseInt(row[3], 10, 64); err != nil {
			return nil, fmt.Errorf("StateStore.Get(%s) row_count -> %w", table, err)
		}
	}
	return cp, nil
}

func (self *StateStore) upsert() string {
	return fmt.Sprintf(`INSERT OR REPLACE INTO %s (table_name, last_sync_time, last_key_value, sync_method, row_count) VALUES (?, ?, ?, ?, ?)`, self.table)
}

func (self *StateStore) args(cp *model.Checkpoint) []any {
	var key any
	if cp.LastKeyValue != "" {
		key = cp.LastKeyValue
	}
	return []any{cp.TableName, cp.LastSyncTime.UTC().Format(time.RFC3339Nano), key, string(cp.SyncMethod), cp.RowCount}
}

// Put replaces the whole checkpoint row.
func (self *StateStore) Put(ctx context.Context, cp *model.Checkpoint) error {
	if err := self.sink.Exec(ctx, self.upsert(), self.args(cp)...); err != nil {
		return fmt.Errorf("StateStore.Put(%s) -> %w", cp.TableName, err)
	}
	return nil
}

// PutTx writes the checkpoint inside tx so it commits with the batch it
// describes.
func (self *StateStore) PutTx(ctx context.Context, tx model.SinkTx, cp *model.Checkpoint) error {
	if err := tx.Exec(ctx, self.upsert(), self.args(cp)...); err != nil {
		return fmt.Errorf("StateStore.PutTx(%s) -> %w", cp.TableName, err)
	}
	return nil
}
