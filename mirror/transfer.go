package mirror

import (
	"context"
	"fmt"
	"time"

	"syncData/model"
)

// Outcome is what one table transfer did.
type Outcome struct {
	Strategy   Strategy //strategy actually run, after any downgrade
	RowsSynced int64
	Checkpoint *model.Checkpoint //checkpoint in effect after the transfer
}

// Engine moves rows from the source into the sink in fixed-size batches.
// Each batch commits on its own, together with the checkpoint describing it.
type Engine struct {
	source    model.Source
	sink      model.Sink
	state     *StateStore
	batchSize int
	logger    model.Logger
	now       func() time.Time
}

func NewEngine(source model.Source, sink model.Sink, state *StateStore, batchSize int, logger model.Logger) *Engine {
	if batchSize <= 0 {
		batchSize = model.DefaultBatchSize
	}
	return &Engine{source: source, sink: sink, state: state, batchSize: batchSize, logger: logger, now: time.Now}
}

func (self *Engine) Transfer(ctx context.Context, table *model.TableDescriptor, strategy Strategy, cp *model.Checkpoint) (*Outcome, error) {
	switch strategy {
	case Full:
		return self.full(ctx, table)
	case KeyBased:
		if !table.HasKey() || !cp.HasKey() {
			self.logger.Warnf("[%s] no checkpoint key, falling back to full transfer", table.Name)
			return self.full(ctx, table)
		}
		return self.keyBased(ctx, table, cp)
	default:
		return nil, fmt.Errorf("Transfer(%s) -> unknown strategy %d", table.Name, strategy)
	}
}

// full replaces the sink table with the whole source table. The clear is
// committed with the first batch.
func (self *Engine) full(ctx context.Context, table *model.TableDescriptor) (*Outcome, error) {
	total := self.count(ctx, table, nil)
	self.logger.Infof("[%s] full transfer, %d rows", table.Name, total)

	cur, err := self.source.OpenCursor(ctx, table, nil)
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	keyIndex := table.KeyIndex()
	var (
		synced  int64
		lastKey string
		cleared bool
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := cur.Fetch(self.batchSize)
		if err != nil {
			return nil, fmt.Errorf("read -> %w", err)
		}
		if len(rows) == 0 && cleared {
			break
		}

		normalizeRows(rows)
		if keyIndex >= 0 {
			//rows arrive in key order, the last key seen is the maximum
			for _, row := range rows {
				if k, ok := row[keyIndex].(string); ok {
					lastKey = k
				}
			}
		}

		err = self.writeBatch(ctx, func(tx model.SinkTx) error {
			if !cleared {
				if _, err := tx.DeleteAll(ctx, table.Name); err != nil {
					return err
				}
			}
			if err := tx.Insert(ctx, table.Name, table.Columns, rows); err != nil {
				return err
			}
			if lastKey == "" {
				return nil
			}
			return self.state.PutTx(ctx, tx, self.checkpoint(table, model.MethodKeyBased, lastKey, synced+int64(len(rows))))
		})
		if err != nil {
			return nil, err
		}
		cleared = true
		if len(rows) == 0 {
			break
		}
		synced += int64(len(rows))
		self.progress(table, synced, total)
	}

	method := model.MethodFull
	if table.HasKey() {
		method = model.MethodKeyBased
	}
	cp := self.checkpoint(table, method, lastKey, synced)
	if err := self.state.Put(ctx, cp); err != nil {
		return nil, err
	}
	return &Outcome{Strategy: Full, RowsSynced: synced, Checkpoint: cp}, nil
}

// keyBased appends rows whose key is past the checkpoint. Each batch first
// deletes sink rows carrying the same keys, then inserts, then advances the
// checkpoint, all in one transaction.
func (self *Engine) keyBased(ctx context.Context, table *model.TableDescriptor, prior *model.Checkpoint) (*Outcome, error) {
	filter := &model.KeyFilter{Column: table.PrimaryKey, After: prior.LastKeyValue}
	total := self.count(ctx, table, filter)
	self.logger.Infof("[%s] key based transfer from %s > %s, %d rows", table.Name, table.PrimaryKey, prior.LastKeyValue, total)

	cur, err := self.source.OpenCursor(ctx, table, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	keyIndex := table.KeyIndex()
	lastKey := prior.LastKeyValue
	rowCount := prior.RowCount
	var (
		synced int64
		cp     = prior
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := cur.Fetch(self.batchSize)
		if err != nil {
			return nil, fmt.Errorf("read -> %w", err)
		}
		if len(rows) == 0 {
			break
		}

		normalizeRows(rows)
		keys := make([]string, 0, len(rows))
		batchKey := lastKey
		for _, row := range rows {
			if k, ok := row[keyIndex].(string); ok {
				keys = append(keys, k)
				batchKey = k
			}
		}

		var next *model.Checkpoint
		err = self.writeBatch(ctx, func(tx model.SinkTx) error {
			replaced, err := tx.DeleteKeys(ctx, table.Name, table.PrimaryKey, keys)
			if err != nil {
				return err
			}
			if err := tx.Insert(ctx, table.Name, table.Columns, rows); err != nil {
				return err
			}
			next = self.checkpoint(table, model.MethodKeyBased, batchKey, rowCount+int64(len(rows))-replaced)
			return self.state.PutTx(ctx, tx, next)
		})
		if err != nil {
			return nil, err
		}
		cp, lastKey, rowCount = next, next.LastKeyValue, next.RowCount
		synced += int64(len(rows))
		self.progress(table, synced, total)
	}

	if synced == 0 {
		self.logger.Infof("[%s] no new rows after %s", table.Name, prior.LastKeyValue)
	}
	return &Outcome{Strategy: KeyBased, RowsSynced: synced, Checkpoint: cp}, nil
}

// writeBatch runs fn in one sink transaction; any error rolls it back.
func (self *Engine) writeBatch(ctx context.Context, fn func(tx model.SinkTx) error) (err error) {
	tx, err := self.sink.Begin(ctx)
	if err != nil {
		return fmt.Errorf("write -> %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return fmt.Errorf("write -> %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit -> %w", err)
	}
	return nil
}

func (self *Engine) checkpoint(table *model.TableDescriptor, method model.SyncMethod, key string, rowCount int64) *model.Checkpoint {
	return &model.Checkpoint{
		TableName:    table.Name,
		LastSyncTime: self.now(),
		LastKeyValue: key,
		SyncMethod:   method,
		RowCount:     rowCount,
	}
}

// count is advisory, used for progress only; -1 when unknown.
func (self *Engine) count(ctx context.Context, table *model.TableDescriptor, filter *model.KeyFilter) int64 {
	n, err := self.source.CountRows(ctx, table, filter)
	if err != nil {
		self.logger.Warnf("[%s] count rows failed: %s", table.Name, err)
		return -1
	}
	return n
}

func (self *Engine) progress(table *model.TableDescriptor, synced, total int64) {
	if total > 0 {
		self.logger.Infof("[%s] synced %d/%d (%.1f%%)", table.Name, synced, total, float64(synced)*100/float64(total))
		return
	}
	self.logger.Infof("[%s] synced %d", table.Name, synced)
}
