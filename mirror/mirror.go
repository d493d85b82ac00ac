package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"syncData/model"
	"syncData/util"
)

// Mirror drives one sync run: every eligible source table is reconciled,
// assigned a strategy and transferred, one table at a time.
type Mirror struct {
	opt        *model.Options
	source     model.Source
	sink       model.Sink
	ignore     model.IgnoreSet
	logger     model.Logger
	state      *StateStore
	reconciler *Reconciler
	engine     *Engine
}

func New(ctx context.Context, opt *model.Options, source model.Source, sink model.Sink, ignore model.IgnoreSet, logger model.Logger) (*Mirror, error) {
	stateTable := opt.Mirror.StateTable
	if stateTable == "" {
		stateTable = model.DefaultStateTable
	}
	state, err := NewStateStore(ctx, sink, stateTable)
	if err != nil {
		return nil, model.NewSyncError(model.KindConnection, "", err)
	}
	return &Mirror{
		opt:        opt,
		source:     source,
		sink:       sink,
		ignore:     ignore,
		logger:     logger,
		state:      state,
		reconciler: NewReconciler(sink, logger),
		engine:     NewEngine(source, sink, state, opt.Mirror.BatchSize, logger),
	}, nil
}

func (self *Mirror) State() *StateStore {
	return self.state
}

// Run syncs every eligible table. Table failures are recorded in the
// returned metrics and never stop the run. The error is non-nil only when
// the tables cannot be listed or ctx is cancelled.
func (self *Mirror) Run(ctx context.Context) (*model.RunMetrics, error) {
	metrics := &model.RunMetrics{StartTime: time.Now()}
	defer func() {
		metrics.Elapsed = time.Since(metrics.StartTime)
		self.logger.Infof("sync finished %s", metrics.GetLog())
	}()

	tables, err := self.source.ListTables(ctx)
	if err != nil {
		return metrics, model.NewSyncError(model.KindDiscovery, "", err)
	}
	metrics.TablesFound = len(tables)

	for _, name := range tables {
		if err := ctx.Err(); err != nil {
			self.logger.Warnf("sync stopped: %s", err)
			return metrics, err
		}
		if !self.eligible(name) {
			continue
		}
		if self.ignore.Contains(name) {
			self.logger.Infof("[%s] in ignore list, skipped", strings.ToLower(name))
			metrics.Add(&model.TableResult{TbName: strings.ToLower(name), Status: model.StatusSkipped, Message: "ignored"})
			continue
		}
		metrics.Add(self.SyncTable(ctx, name))
	}
	return metrics, nil
}

// eligible excludes internal tables: the reserved prefix and the
// checkpoint table.
func (self *Mirror) eligible(name string) bool {
	lower := strings.ToLower(name)
	if prefix := self.opt.Mirror.ReservedPrefix; prefix != "" && strings.HasPrefix(lower, prefix) {
		self.logger.Debugf("[%s] reserved table, skipped", lower)
		return false
	}
	return lower != strings.ToLower(self.opt.Mirror.StateTable)
}

// SyncTable runs discovery, reconciliation, strategy selection and transfer
// for one source table.
func (self *Mirror) SyncTable(ctx context.Context, name string) *model.TableResult {
	res := &model.TableResult{TbName: strings.ToLower(name)}
	bts := time.Now()
	defer func() {
		res.ExecuteSeconds = int(time.Since(bts).Seconds())
		self.logger.Infof("%s", res.GetLog())
	}()
	defer util.TimeCost(self.logger)(fmt.Sprintf("[%s] done", res.TbName))

	table, err := self.source.DescribeTable(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrPermissionDenied) {
			self.logger.Warnf("[%s] permission denied, added to ignore list: %s", res.TbName, err)
			if err := self.ignore.Add(res.TbName); err != nil {
				self.logger.Errorf("[%s] add to ignore list failed: %s", res.TbName, err)
			}
			return self.fail(res, model.KindPermission, err, model.StatusSkipped)
		}
		return self.fail(res, model.KindDiscovery, err, model.StatusFailed)
	}
	self.logger.Debugf("[%s] columns: %s, key: %s", table.Name, strings.Join(table.Columns, ", "), table.PrimaryKey)

	if err := self.reconciler.Reconcile(ctx, table); err != nil {
		return self.fail(res, model.KindSchema, err, model.StatusFailed)
	}

	cp, err := self.state.Get(ctx, table.Name)
	if err != nil {
		return self.fail(res, model.KindTransfer, err, model.StatusFailed)
	}
	strategy := Select(table, cp, self.opt.FullSync)
	res.Strategy = strategy.String()

	outcome, err := self.engine.Transfer(ctx, table, strategy, cp)
	if err != nil {
		return self.fail(res, model.KindTransfer, err, model.StatusFailed)
	}

	res.Status = model.StatusOK
	res.Strategy = outcome.Strategy.String()
	res.RowsSynced = outcome.RowsSynced
	if outcome.Checkpoint != nil {
		res.RowCount = outcome.Checkpoint.RowCount
		res.LastKeyValue = outcome.Checkpoint.LastKeyValue
	}
	return res
}

func (self *Mirror) fail(res *model.TableResult, kind model.ErrorKind, err error, status string) *model.TableResult {
	se := model.NewSyncError(kind, res.TbName, err)
	if status == model.StatusFailed {
		self.logger.Errorf("%s", se)
	}
	res.Status = status
	res.Message = se.Error()
	res.Err = se
	return res
}
