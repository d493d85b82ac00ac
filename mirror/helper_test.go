package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"syncData/db"
	"syncData/db/sqlite"
	"syncData/model"
	"syncData/util"
)

type testEnv struct {
	ctx     context.Context
	dir     string
	srcConn *sql.DB
	source  *db.Source
	sink    *db.Sink
	ignore  *util.IgnoreList
	opt     *model.Options
	logger  model.Logger
}

func newTestEnv(t *testing.T, batchSize int) *testEnv {
	t.Helper()
	dir := t.TempDir()

	srcConn, err := util.NewSqliteDB(filepath.Join(dir, "source.db"))
	require.NoError(t, err)
	t.Cleanup(func() { srcConn.Close() })

	sinkConn, err := util.NewSqliteDB(filepath.Join(dir, "analytics.db"))
	require.NoError(t, err)
	sink := db.NewSink(sinkConn, sqlite.SinkDialect())
	t.Cleanup(func() { sink.Close() })

	ignore, err := util.LoadIgnoreList(filepath.Join(dir, "ignored_tables.txt"))
	require.NoError(t, err)

	logger, err := util.NewLogger("", false)
	require.NoError(t, err)

	return &testEnv{
		ctx:     context.Background(),
		dir:     dir,
		srcConn: srcConn,
		source:  db.NewSource(srcConn, sqlite.Dialect(), ""),
		sink:    sink,
		ignore:  ignore,
		opt: &model.Options{Mirror: model.MirrorOptions{
			BatchSize:      batchSize,
			ReservedPrefix: model.DefaultReservedPrefix,
			StateTable:     model.DefaultStateTable,
		}},
		logger: logger,
	}
}

func (self *testEnv) exec(t *testing.T, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		_, err := self.srcConn.ExecContext(self.ctx, stmt)
		require.NoError(t, err, stmt)
	}
}

func (self *testEnv) mirror(t *testing.T, source model.Source) *Mirror {
	t.Helper()
	if source == nil {
		source = self.source
	}
	m, err := New(self.ctx, self.opt, source, self.sink, self.ignore, self.logger)
	require.NoError(t, err)
	return m
}

func (self *testEnv) sinkRows(t *testing.T, query string) [][]string {
	t.Helper()
	rows, err := self.sink.Query(self.ctx, query)
	require.NoError(t, err)
	return rows
}

func (self *testEnv) checkpoint(t *testing.T, table string) *model.Checkpoint {
	t.Helper()
	state, err := NewStateStore(self.ctx, self.sink, self.opt.Mirror.StateTable)
	require.NoError(t, err)
	cp, err := state.Get(self.ctx, table)
	require.NoError(t, err)
	return cp
}

func (self *testEnv) createOrders(t *testing.T) {
	self.exec(t,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, amount TEXT, created_at TEXT)`,
		`INSERT INTO orders VALUES (1, '10.0', '2024-01-01'), (2, '20.0', '2024-01-02'), (3, '30.0', '2024-01-03')`,
	)
}

// stubSource wraps a real source to inject privilege errors and broken
// cursors, and to record what was asked of it.
type stubSource struct {
	model.Source
	denied    map[string]bool
	failAfter map[string]int //successful fetches before the cursor breaks
	describes map[string]int
	filters   []*model.KeyFilter
}

func newStubSource(src model.Source) *stubSource {
	return &stubSource{Source: src, denied: map[string]bool{}, failAfter: map[string]int{}, describes: map[string]int{}}
}

func (self *stubSource) DescribeTable(ctx context.Context, name string) (*model.TableDescriptor, error) {
	self.describes[name]++
	if self.denied[name] {
		return nil, fmt.Errorf("DescribeTable(%s) -> %w: %w", name, model.ErrPermissionDenied, errors.New("SELECT command denied"))
	}
	return self.Source.DescribeTable(ctx, name)
}

func (self *stubSource) OpenCursor(ctx context.Context, table *model.TableDescriptor, filter *model.KeyFilter) (model.Cursor, error) {
	self.filters = append(self.filters, filter)
	cur, err := self.Source.OpenCursor(ctx, table, filter)
	if err != nil {
		return nil, err
	}
	if n, ok := self.failAfter[table.Name]; ok {
		return &brokenCursor{Cursor: cur, left: n}, nil
	}
	return cur, nil
}

type brokenCursor struct {
	model.Cursor
	left int
}

func (self *brokenCursor) Fetch(n int) ([]model.Row, error) {
	if self.left == 0 {
		return nil, errors.New("connection reset by peer")
	}
	self.left--
	return self.Cursor.Fetch(n)
}
