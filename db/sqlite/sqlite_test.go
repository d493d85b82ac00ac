package sqlite

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syncData/db"
	"syncData/model"
	"syncData/util"
)

func newSource(t *testing.T) *db.Source {
	t.Helper()
	conn, err := util.NewSqliteDB(filepath.Join(t.TempDir(), "source.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx := context.Background()
	for _, stmt := range []string{
		`CREATE TABLE Orders (ID INTEGER PRIMARY KEY, Amount TEXT, created_at TEXT)`,
		`INSERT INTO Orders VALUES (3, '30.0', '2024-01-03'), (1, '10.0', '2024-01-01'), (2, NULL, '2024-01-02')`,
		`CREATE TABLE events (msg TEXT)`,
	} {
		_, err := conn.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	return db.NewSource(conn, Dialect(), "")
}

func TestSource_Describe(t *testing.T) {
	ctx := context.Background()
	src := newSource(t)

	tables, err := src.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Orders", "events"}, tables)

	tb, err := src.DescribeTable(ctx, "Orders")
	require.NoError(t, err)
	assert.Equal(t, "orders", tb.Name)
	assert.Equal(t, []string{"id", "amount", "created_at"}, tb.Columns)
	assert.Equal(t, "id", tb.PrimaryKey)

	tb, err = src.DescribeTable(ctx, "events")
	require.NoError(t, err)
	assert.False(t, tb.HasKey())

	_, err = src.DescribeTable(ctx, "missing")
	assert.Error(t, err)
}

func TestSource_CursorOrderedAndFiltered(t *testing.T) {
	ctx := context.Background()
	src := newSource(t)
	tb, err := src.DescribeTable(ctx, "Orders")
	require.NoError(t, err)

	n, err := src.CountRows(ctx, tb, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	cur, err := src.OpenCursor(ctx, tb, nil)
	require.NoError(t, err)
	first, err := cur.Fetch(2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, int64(1), first[0][0])
	assert.Nil(t, first[1][1])
	rest, err := cur.Fetch(2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, int64(3), rest[0][0])
	empty, err := cur.Fetch(2)
	require.NoError(t, err)
	assert.Empty(t, empty)
	require.NoError(t, cur.Close())

	filter := &model.KeyFilter{Column: tb.PrimaryKey, After: "1"}
	n, err = src.CountRows(ctx, tb, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	cur, err = src.OpenCursor(ctx, tb, filter)
	require.NoError(t, err)
	defer cur.Close()
	rows, err := cur.Fetch(10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0][0])
}

func TestSink_SchemaAndWrites(t *testing.T) {
	ctx := context.Background()
	conn, err := util.NewSqliteDB(filepath.Join(t.TempDir(), "sink.db"))
	require.NoError(t, err)
	sink := db.NewSink(conn, SinkDialect())
	defer sink.Close()

	_, exists, err := sink.TableColumns(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, sink.CreateTable(ctx, "orders", []string{"id", "amount"}))
	require.NoError(t, sink.AddColumns(ctx, "orders", []string{"created_at", "note"}))
	columns, exists, err := sink.TableColumns(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []string{"id", "amount", "created_at", "note"}, columns)

	tx, err := sink.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, "orders", []string{"id", "amount"}, []model.Row{{"1", "10.0"}, {"2", nil}, {"3", "30.0"}}))
	n, err := tx.DeleteKeys(ctx, "orders", "id", []string{"2", "3", "9"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, tx.Commit())

	rows, err := sink.Query(ctx, `SELECT id, amount FROM orders ORDER BY id`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "10.0"}}, rows)

	tx, err = sink.Begin(ctx)
	require.NoError(t, err)
	n, err = tx.DeleteAll(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, tx.Rollback())

	rows, err = sink.Query(ctx, `SELECT count(*) FROM orders`)
	require.NoError(t, err)
	assert.Equal(t, "1", rows[0][0])
}

func TestSink_DeleteKeysChunked(t *testing.T) {
	ctx := context.Background()
	conn, err := util.NewSqliteDB(filepath.Join(t.TempDir(), "sink.db"))
	require.NoError(t, err)
	sink := db.NewSink(conn, SinkDialect())
	defer sink.Close()
	require.NoError(t, sink.CreateTable(ctx, "t", []string{"id"}))

	var rows []model.Row
	var keys []string
	for i := 0; i < 1200; i++ {
		k := "k" + strconv.Itoa(i)
		rows = append(rows, model.Row{k})
		keys = append(keys, k)
	}
	tx, err := sink.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, "t", []string{"id"}, rows))
	n, err := tx.DeleteKeys(ctx, "t", "id", keys)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), n)
	require.NoError(t, tx.Commit())
}
