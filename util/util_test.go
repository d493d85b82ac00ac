package util

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	lines []string
}

func (self *captureLogger) Infof(format string, args ...any) {
	self.lines = append(self.lines, format)
}

func TestEncloseStr(t *testing.T) {
	assert.Equal(t, "`orders`", EncloseStr("orders", "`"))
	assert.Equal(t, `"Order""s"`, EncloseStr(`Order"s`, `"`))
	assert.Equal(t, "[a]]b]", EncloseStr("a]b", "["))
	assert.Equal(t, `"id", "amount"`, EncloseAndJoin([]string{"id", "amount"}, `"`))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", Placeholders(3, 1, QuestionMark))
	dollar := func(i int) string { return "$" + string(rune('0'+i)) }
	assert.Equal(t, "$2, $3", Placeholders(2, 2, dollar))
	assert.Equal(t, "", Placeholders(0, 1, QuestionMark))
}

func TestInSlice(t *testing.T) {
	assert.True(t, InSlice("b", []string{"a", "b"}))
	assert.False(t, InSlice(3, []int{1, 2}))
}

func TestTimeCost(t *testing.T) {
	logger := &captureLogger{}
	TimeCost(logger)("[orders] done")
	require.Len(t, logger.lines, 1)
	assert.Equal(t, "%s, cost %.2fs", logger.lines[0])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report", "sync.txt")
	require.NoError(t, WriteFile(path, "a\n"))
	require.NoError(t, WriteFileTail(path, "b\n"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))

	require.NoError(t, WriteFile(path, "c\n"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c\n", string(data))
}

func TestQueryReturnList(t *testing.T) {
	db, err := NewSqliteDB(filepath.Join(t.TempDir(), "q.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.ExecContext(ctx, "create table t (id integer, name text)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "insert into t values (1, 'a'), (2, null)")
	require.NoError(t, err)

	rows, err := QueryReturnList(ctx, db, "select id, name from t where id >= ? order by id", 1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "a"}, {"2", ""}}, rows)
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sync.log")
	logger, err := NewLogger(path, true)
	require.NoError(t, err)
	logger.Infof("[%s] synced %d rows", "orders", 3)
	logger.Debugf("debug line")
	require.NoError(t, logger.Flush())
	logger.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[orders] synced 3 rows")
	assert.Contains(t, string(data), "debug line")
}
