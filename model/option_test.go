package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestLoadOptions_Defaults(t *testing.T) {
	path := writeConfig(t, `
source:
  type: mysql
  addr: 10.0.0.201:3307
  user: root
  password: secret
  database: erp
target:
  path: /tmp/mirror.db
`)
	opt, err := LoadOptions(path)
	require.NoError(t, err)
	require.NoError(t, opt.Init())

	assert.Equal(t, "10.0.0.201", opt.Source.Host)
	assert.Equal(t, 3307, opt.Source.Port)
	assert.Equal(t, "erp", opt.Source.Schema)
	assert.Equal(t, "sqlite", opt.Target.Type)
	assert.Equal(t, DefaultBatchSize, opt.Mirror.BatchSize)
	assert.Equal(t, DefaultLogFile, opt.Mirror.LogFile)
	assert.Equal(t, DefaultIgnoreFile, opt.Mirror.IgnoreFile)
	assert.Equal(t, DefaultReservedPrefix, opt.Mirror.ReservedPrefix)
	assert.Equal(t, DefaultStateTable, opt.Mirror.StateTable)
}

func TestLoadOptions_PgsqlDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  type: postgres
  host: db.local
  user: app
  database: shop
mirror:
  batch_size: 250
`)
	opt, err := LoadOptions(path)
	require.NoError(t, err)
	require.NoError(t, opt.Init())

	assert.Equal(t, "pgsql", opt.Source.Type)
	assert.Equal(t, 5432, opt.Source.Port)
	assert.Equal(t, "public", opt.Source.Schema)
	assert.Equal(t, 250, opt.Mirror.BatchSize)
}

func TestOptionsInit_Invalid(t *testing.T) {
	cases := map[string]Options{
		"unknown source": {Source: SourceOptions{Type: "oracle"}},
		"missing host":   {Source: SourceOptions{Type: "mysql", User: "u", Database: "d"}},
		"bad addr":       {Source: SourceOptions{Type: "mysql", Addr: "host", User: "u", Database: "d"}},
		"sqlite no path": {Source: SourceOptions{Type: "sqlite"}},
		"bad target":     {Source: SourceOptions{Type: "sqlite", Database: "a.db"}, Target: TargetOptions{Type: "clickhouse"}},
		"negative batch": {Source: SourceOptions{Type: "sqlite", Database: "a.db"}, Mirror: MirrorOptions{BatchSize: -1}},
	}
	for name, opt := range cases {
		opt := opt
		t.Run(name, func(t *testing.T) {
			assert.Error(t, opt.Init())
		})
	}
}

func TestOptionsInit_IgnoreTablesLowered(t *testing.T) {
	opt := Options{
		Source:       SourceOptions{Type: "sqlite", Database: "a.db"},
		IgnoreTables: []string{" Orders ", "AUDIT"},
	}
	require.NoError(t, opt.Init())
	assert.Equal(t, []string{"orders", "audit"}, opt.IgnoreTables)
}

func TestLoadOptions_MissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = LoadOptions("")
	assert.Error(t, err)
}
