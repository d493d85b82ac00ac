package main

import (
	"context"
	"database/sql"
	"fmt"

	"syncData/db"
	"syncData/db/duckdb"
	"syncData/db/mssql"
	"syncData/db/mysql"
	"syncData/db/pgsql"
	"syncData/db/sqlite"
	"syncData/model"
	"syncData/util"
)

func openSource(ctx context.Context, opt model.SourceOptions) (*db.Source, error) {
	var (
		conn    *sql.DB
		dialect db.Dialect
		err     error
	)
	switch opt.Type {
	case "mysql":
		conn, err = util.NewMysqlDB(opt)
		dialect = mysql.Dialect()
	case "pgsql":
		conn, err = util.NewPgsqlDB(opt)
		dialect = pgsql.Dialect()
	case "mssql":
		conn, err = util.NewMssqlDB(opt)
		dialect = mssql.Dialect()
	case "sqlite":
		path := opt.DSN
		if path == "" {
			path = opt.Database
		}
		conn, err = util.NewSqliteDB(path)
		dialect = sqlite.Dialect()
	default:
		return nil, fmt.Errorf("unsupported source type %q", opt.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s source -> %w", opt.Type, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect %s source -> %w", opt.Type, err)
	}
	return db.NewSource(conn, dialect, opt.Schema), nil
}

func openSink(ctx context.Context, opt model.TargetOptions) (*db.Sink, error) {
	var (
		conn    *sql.DB
		dialect db.SinkDialect
		err     error
	)
	switch opt.Type {
	case "sqlite":
		conn, err = util.NewSqliteDB(opt.Path)
		dialect = sqlite.SinkDialect()
	case "duckdb":
		conn, err = duckdb.Open(opt.Path)
		dialect = duckdb.SinkDialect()
	default:
		return nil, fmt.Errorf("unsupported target type %q", opt.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s target -> %w", opt.Type, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect %s target %s -> %w", opt.Type, opt.Path, err)
	}
	return db.NewSink(conn, dialect), nil
}
