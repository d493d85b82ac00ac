package util

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"syncData/model"
)

func NewMysqlDB(opt model.SourceOptions) (db *sql.DB, err error) {
	dsn := opt.DSN
	if dsn == "" {
		cfg := mysql.NewConfig()
		cfg.User = opt.User
		cfg.Passwd = opt.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", opt.Host, opt.Port)
		cfg.DBName = opt.Database
		cfg.Timeout = 5 * time.Second
		cfg.ParseTime = true //DATETIME -> time.Time, serialized as ISO-8601
		dsn = cfg.FormatDSN()
	}
	db, err = sql.Open("mysql", dsn)
	if err != nil {
		return
	}
	setPool(db)
	return
}

func setPool(db *sql.DB) {
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Second * 3600)
	db.SetConnMaxIdleTime(time.Second * 3600)
}
