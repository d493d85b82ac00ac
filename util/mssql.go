package util

import (
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"

	"syncData/model"
)

func NewMssqlDB(opt model.SourceOptions) (db *sql.DB, err error) {
	dsn := opt.DSN
	if dsn == "" {
		dsn = fmt.Sprintf("server=%s,%d;user id=%s;password=%s;database=%s;encrypt=disable;dial timeout=5", opt.Host, opt.Port, opt.User, opt.Password, opt.Database)
	}
	db, err = sql.Open("sqlserver", dsn)
	if err != nil {
		return
	}
	setPool(db)
	return
}
