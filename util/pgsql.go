package util

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"

	"syncData/model"
)

func NewPgsqlDB(opt model.SourceOptions) (db *sql.DB, err error) {
	dsn := opt.DSN
	if dsn == "" {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(opt.User, opt.Password),
			Host:     fmt.Sprintf("%s:%d", opt.Host, opt.Port),
			Path:     opt.Database,
			RawQuery: "sslmode=disable&connect_timeout=5",
		}
		dsn = u.String()
	}
	db, err = sql.Open("postgres", dsn)
	if err != nil {
		return
	}
	setPool(db)
	return
}
