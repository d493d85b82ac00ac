package db

import (
	"errors"
	"fmt"
	"strings"

	"syncData/model"
	"syncData/util"
)

// Dialect describes what differs between source databases: identifier
// quoting, bind placeholders, catalog queries and privilege errors.
type Dialect struct {
	Name        string
	Quote       string
	Placeholder func(i int) string
	// ListTables returns the query listing base tables of schema.
	ListTables func(schema string) (string, []any)
	// PrimaryKey returns the query listing the primary key columns of a
	// table in key order.
	PrimaryKey func(schema, table string) (string, []any)
	// PermissionDenied reports whether err is a driver privilege error.
	PermissionDenied func(err error) bool
}

func (self Dialect) Enclose(name string) string {
	return util.EncloseStr(name, self.Quote)
}

func (self Dialect) Qualify(schema, table string) string {
	if schema == "" {
		return self.Enclose(table)
	}
	return self.Enclose(schema) + "." + self.Enclose(table)
}

// Classify wraps err with model.ErrPermissionDenied when the driver or the
// message says the account lacks a privilege.
func (self Dialect) Classify(err error) error {
	if err == nil || errors.Is(err, model.ErrPermissionDenied) {
		return err
	}
	if (self.PermissionDenied != nil && self.PermissionDenied(err)) || IsPermissionMessage(err) {
		return fmt.Errorf("%w: %w", model.ErrPermissionDenied, err)
	}
	return err
}

func IsPermissionMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission denied") || strings.Contains(msg, "access denied")
}

// SinkDialect describes a local analytical store.
type SinkDialect struct {
	Name     string
	Quote    string
	TextType string
	// TableColumns returns the query listing a table's columns; no rows
	// means the table does not exist.
	TableColumns func(table string) (string, []any)
}

func (self SinkDialect) Enclose(name string) string {
	return util.EncloseStr(name, self.Quote)
}
