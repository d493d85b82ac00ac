package model

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is wrapped by sources when the account lacks the
// privilege to read a table's metadata or rows.
var ErrPermissionDenied = errors.New("permission denied")

// ErrorKind classifies a failure by the stage that produced it.
type ErrorKind string

const (
	KindConnection ErrorKind = "connection"
	KindDiscovery  ErrorKind = "discovery"
	KindPermission ErrorKind = "permission"
	KindSchema     ErrorKind = "schema"
	KindTransfer   ErrorKind = "transfer"
)

type SyncError struct {
	Kind  ErrorKind
	Table string
	Err   error
}

func NewSyncError(kind ErrorKind, table string, err error) *SyncError {
	return &SyncError{Kind: kind, Table: table, Err: err}
}

func (self *SyncError) Error() string {
	if self.Table == "" {
		return fmt.Sprintf("%s error: %v", self.Kind, self.Err)
	}
	return fmt.Sprintf("[%s] %s error: %v", self.Table, self.Kind, self.Err)
}

func (self *SyncError) Unwrap() error {
	return self.Err
}

func IsKind(err error, kind ErrorKind) bool {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
