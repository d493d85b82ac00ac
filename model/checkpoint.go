package model

import "time"

type SyncMethod string

const (
	MethodFull     SyncMethod = "full"
	MethodKeyBased SyncMethod = "key_based"
)

// Checkpoint is the persisted per-table resumption point.
// An empty LastKeyValue means no key has been recorded.
type Checkpoint struct {
	TableName    string
	LastSyncTime time.Time
	LastKeyValue string
	SyncMethod   SyncMethod
	RowCount     int64
}

func (self *Checkpoint) HasKey() bool {
	return self != nil && self.LastKeyValue != ""
}
