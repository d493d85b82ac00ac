package model

import (
	"fmt"
	"time"
)

const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

type TableResult struct {
	TbName         string
	Strategy       string
	Status         string
	Message        string
	RowsSynced     int64
	RowCount       int64
	LastKeyValue   string
	ExecuteSeconds int
	Err            error //*SyncError when the table failed or was skipped on error
}

func (self *TableResult) GetLog() string {
	return fmt.Sprintf("[%s] [Status:%s Strategy:%s RowsSynced:%d RowCount:%d LastKey:%s Seconds:%d]", self.TbName, self.Status, self.Strategy, self.RowsSynced, self.RowCount, self.LastKeyValue, self.ExecuteSeconds)
}

type RunMetrics struct {
	TablesFound     int
	TablesProcessed int
	TablesFailed    int
	TablesSkipped   int
	RowsSynced      int64
	StartTime       time.Time
	Elapsed         time.Duration
	Results         []*TableResult
}

func (self *RunMetrics) Add(res *TableResult) {
	self.Results = append(self.Results, res)
	switch res.Status {
	case StatusOK:
		self.TablesProcessed++
		self.RowsSynced += res.RowsSynced
	case StatusSkipped:
		self.TablesSkipped++
	default:
		self.TablesFailed++
	}
}

func (self *RunMetrics) GetLog() string {
	return fmt.Sprintf("[Tables:%d Processed:%d Failed:%d Skipped:%d RowsSynced:%d Elapsed:%.2fs]", self.TablesFound, self.TablesProcessed, self.TablesFailed, self.TablesSkipped, self.RowsSynced, self.Elapsed.Seconds())
}
