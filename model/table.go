package model

import "strings"

// Row holds one source row positionally aligned with TableDescriptor.Columns.
// After normalization every value is nil or a string.
type Row []any

type Batch []Row

type TableDescriptor struct {
	Name       string   //lower-cased, used in the sink and the checkpoint table
	Columns    []string //lower-cased, order defines the projection
	PrimaryKey string   //first key column only, empty when the table has none

	SourceName    string //spelling on the source side
	SourceColumns []string
	SourceKey     string
}

func NewTableDescriptor(sourceName string, sourceColumns []string, sourceKey string) *TableDescriptor {
	t := &TableDescriptor{
		Name:          strings.ToLower(strings.TrimSpace(sourceName)),
		SourceName:    sourceName,
		SourceColumns: sourceColumns,
		SourceKey:     sourceKey,
		PrimaryKey:    strings.ToLower(strings.TrimSpace(sourceKey)),
	}
	t.Columns = make([]string, len(sourceColumns))
	for i, c := range sourceColumns {
		t.Columns[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return t
}

func (self *TableDescriptor) HasKey() bool {
	return self.KeyIndex() >= 0
}

// KeyIndex is the position of the primary key within Columns, -1 when absent.
func (self *TableDescriptor) KeyIndex() int {
	if self.PrimaryKey == "" {
		return -1
	}
	for i, c := range self.Columns {
		if c == self.PrimaryKey {
			return i
		}
	}
	return -1
}
