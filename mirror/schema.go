package mirror

import (
	"context"
	"strings"

	"syncData/model"
)

// Reconciler makes the sink table hold at least the source's columns.
// Columns are only ever added, as nullable text.
type Reconciler struct {
	sink   model.Sink
	logger model.Logger
}

func NewReconciler(sink model.Sink, logger model.Logger) *Reconciler {
	return &Reconciler{sink: sink, logger: logger}
}

func (self *Reconciler) Reconcile(ctx context.Context, table *model.TableDescriptor) error {
	existing, exists, err := self.sink.TableColumns(ctx, table.Name)
	if err != nil {
		return err
	}
	if !exists {
		self.logger.Infof("[%s] create table with %d columns", table.Name, len(table.Columns))
		return self.sink.CreateTable(ctx, table.Name, table.Columns)
	}

	missing := missingColumns(table.Columns, existing)
	if len(missing) == 0 {
		return nil
	}
	self.logger.Infof("[%s] add columns: %s", table.Name, strings.Join(missing, ", "))
	return self.sink.AddColumns(ctx, table.Name, missing)
}

// missingColumns returns source columns absent from the sink, compared
// case-insensitively, in source order.
func missingColumns(source, sink []string) []string {
	have := make(map[string]struct{}, len(sink))
	for _, c := range sink {
		have[strings.ToLower(c)] = struct{}{}
	}
	var missing []string
	for _, c := range source {
		if _, ok := have[strings.ToLower(c)]; !ok {
			missing = append(missing, c)
			have[strings.ToLower(c)] = struct{}{}
		}
	}
	return missing
}
