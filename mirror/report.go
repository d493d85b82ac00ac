package mirror

import (
	"fmt"
	"strings"

	"syncData/model"
	"syncData/util"
)

const reportFields = "TableName, Status, Strategy, ExecuteSeconds, RowsSynced, RowCount, LastKeyValue, Message\n"

// WriteReport saves the run summary followed by one line per table, failed
// tables first.
func WriteReport(path string, metrics *model.RunMetrics) error {
	var failed, skipped, ok []*model.TableResult
	var failedNames []string
	for _, res := range metrics.Results {
		switch res.Status {
		case model.StatusOK:
			ok = append(ok, res)
		case model.StatusSkipped:
			skipped = append(skipped, res)
		default:
			failed = append(failed, res)
			failedNames = append(failedNames, res.TbName)
		}
	}

	text := "############################################ sync report ############################################\n"
	text += fmt.Sprintf("Start time        : %s\n", metrics.StartTime.Format("2006-01-02 15:04:05"))
	text += fmt.Sprintf("Elapsed           : %.2fs\n", metrics.Elapsed.Seconds())
	text += fmt.Sprintf("Source tables     : %d\n", metrics.TablesFound)
	text += fmt.Sprintf("Synced tables     : %d\n", metrics.TablesProcessed)
	text += fmt.Sprintf("Failed tables     : %d\n", metrics.TablesFailed)
	text += fmt.Sprintf("Skipped tables    : %d\n", metrics.TablesSkipped)
	text += fmt.Sprintf("Rows synced       : %d\n", metrics.RowsSynced)
	text += fmt.Sprintf("Failed table list : %s\n", strings.Join(failedNames, ", "))
	text += "#####################################################################################################\n"
	text += "Status   : ok-synced, failed-error (see Message), skipped-ignored or permission denied\n"
	text += "Strategy : full-table replaced, key_based-rows after the last checkpoint key appended\n"
	text += "RowCount : rows the mirror holds for the table after this run\n"
	text += "#####################################################################################################\n"
	text += reportFields
	for _, group := range [][]*model.TableResult{failed, skipped, ok} {
		for _, res := range group {
			text += fmt.Sprintf("%s, %s, %s, %d, %d, %d, %s, %s\n", res.TbName, res.Status, res.Strategy, res.ExecuteSeconds, res.RowsSynced, res.RowCount, res.LastKeyValue, res.Message)
		}
	}
	return util.WriteFile(path, text)
}
