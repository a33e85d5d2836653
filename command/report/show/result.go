package show

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/objtrace/objtrace/command/helper"
	"github.com/objtrace/objtrace/reportdb"
)

type ReportShowResult struct {
	Saved *reportdb.SavedReport `json:"report"`
}

func (r *ReportShowResult) GetOutput() string {
	var buffer bytes.Buffer

	report := r.Saved.Report

	buffer.WriteString("\n[REPORT]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("ID|%d", r.Saved.ID),
		fmt.Sprintf("Label|%s", r.Saved.Label),
		fmt.Sprintf("Created|%s", r.Saved.CreatedAt.Format(time.RFC3339)),
		fmt.Sprintf("Attributes|%s", strings.Join(report.Attributes, ", ")),
		fmt.Sprintf("Rows|%d", len(report.Rows)),
		fmt.Sprintf("Objects accounted|%d", report.TotalObjects()),
	}))

	if len(report.Rows) > 0 {
		buffer.WriteString("\n\n")
		buffer.WriteString(helper.FormatReportRows(report))
	}

	buffer.WriteString("\n")

	return buffer.String()
}
