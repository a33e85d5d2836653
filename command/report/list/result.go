package list

import (
	"bytes"
	"fmt"
	"time"

	"github.com/objtrace/objtrace/command/helper"
	"github.com/objtrace/objtrace/reportdb"
)

type ReportSummary struct {
	ID        uint64    `json:"id"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Rows      int       `json:"rows"`
	Objects   uint64    `json:"objects"`
}

type ReportListResult struct {
	Reports []ReportSummary `json:"reports"`
}

func newReportListResult(saved []*reportdb.SavedReport) *ReportListResult {
	summaries := make([]ReportSummary, len(saved))

	for i, report := range saved {
		summaries[i] = ReportSummary{
			ID:        report.ID,
			Label:     report.Label,
			CreatedAt: report.CreatedAt,
			Rows:      len(report.Report.Rows),
			Objects:   report.Report.TotalObjects(),
		}
	}

	return &ReportListResult{Reports: summaries}
}

func (r *ReportListResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[REPORTS LIST]\n")

	if len(r.Reports) == 0 {
		buffer.WriteString("No reports found")
	} else {
		buffer.WriteString(fmt.Sprintf("Number of reports: %d\n\n", len(r.Reports)))

		rows := make([]string, len(r.Reports)+1)
		rows[0] = "ID|LABEL|CREATED|ROWS|OBJECTS"

		for i, summary := range r.Reports {
			rows[i+1] = fmt.Sprintf("%d|%s|%s|%d|%d",
				summary.ID,
				summary.Label,
				summary.CreatedAt.Format(time.RFC3339),
				summary.Rows,
				summary.Objects,
			)
		}

		buffer.WriteString(helper.FormatList(rows))
	}

	buffer.WriteString("\n")

	return buffer.String()
}
