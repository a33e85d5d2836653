package trace

import (
	"bytes"
	"fmt"
	"time"

	"github.com/objtrace/objtrace/command/helper"
	"github.com/objtrace/objtrace/helper/common"
	"github.com/objtrace/objtrace/tracer"
)

const (
	durationPrecision = 5
)

type TraceResult struct {
	Label string `json:"label,omitempty"`
	Seed  int64  `json:"seed"`

	Cycles    uint64 `json:"cycles"`
	Allocated uint64 `json:"allocated"`
	Reclaimed uint64 `json:"reclaimed"`
	Drains    int    `json:"drains"`

	ExecTime float64 `json:"exec_time"`

	Attributes   []string     `json:"attributes"`
	Header       []string     `json:"header"`
	Rows         []tracer.Row `json:"rows"`
	TotalObjects uint64       `json:"total_objects"`

	SavedID uint64 `json:"saved_id,omitempty"`
	DBPath  string `json:"db_path,omitempty"`
}

func newTraceResult(
	report *tracer.Report,
	load *workload,
	p *traceParams,
	seed int64,
	drains int,
	duration time.Duration,
) *TraceResult {
	return &TraceResult{
		Label:        p.label,
		Seed:         seed,
		Cycles:       p.cycles,
		Allocated:    load.allocated,
		Reclaimed:    load.reclaimed,
		Drains:       drains,
		ExecTime:     common.ToFixedFloat(duration.Seconds(), durationPrecision),
		Attributes:   report.Attributes,
		Header:       report.Header(),
		Rows:         report.Rows,
		TotalObjects: report.TotalObjects(),
	}
}

func (r *TraceResult) GetOutput() string {
	buffer := new(bytes.Buffer)

	buffer.WriteString("\n=====[OBJECT TRACE]=====\n")

	r.writeWorkloadData(buffer)
	r.writeReportData(buffer)
	r.writePersistenceData(buffer)

	buffer.WriteString("\n")

	return buffer.String()
}

func (r *TraceResult) writeWorkloadData(buffer *bytes.Buffer) {
	buffer.WriteString("\n[WORKLOAD]\n")

	workloadData := []string{
		fmt.Sprintf("Seed|%d", r.Seed),
		fmt.Sprintf("Collection cycles|%d", r.Cycles),
		fmt.Sprintf("Objects allocated|%d", r.Allocated),
		fmt.Sprintf("Objects reclaimed|%d", r.Reclaimed),
		fmt.Sprintf("Drains completed|%d", r.Drains),
		fmt.Sprintf("Execution time|%fs", r.ExecTime),
	}

	if r.Label != "" {
		workloadData = append([]string{fmt.Sprintf("Label|%s", r.Label)}, workloadData...)
	}

	buffer.WriteString(helper.FormatKV(workloadData))
}

func (r *TraceResult) writeReportData(buffer *bytes.Buffer) {
	buffer.WriteString("\n\n[LIFETIME REPORT]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Report rows|%d", len(r.Rows)),
		fmt.Sprintf("Objects accounted|%d", r.TotalObjects),
	}))

	if len(r.Rows) == 0 {
		return
	}

	buffer.WriteString("\n\n")
	buffer.WriteString(helper.FormatReportRows(&tracer.Report{
		Attributes: r.Attributes,
		Rows:       r.Rows,
	}))
}

func (r *TraceResult) writePersistenceData(buffer *bytes.Buffer) {
	if r.DBPath == "" {
		return
	}

	buffer.WriteString("\n\n[PERSISTENCE]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Report id|%d", r.SavedID),
		fmt.Sprintf("Database|%s", r.DBPath),
	}))
}
