package remove

import (
	"bytes"
	"fmt"

	"github.com/objtrace/objtrace/command/helper"
)

type ReportDeleteResult struct {
	ID uint64 `json:"id"`
}

func (r *ReportDeleteResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[REPORT DELETED]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("ID|%d", r.ID),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
