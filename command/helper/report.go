package helper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/objtrace/objtrace/helper/common"
	"github.com/objtrace/objtrace/reportdb"
	"github.com/objtrace/objtrace/tracer"
)

// ErrDBNotFound is returned when the report database the command points
// at does not exist
var ErrDBNotFound = errors.New("report database not found")

// OpenStore opens the report database the command points at, refusing
// to create a fresh one at a path with nothing behind it
func OpenStore(cmd *cobra.Command) (*reportdb.Store, error) {
	dbPath := GetDBPath(cmd)

	if !common.FileExists(dbPath) {
		return nil, fmt.Errorf("%w: %s", ErrDBNotFound, dbPath)
	}

	return reportdb.New(dbPath, hclog.NewNullLogger())
}

// FormatReportRows renders the report rows as aligned columns, the
// header line first
func FormatReportRows(report *tracer.Report) string {
	rows := make([]string, 0, len(report.Rows)+1)
	rows = append(rows, strings.Join(report.Header(), "|"))

	for _, row := range report.Rows {
		rows = append(rows, formatReportRow(report.Attributes, row))
	}

	return FormatList(rows)
}

// formatReportRow renders the row's configured attribute cells followed
// by its statistics
func formatReportRow(attributes []string, row tracer.Row) string {
	cells := make([]string, 0, len(attributes)+4)

	for _, attr := range attributes {
		switch attr {
		case tracer.AttrPath:
			cells = append(cells, row.Path)
		case tracer.AttrLine:
			cells = append(cells, strconv.Itoa(row.Line))
		case tracer.AttrType:
			cells = append(cells, row.Tag.String())
		case tracer.AttrClass:
			cells = append(cells, row.ClassPath)
		}
	}

	cells = append(cells,
		strconv.FormatUint(row.Count, 10),
		strconv.FormatUint(row.TotalAge, 10),
		strconv.FormatUint(row.MinAge, 10),
		strconv.FormatUint(row.MaxAge, 10),
	)

	return strings.Join(cells, "|")
}
