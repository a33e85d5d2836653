package tracer

import (
	"sort"

	"github.com/objtrace/objtrace/types"
)

// statNames are the statistic columns of every report, in output order
var statNames = []string{"count", "total_age", "min_age", "max_age"}

// Row is one aggregate row: the attribute values identifying a group of
// freed objects plus their accumulated lifetime statistics. Attribute
// fields not named in the parent report's Attributes keep zero values.
type Row struct {
	Path      string        `json:"path"`
	Line      int           `json:"line"`
	Tag       types.TypeTag `json:"type"`
	ClassPath string        `json:"class"`

	Count    uint64 `json:"count"`
	TotalAge uint64 `json:"total_age"`
	MinAge   uint64 `json:"min_age"`
	MaxAge   uint64 `json:"max_age"`
}

// Report is the materialized result of one tracing session
type Report struct {
	// Attributes are the configured grouping attribute names,
	// in key slot order
	Attributes []string `json:"attributes"`

	// Rows are ordered by count descending, ties broken by
	// attribute values
	Rows []Row `json:"rows"`
}

// Header returns the column names of the report's rows: the grouping
// attributes followed by the statistic names
func (r *Report) Header() []string {
	header := make([]string, 0, len(r.Attributes)+len(statNames))
	header = append(header, r.Attributes...)
	header = append(header, statNames...)

	return header
}

// TotalObjects returns the number of object lifetimes accounted for
// across all rows
func (r *Report) TotalObjects() uint64 {
	var total uint64

	for _, row := range r.Rows {
		total += row.Count
	}

	return total
}

// sortRows orders rows by count descending, breaking ties by attribute
// values so reports are deterministic
func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		if a.Count != b.Count {
			return a.Count > b.Count
		}

		if a.Path != b.Path {
			return a.Path < b.Path
		}

		if a.Line != b.Line {
			return a.Line < b.Line
		}

		if a.Tag != b.Tag {
			return a.Tag < b.Tag
		}

		return a.ClassPath < b.ClassPath
	})
}
