package command

const (
	// DefaultReportDB is the report database file commands fall back to
	// when no --db flag is given
	DefaultReportDB = "./reports.db"
)

const (
	JSONOutputFlag = "json"
	DBFlag         = "db"
)
