package helper

import (
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/objtrace/objtrace/command"
)

// RegisterJSONOutputFlag registers the --json output setting for all
// child commands
func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		command.JSONOutputFlag,
		false,
		"get all outputs in json format (default false)",
	)
}

// RegisterDBFlag registers the report database path setting for all
// child commands
func RegisterDBFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		command.DBFlag,
		command.DefaultReportDB,
		"the path to the report database",
	)
}

// GetDBPath extracts the report database path from the command flags
func GetDBPath(cmd *cobra.Command) string {
	return cmd.Flag(command.DBFlag).Value.String()
}

// OUTPUT FORMATTING //

// FormatList formats a list, using a specific blank value replacement
func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

// FormatKV formats key value pairs:
//
// Key = Value
//
// Key = <none>
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}
