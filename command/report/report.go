package report

import (
	"github.com/spf13/cobra"

	"github.com/objtrace/objtrace/command/helper"
	"github.com/objtrace/objtrace/command/report/list"
	"github.com/objtrace/objtrace/command/report/remove"
	"github.com/objtrace/objtrace/command/report/show"
)

func GetCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Top level command for interacting with stored reports. Only accepts subcommands.",
	}

	// Register the base report database flag
	helper.RegisterDBFlag(reportCmd)

	registerSubcommands(reportCmd)

	return reportCmd
}

func registerSubcommands(baseCmd *cobra.Command) {
	// report list
	baseCmd.AddCommand(list.GetCommand())

	// report show
	baseCmd.AddCommand(show.GetCommand())

	// report delete
	baseCmd.AddCommand(remove.GetCommand())
}
