package list

import (
	"github.com/spf13/cobra"

	"github.com/objtrace/objtrace/command"
	"github.com/objtrace/objtrace/command/helper"
)

func GetCommand() *cobra.Command {
	reportListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists the stored reports",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}

	return reportListCmd
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	store, err := helper.OpenStore(cmd)
	if err != nil {
		outputter.SetError(err)

		return
	}
	defer store.Close()

	saved, err := store.List()
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(newReportListResult(saved))
}
