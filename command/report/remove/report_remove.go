package remove

import (
	"github.com/spf13/cobra"

	"github.com/objtrace/objtrace/command"
	"github.com/objtrace/objtrace/command/helper"
)

const (
	idFlag = "id"
)

var (
	params = &removeParams{}
)

type removeParams struct {
	id uint64
}

func GetCommand() *cobra.Command {
	reportRemoveCmd := &cobra.Command{
		Use:   "delete",
		Short: "Deletes a stored report",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}

	setFlags(reportRemoveCmd)

	return reportRemoveCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(
		&params.id,
		idFlag,
		0,
		"the id of the report to delete",
	)

	_ = cmd.MarkFlagRequired(idFlag)
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

	if err := store.Delete(params.id); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(&ReportDeleteResult{ID: params.id})
}
