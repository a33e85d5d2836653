package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/objtrace/objtrace/command/helper"
	"github.com/objtrace/objtrace/command/report"
	"github.com/objtrace/objtrace/command/trace"
	"github.com/objtrace/objtrace/command/version"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Short: "Objtrace is an allocation lifetime profiler for managed runtimes",
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		trace.GetCommand(),
		report.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
