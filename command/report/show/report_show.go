package show

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/objtrace/objtrace/command"
	"github.com/objtrace/objtrace/command/helper"
	"github.com/objtrace/objtrace/reportdb"
)

const (
	idFlag    = "id"
	labelFlag = "label"
)

var (
	params = &showParams{}
)

var errIDOrLabelRequired = errors.New("either the report id or its label is required")

type showParams struct {
	id    uint64
	label string
}

func (p *showParams) validateFlags() error {
	if p.id == 0 && p.label == "" {
		return errIDOrLabelRequired
	}

	return nil
}

func GetCommand() *cobra.Command {
	reportShowCmd := &cobra.Command{
		Use:     "show",
		Short:   "Shows a single stored report",
		Args:    cobra.NoArgs,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(reportShowCmd)

	return reportShowCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(
		&params.id,
		idFlag,
		0,
		"the id of the report to show",
	)

	cmd.Flags().StringVar(
		&params.label,
		labelFlag,
		"",
		"the label of the report to show",
	)
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return params.validateFlags()
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

	saved, err := fetchReport(store)
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(&ReportShowResult{Saved: saved})
}

// fetchReport resolves the report by id when given, by label otherwise
func fetchReport(store *reportdb.Store) (*reportdb.SavedReport, error) {
	if params.id != 0 {
		return store.Get(params.id)
	}

	return store.GetByLabel(params.label)
}
