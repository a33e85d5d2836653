package command

import (
	"encoding/json"
	"fmt"
	"os"
)

// CLIOutput renders results in their human readable form
type CLIOutput struct {
	commonOutputFormatter
}

func newCLIOutput() *CLIOutput {
	return &CLIOutput{}
}

func (cli *CLIOutput) WriteOutput() {
	if cli.errorOutput != nil {
		_, _ = fmt.Fprintln(os.Stderr, cli.getErrorOutput())

		return
	}

	_, _ = fmt.Fprintln(os.Stdout, cli.getCommandOutput())
}

func (cli *CLIOutput) getErrorOutput() string {
	return cli.errorOutput.Error()
}

func (cli *CLIOutput) getCommandOutput() string {
	return cli.commandOutput.GetOutput()
}

// JSONOutput renders results as single line JSON objects
type JSONOutput struct {
	commonOutputFormatter
}

func newJSONOutput() *JSONOutput {
	return &JSONOutput{}
}

func (jo *JSONOutput) WriteOutput() {
	if jo.errorOutput != nil {
		_, _ = fmt.Fprintln(os.Stderr, jo.getErrorOutput())

		return
	}

	_, _ = fmt.Fprintln(os.Stdout, jo.getCommandOutput())
}

func (jo *JSONOutput) getErrorOutput() string {
	return marshalJSONToString(
		struct {
			Err string `json:"error"`
		}{
			Err: jo.errorOutput.Error(),
		},
	)
}

func (jo *JSONOutput) getCommandOutput() string {
	return marshalJSONToString(jo.commandOutput)
}

func marshalJSONToString(input interface{}) string {
	raw, err := json.Marshal(input)
	if err != nil {
		return err.Error()
	}

	return string(raw)
}
