package trace

import (
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/objtrace/objtrace/command"
	"github.com/objtrace/objtrace/host"
	"github.com/objtrace/objtrace/reportdb"
	"github.com/objtrace/objtrace/tracer"
)

func GetCommand() *cobra.Command {
	traceCmd := &cobra.Command{
		Use:     "trace",
		Short:   "Runs a synthetic allocation workload under the tracer and prints the lifetime report",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(traceCmd)

	return traceCmd
}

func setFlags(cmd *cobra.Command) {
	defaults := DefaultConfig()

	cmd.Flags().StringVar(
		&params.configPath,
		configFlag,
		"",
		"the path to the trace configuration file (supports .json, .hcl, .yaml, .yml)",
	)

	cmd.Flags().StringArrayVar(
		&params.attributes,
		attributesFlag,
		nil,
		"the attributes grouping the report rows (path, line, type, class)",
	)

	cmd.Flags().Uint64Var(
		&params.sites,
		sitesFlag,
		defaults.Sites,
		"the number of distinct allocation sites in the workload",
	)

	cmd.Flags().Uint64Var(
		&params.objects,
		objectsFlag,
		defaults.Objects,
		"the number of objects allocated per collection cycle",
	)

	cmd.Flags().Uint64Var(
		&params.cycles,
		cyclesFlag,
		defaults.Cycles,
		"the number of collection cycles to run",
	)

	cmd.Flags().Uint64Var(
		&params.survivorRatio,
		survivorRatioFlag,
		defaults.SurvivorRatio,
		"the percentage of objects surviving each collection cycle",
	)

	cmd.Flags().Int64Var(
		&params.seed,
		seedFlag,
		defaults.Seed,
		"the workload randomness seed (0 picks a time based seed)",
	)

	cmd.Flags().StringVar(
		&params.label,
		labelFlag,
		"",
		"the label the report is stored under",
	)

	cmd.Flags().StringVar(
		&params.dbPath,
		dbFlag,
		"",
		"the report database path, the report is not persisted when empty",
	)

	cmd.Flags().StringVar(
		&params.logLevelRaw,
		logLevelFlag,
		defaults.LogLevel,
		"the log level for console output",
	)
}

func runPreRun(cmd *cobra.Command, _ []string) error {
	if err := params.initConfigFromFile(cmd); err != nil {
		return err
	}

	if err := params.validateFlags(); err != nil {
		return err
	}

	return params.initLogLevel()
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	result, err := runTrace(params)
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(result)
}

func runTrace(p *traceParams) (*TraceResult, error) {
	logger := p.newLogger()
	runtime := host.NewSimRuntime()

	tr, err := tracer.NewTracer(logger, runtime, &tracer.Config{
		Attributes: p.attributes,
	})
	if err != nil {
		return nil, err
	}
	defer tr.Close()

	subscription := tr.Subscribe(tracer.DrainCompleted, tracer.SnapshotTaken)
	drainsCh := make(chan int, 1)

	// SnapshotTaken is the final event of a session, so the counter is
	// complete once it arrives
	go func() {
		drains := 0

		for event := range subscription.EventCh {
			if event.Type == tracer.DrainCompleted {
				drains++

				continue
			}

			if event.Type == tracer.SnapshotTaken {
				break
			}
		}

		drainsCh <- drains
	}()

	seed := p.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	load := newWorkload(runtime, seed, p)
	start := time.Now()

	report, err := tr.Trace(func() error {
		for cycle := uint64(0); cycle < p.cycles; cycle++ {
			load.runCycle()
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)

	drains := <-drainsCh
	tr.Unsubscribe(subscription.SubscriptionID)

	result := newTraceResult(report, load, p, seed, drains, duration)

	if p.dbPath != "" {
		if err := persistReport(p, logger, result, report); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func persistReport(
	p *traceParams,
	logger hclog.Logger,
	result *TraceResult,
	report *tracer.Report,
) error {
	store, err := reportdb.New(p.dbPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Insert(p.label, report)
	if err != nil {
		return err
	}

	result.SavedID = id
	result.DBPath = p.dbPath

	return nil
}
