package trace

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const (
	configFlag        = "config"
	attributesFlag    = "attributes"
	sitesFlag         = "sites"
	objectsFlag       = "objects"
	cyclesFlag        = "cycles"
	survivorRatioFlag = "survivor-ratio"
	seedFlag          = "seed"
	labelFlag         = "label"
	dbFlag            = "db"
	logLevelFlag      = "log-level"
)

var (
	params = &traceParams{}
)

var (
	errNoCycles             = errors.New("at least one collection cycle is required")
	errNoObjects            = errors.New("at least one object per cycle is required")
	errNoSites              = errors.New("at least one allocation site is required")
	errInvalidSurvivorRatio = errors.New("survivor ratio must be a percentage between 0 and 100")
	errInvalidLogLevel      = errors.New("invalid log level")
)

type traceParams struct {
	configPath string

	attributes    []string
	sites         uint64
	objects       uint64
	cycles        uint64
	survivorRatio uint64
	seed          int64

	label  string
	dbPath string

	logLevelRaw string
	logLevel    hclog.Level
}

// initConfigFromFile overlays the config file values onto the params.
// Flags given on the command line keep precedence over the file.
func (p *traceParams) initConfigFromFile(cmd *cobra.Command) error {
	if p.configPath == "" {
		return nil
	}

	config, err := ReadConfigFile(p.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if !flags.Changed(attributesFlag) && len(config.Attributes) > 0 {
		p.attributes = config.Attributes
	}

	if !flags.Changed(sitesFlag) {
		p.sites = config.Sites
	}

	if !flags.Changed(objectsFlag) {
		p.objects = config.Objects
	}

	if !flags.Changed(cyclesFlag) {
		p.cycles = config.Cycles
	}

	if !flags.Changed(survivorRatioFlag) {
		p.survivorRatio = config.SurvivorRatio
	}

	if !flags.Changed(seedFlag) {
		p.seed = config.Seed
	}

	if !flags.Changed(labelFlag) && config.Label != "" {
		p.label = config.Label
	}

	if !flags.Changed(dbFlag) && config.DBPath != "" {
		p.dbPath = config.DBPath
	}

	if !flags.Changed(logLevelFlag) && config.LogLevel != "" {
		p.logLevelRaw = config.LogLevel
	}

	return nil
}

func (p *traceParams) validateFlags() error {
	if p.cycles == 0 {
		return errNoCycles
	}

	if p.objects == 0 {
		return errNoObjects
	}

	if p.sites == 0 {
		return errNoSites
	}

	if p.survivorRatio > 100 {
		return errInvalidSurvivorRatio
	}

	return nil
}

func (p *traceParams) initLogLevel() error {
	level := hclog.LevelFromString(p.logLevelRaw)
	if level == hclog.NoLevel {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, p.logLevelRaw)
	}

	p.logLevel = level

	return nil
}

func (p *traceParams) newLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "objtrace",
		Level: p.logLevel,
	})
}
