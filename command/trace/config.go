package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	"gopkg.in/yaml.v3"
)

// Config defines the trace run configuration params
type Config struct {
	Attributes    []string `json:"attributes" yaml:"attributes"`
	Sites         uint64   `json:"sites" yaml:"sites"`
	Objects       uint64   `json:"objects" yaml:"objects"`
	Cycles        uint64   `json:"cycles" yaml:"cycles"`
	SurvivorRatio uint64   `json:"survivor_ratio" yaml:"survivor_ratio"`
	Seed          int64    `json:"seed" yaml:"seed"`
	Label         string   `json:"label" yaml:"label"`
	DBPath        string   `json:"db_path" yaml:"db_path"`
	LogLevel      string   `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the default trace run configuration
func DefaultConfig() *Config {
	return &Config{
		Sites:         16,
		Objects:       512,
		Cycles:        8,
		SurvivorRatio: 25,
		LogLevel:      "INFO",
	}
}

// ReadConfigFile reads the config file from the specified path, builds a Config object
// and returns it.
//
// Supported file types: .json, .hcl, .yaml, .yml
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshalFunc func([]byte, interface{}) error

	switch {
	case strings.HasSuffix(path, ".hcl"):
		unmarshalFunc = hcl.Unmarshal
	case strings.HasSuffix(path, ".json"):
		unmarshalFunc = json.Unmarshal
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		unmarshalFunc = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("suffix of %s is neither hcl, json, yaml nor yml", path)
	}

	config := DefaultConfig()

	if err := unmarshalFunc(data, config); err != nil {
		return nil, err
	}

	return config, nil
}
