// Package query is the public entry point for evaluating and analyzing
// structural pattern queries: engine construction from configuration, batch
// processing of query files, and match-set decoding.
package query

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/treescope/treescope/internal"
	"github.com/treescope/treescope/internal/analysis"
	tt "github.com/treescope/treescope/internal/types"
)

// QueryEngine is the engine surface the orchestration helpers and the CLI
// program against.
type QueryEngine interface {
	Evaluate(queryText string, matches []tt.StructuralMatch) *tt.Result
	Analyze(queryText string) analysis.Report
	Statistics(queries []string) analysis.Statistics
	IgnoreSuggestion(name string)
}

// Config is the on-disk engine configuration.
type Config struct {
	Name               string              `yaml:"name"`
	Weights            analysis.Weights    `yaml:"weights"`
	Thresholds         analysis.Thresholds `yaml:"thresholds"`
	IgnoredSuggestions []string            `yaml:"ignored-suggestions"`
}

// DefaultConfig returns the configuration the engine runs with when no file
// is present.
func DefaultConfig() Config {
	return Config{
		Name:       "treescope",
		Weights:    analysis.DefaultWeights(),
		Thresholds: analysis.DefaultThresholds(),
	}
}

// New builds an engine from the configuration file at configurationPath.
// An empty path or a missing file yields the default configuration; fields
// absent from the file keep their defaults.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	engine := internal.NewEngine(config.Weights, config.Thresholds)
	for _, name := range config.IgnoredSuggestions {
		engine.IgnoreSuggestion(name)
	}
	return engine, nil
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	config := DefaultConfig()
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	return config, nil
}
