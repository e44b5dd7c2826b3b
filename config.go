package workset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Estimator names accepted by the YAML configuration.
const (
	estimatorChars  = "chars"
	estimatorTokens = "tokens"
)

// fileConfig is the YAML representation of an engine
// configuration.
type fileConfig struct {
	MaxSize              int      `yaml:"max_size"`
	PreserveInstructions bool     `yaml:"preserve_instructions"`
	Instructions         string   `yaml:"instructions"`
	ArchiveThreshold     *float64 `yaml:"archive_threshold"`
	CriticalCutoff       *float64 `yaml:"critical_cutoff"`
	Estimator            string   `yaml:"estimator"`
	Model                string   `yaml:"model"`
}

// ParseConfig decodes a YAML engine configuration:
//
//	max_size: 2000
//	preserve_instructions: true
//	instructions: |
//	  You are a careful assistant.
//	archive_threshold: 0.3
//	critical_cutoff: 0.9
//	estimator: tokens
//	model: gpt-4o
//
// estimator is "chars" (default) or "tokens"; "tokens"
// requires model. Returns an error for unknown estimators, a
// missing model, or a non-positive max_size — construction
// from a file validates eagerly so a typo does not surface as
// a panic deep in the host.
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if fc.MaxSize <= 0 {
		return Config{}, fmt.Errorf(
			"parse config: max_size must be > 0, got %d",
			fc.MaxSize,
		)
	}

	cfg := Config{
		MaxSize:              fc.MaxSize,
		PreserveInstructions: fc.PreserveInstructions,
		Instructions:         fc.Instructions,
	}
	if fc.ArchiveThreshold != nil {
		cfg.ArchiveThreshold = *fc.ArchiveThreshold
	}
	if fc.CriticalCutoff != nil {
		cfg.CriticalCutoff = *fc.CriticalCutoff
	}

	switch fc.Estimator {
	case "", estimatorChars:
		cfg.Estimator = NewCharEstimator()
	case estimatorTokens:
		if fc.Model == "" {
			return Config{}, fmt.Errorf(
				"parse config: estimator %q requires model",
				estimatorTokens,
			)
		}
		cfg.Estimator = NewTokenEstimator(fc.Model)
	default:
		return Config{}, fmt.Errorf(
			"parse config: unknown estimator %q", fc.Estimator,
		)
	}

	return cfg, nil
}

// LoadConfig reads path and decodes it with [ParseConfig].
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}
