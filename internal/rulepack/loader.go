// Package rulepack loads the YAML detection configuration: custom rules,
// severity overrides, ignore globs, and the strict flag. Validation is
// all or nothing: a single bad rule rejects the whole pack before any
// scanning starts.
package rulepack

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CodeDeficient/KarpeSlop/internal/engine"
)

// Load reads and validates a detection config from path. Validation runs
// through engine.Build so every custom pattern is actually compiled; the
// returned config is known-good.
func Load(path string) (*engine.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule pack: %w", err)
	}
	return Parse(b)
}

// Parse validates raw YAML bytes into an engine.Config.
func Parse(b []byte) (*engine.Config, error) {
	var cfg engine.Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	// Dry-run build: rejects bad custom rules and overrides up front so a
	// malformed config never makes it halfway into a run.
	if _, err := engine.Build(&cfg); err != nil {
		return nil, fmt.Errorf("validate rule pack: %w", err)
	}
	return &cfg, nil
}
