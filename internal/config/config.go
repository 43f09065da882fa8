// Package config loads the optional project configuration file
// .plankeep.yaml from the project root. A missing file is not an error —
// every field has a default, and most projects never need the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/plankeep/plankeep/internal/plan"
	"github.com/plankeep/plankeep/internal/session"
)

// FileName is the configuration file looked up at the project root.
const FileName = ".plankeep.yaml"

// Config is the project configuration.
type Config struct {
	// SessionsDir is the context directory name, ".ai-context" by default.
	SessionsDir string `yaml:"sessions_dir"`

	// FuzzyThreshold is the minimum similarity for plan-item suggestions.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`

	// Quality lists the commands `plankeep check` runs, in order.
	Quality QualityConfig `yaml:"quality"`
}

// QualityConfig holds the quality-gate commands. Each entry is a full
// command line executed via the shell-less exec path (argv form).
type QualityConfig struct {
	Format []string `yaml:"format"`
	Lint   []string `yaml:"lint"`
	Test   []string `yaml:"test"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		SessionsDir:    session.DefaultContextDir,
		FuzzyThreshold: plan.DefaultThreshold,
		Quality: QualityConfig{
			Format: []string{"gofmt", "-l", "."},
			Lint:   []string{"go", "vet", "./..."},
			Test:   []string{"go", "test", "./..."},
		},
	}
}

// Load reads .plankeep.yaml from root, applying defaults for absent
// fields. A missing file yields the defaults; a malformed file is an
// error (silently ignoring a typo'd config hides real mistakes).
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Re-apply defaults for fields set to zero values.
	if cfg.SessionsDir == "" {
		cfg.SessionsDir = session.DefaultContextDir
	}
	if cfg.FuzzyThreshold <= 0 || cfg.FuzzyThreshold > 1 {
		cfg.FuzzyThreshold = plan.DefaultThreshold
	}
	return cfg, nil
}
