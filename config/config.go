package config

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/phpuml/analyzer"
	"gopkg.in/yaml.v3"
)

// Config controls the analysis pipeline
type Config struct {
	OutputDir      string   `yaml:"outputDir"`      // Directory receiving .uml and image files
	PlantUMLJar    string   `yaml:"plantUMLJar"`    // Path to plantuml.jar
	Java           string   `yaml:"java"`           // Java executable
	Render         bool     `yaml:"render"`         // Whether to invoke the external renderer
	Builtins       []string `yaml:"builtins"`       // Extra call names that need no declaration
	HoistFunctions bool     `yaml:"hoistFunctions"` // Register top-level functions before the walk
	MaxCallDepth   int      `yaml:"maxCallDepth"`   // Maximum nested inline depth
	Concurrency    int      `yaml:"concurrency"`    // Files analysed in parallel in directory mode
	LogLevel       string   `yaml:"logLevel"`
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir:      "PlantUML_code",
		PlantUMLJar:    "jars/plantuml.jar",
		Java:           "java",
		Render:         true,
		HoistFunctions: true,
		MaxCallDepth:   analyzer.DefaultMaxCallDepth,
		Concurrency:    4,
		LogLevel:       "info",
	}
}

// Load reads a YAML config from URL, unset fields keep their defaults
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	cfg := DefaultConfig()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks field ranges
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("outputDir was empty")
	}
	if c.MaxCallDepth <= 0 {
		return fmt.Errorf("invalid maxCallDepth: %d", c.MaxCallDepth)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	return nil
}

// BuilderOptions maps the config onto activity builder options
func (c *Config) BuilderOptions() []analyzer.Option {
	return []analyzer.Option{
		analyzer.WithBuiltins(c.Builtins...),
		analyzer.WithHoisting(c.HoistFunctions),
		analyzer.WithMaxCallDepth(c.MaxCallDepth),
	}
}
