// Package config loads the YAML configuration shared by the command line
// tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/knn-digits/index"
)

// Config represents the global configuration.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`
	Data       DataConfig       `yaml:"data"`
	Store      StoreConfig      `yaml:"store"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type ClassifierConfig struct {
	K             int    `yaml:"k"`
	Classes       int    `yaml:"classes"`
	Index         string `yaml:"index"`
	Parallelism   int    `yaml:"parallelism"`
	ProgressEvery int    `yaml:"progress_every"`
}

type DataConfig struct {
	TrainPath    string  `yaml:"train_path"`
	TestPath     string  `yaml:"test_path"`
	OutputPath   string  `yaml:"output_path"`
	TrainingSize int     `yaml:"training_size"`
	Seed         int64   `yaml:"seed"`
	Scale        float32 `yaml:"scale"`
}

// StoreConfig selects the optional SQLite database. An empty DSN disables it.
type StoreConfig struct {
	DSN     string `yaml:"dsn"`
	Dataset string `yaml:"dataset"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds the Prometheus listen address. Empty disables serving.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			K:             3,
			Classes:       10,
			Index:         string(index.KindBruteForce),
			ProgressEvery: 1000,
		},
		Data: DataConfig{
			TrainPath:    "data/train.csv",
			TestPath:     "data/test.csv",
			OutputPath:   "data/output.csv",
			TrainingSize: 28000,
			Seed:         1,
			Scale:        255,
		},
		Store: StoreConfig{
			Dataset: "digits",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from the specified file path. Fields absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Classifier.K <= 0 {
		return fmt.Errorf("config: classifier.k must be positive, got %d", c.Classifier.K)
	}
	if c.Classifier.Classes <= 0 {
		return fmt.Errorf("config: classifier.classes must be positive, got %d", c.Classifier.Classes)
	}
	if c.Classifier.Parallelism < 0 {
		return fmt.Errorf("config: classifier.parallelism must not be negative, got %d", c.Classifier.Parallelism)
	}
	if c.Classifier.ProgressEvery < 0 {
		return fmt.Errorf("config: classifier.progress_every must not be negative, got %d", c.Classifier.ProgressEvery)
	}
	if _, err := index.ParseKind(c.Classifier.Index); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Data.TrainingSize < 0 {
		return fmt.Errorf("config: data.training_size must not be negative, got %d", c.Data.TrainingSize)
	}
	if c.Data.Scale <= 0 {
		return fmt.Errorf("config: data.scale must be positive, got %v", c.Data.Scale)
	}
	return nil
}
