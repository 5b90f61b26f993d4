package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete configuration for the panel data tools.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Loader  LoaderConfig  `yaml:"loader" envconfig:"LOADER"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Store   StoreConfig   `yaml:"store" envconfig:"STORE"`
}

// LoggingConfig controls the slog handler installed at process start.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output stdout"`
}

// PathsConfig holds the directory layout. Relative entries resolve
// against the working directory; empty entries fall back to the
// defaults under DataDir.
type PathsConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	InDir   string `yaml:"in_dir" envconfig:"IN_DIR"`
	OutDir  string `yaml:"out_dir" envconfig:"OUT_DIR"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// LoaderConfig controls snapshot file ingestion.
type LoaderConfig struct {
	// DatePattern extracts the snapshot date token from file names; its
	// first capture group is parsed with DateLayout.
	DatePattern string `yaml:"date_pattern" envconfig:"DATE_PATTERN" validate:"required"`
	DateLayout  string `yaml:"date_layout" envconfig:"DATE_LAYOUT" validate:"required"`
	Sheet       string `yaml:"sheet" envconfig:"SHEET"`
	Workers     int    `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
}

// ExportConfig controls CSV and workbook output rendering.
type ExportConfig struct {
	Gzip      bool `yaml:"gzip" envconfig:"GZIP"`
	BOMPrefix bool `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// StoreConfig seeds container construction.
type StoreConfig struct {
	Tag string `yaml:"tag" envconfig:"TAG" validate:"required"`
}

// Load builds the configuration by layering sources: defaults, then the
// YAML file (the given path, or the first well-known location when
// empty), then PANEL_* environment variables, which take precedence.
// The merged result is validated before it is returned.
func Load(file string) (*Config, error) {
	cfg := Default()

	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		if err := loadFromFile(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", file, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Keys absent from the
// document keep their current values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile probes the well-known config file locations.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

func (c *Config) validate() error {
	return validator.New().Struct(c)
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/panel.log",
		},
		Paths: PathsConfig{
			DataDir: DefaultDataDir,
			LogsDir: DefaultLogsDir,
		},
		Loader: LoaderConfig{
			DatePattern: DefaultDatePattern,
			DateLayout:  DefaultDateLayout,
			Workers:     DefaultLoaderWorkers,
		},
		Store: StoreConfig{
			Tag: DefaultStoreTag,
		},
	}
}
