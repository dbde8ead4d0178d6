package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// maxDeleteDelayMS caps pacing so a typo cannot stall a run indefinitely.
const maxDeleteDelayMS = 10000

type LoggingCfg struct {
	File         string `yaml:"file" json:"file"`                   // log file path, "" disables file logging
	RotationDays int    `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type MetricsCfg struct {
	TextfileDir string `yaml:"textfile_dir" json:"textfile_dir"` // node_exporter textfile collector directory, "" disables export
}

type PacingCfg struct {
	DeleteDelayMS int `yaml:"delete_delay_ms" json:"delete_delay_ms"` // Pause between removals in milliseconds
}

// Config carries infrastructure settings only. Which directories qualify for
// deletion is fixed policy and is not configurable.
type Config struct {
	DatabasePath string     `yaml:"database_path" json:"database_path"` // SQLite deletion history, "" disables recording
	Logging      LoggingCfg `yaml:"logging" json:"logging"`
	Metrics      MetricsCfg `yaml:"metrics" json:"metrics"`
	Pacing       PacingCfg  `yaml:"pacing" json:"pacing"`
}

var (
	errInvalidPath      = errors.New("path must be absolute")
	errNegativeRotation = errors.New("logging.rotation_days cannot be negative")
	errNegativeDelay    = errors.New("pacing.delete_delay_ms cannot be negative")
)

// Default returns the configuration used when no config file is given:
// no history database, no log file, no metrics export, no pacing.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.validateAndDefault(); err != nil {
		// an empty config always validates
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// an empty file means all defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if c.Logging.RotationDays < 0 {
		return errNegativeRotation
	}
	if c.Logging.RotationDays == 0 {
		c.Logging.RotationDays = 30 // Default: keep logs for 30 days
	}

	if c.Pacing.DeleteDelayMS < 0 {
		return errNegativeDelay
	}
	if c.Pacing.DeleteDelayMS > maxDeleteDelayMS {
		c.Pacing.DeleteDelayMS = maxDeleteDelayMS
	}

	// configured paths must be absolute so behavior does not depend on the
	// directory the tool happens to run from
	for _, p := range []*string{&c.DatabasePath, &c.Logging.File, &c.Metrics.TextfileDir} {
		if *p == "" {
			continue
		}
		cp, err := cleanAbsolute(*p)
		if err != nil {
			return err
		}
		*p = cp
	}

	return nil
}

func cleanAbsolute(p string) (string, error) {
	cp := filepath.Clean(p)
	if !filepath.IsAbs(cp) {
		return "", fmt.Errorf("%w: %s", errInvalidPath, p)
	}
	return cp, nil
}

// DeleteDelay returns the configured pause between removals.
func (c *Config) DeleteDelay() time.Duration {
	return time.Duration(c.Pacing.DeleteDelayMS) * time.Millisecond
}
