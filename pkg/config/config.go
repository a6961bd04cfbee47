package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/asieldev/G2Crowd-Scraper/pkg/extract"
)

// Config holds all the settings for a scrape run.
type Config struct {
	URLs       []string
	OutputBase string
	Headless   bool
	Timeout    time.Duration
	WaitTime   time.Duration
	UserAgent  string
	ExecPath   string
	Verbose    bool
	Selectors  []extract.FieldSelector
}

// fileConfig is the YAML shape of the optional config file. Durations are
// expressed in seconds.
type fileConfig struct {
	URLs           []string                `yaml:"urls"`
	Output         string                  `yaml:"output"`
	Headless       *bool                   `yaml:"headless"`
	TimeoutSeconds int                     `yaml:"timeout_seconds"`
	WaitSeconds    int                     `yaml:"wait_seconds"`
	UserAgent      string                  `yaml:"user_agent"`
	ExecPath       string                  `yaml:"exec_path"`
	Verbose        *bool                   `yaml:"verbose"`
	Selectors      []extract.FieldSelector `yaml:"selectors"`
}

// Default returns the configuration the original scrape targets: a single G2
// product page written to g2_data.csv / g2_data.json.
func Default() Config {
	return Config{
		URLs:       []string{"https://www.g2.com/products/conductor/features"},
		OutputBase: "g2_data",
		Headless:   true,
		Timeout:    30 * time.Second,
		WaitTime:   2 * time.Second,
		Selectors:  extract.DefaultSelectors(),
	}
}

// Load reads a YAML config file and overlays it on the defaults. Absent keys
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if len(fc.URLs) > 0 {
		cfg.URLs = fc.URLs
	}
	if fc.Output != "" {
		cfg.OutputBase = fc.Output
	}
	if fc.Headless != nil {
		cfg.Headless = *fc.Headless
	}
	if fc.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
	}
	if fc.WaitSeconds > 0 {
		cfg.WaitTime = time.Duration(fc.WaitSeconds) * time.Second
	}
	if fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if fc.ExecPath != "" {
		cfg.ExecPath = fc.ExecPath
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if len(fc.Selectors) > 0 {
		cfg.Selectors = fc.Selectors
	}

	return cfg, nil
}

// Validate checks the configuration before a run starts.
func (c *Config) Validate() error {
	if len(c.URLs) == 0 {
		return errors.New("no URLs to scrape")
	}
	if c.OutputBase == "" {
		return errors.New("output base path is empty")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if len(c.Selectors) == 0 {
		return errors.New("selector table is empty")
	}
	for _, fs := range c.Selectors {
		if fs.Name == "" || fs.Query == "" {
			return fmt.Errorf("selector %+v is missing a name or query", fs)
		}
	}
	return nil
}
