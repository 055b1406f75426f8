package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CurrentVersion = 1
	DefaultPath    = "~/.erplens/erplens.yaml"
)

// Config is the top-level configuration.
type Config struct {
	Version    int              `yaml:"version"`
	Source     SourceConfig     `yaml:"source"`
	Staging    StagingConfig    `yaml:"staging,omitempty"`
	Extraction ExtractionConfig `yaml:"extraction,omitempty"`
	Migration  MigrationConfig  `yaml:"migration,omitempty"`
	Audit      AuditConfig      `yaml:"audit,omitempty"`
	Logging    LogConfig        `yaml:"logging,omitempty"`
}

// SourceConfig describes the analyzed ERP system and how to reach its
// staged snapshot.
type SourceConfig struct {
	// Mode is "mock" or "live".
	Mode string `yaml:"mode"`
	// DSN is the Postgres connection string for the staged snapshot
	// schema; required in live mode.
	DSN    string `yaml:"dsn,omitempty"`
	Schema string `yaml:"schema,omitempty"`
	// System descriptor.
	Family     string `yaml:"family"` // sap-ecc, sap-s4, oracle-ebs, dynamics-ax, jde
	Release    string `yaml:"release,omitempty"`
	Client     string `yaml:"client,omitempty"`
	FiscalFrom string `yaml:"fiscal_from,omitempty"`
	FiscalTo   string `yaml:"fiscal_to,omitempty"`
}

// StagingConfig defines the MongoDB staging store migration objects load
// into.
type StagingConfig struct {
	ConnectionString string `yaml:"connection_string"`
	Database         string `yaml:"database"`
}

// ExtractionConfig tunes the extraction orchestrator.
type ExtractionConfig struct {
	// Concurrency caps how many extractors run in parallel; 0 means
	// number of cores.
	Concurrency int    `yaml:"concurrency,omitempty"`
	RunDir      string `yaml:"run_dir,omitempty"` // default ~/.erplens/runs/
}

// MigrationConfig tunes the migration-object pipeline.
type MigrationConfig struct {
	DryRun bool   `yaml:"dry_run,omitempty"`
	User   string `yaml:"user,omitempty"`
}

// AuditConfig tunes the operation logger.
type AuditConfig struct {
	Retention int    `yaml:"retention,omitempty"` // in-memory window, default 1000
	Path      string `yaml:"path,omitempty"`      // chained store file
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level         string `yaml:"level,omitempty"`          // debug, info, warn, error
	Directory     string `yaml:"directory,omitempty"`      // default ~/.erplens/logs/
	RetentionDays int    `yaml:"retention_days,omitempty"` // default 30
}

// Load reads and parses the config file from the given path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentVersion)
	}

	if err := cfg.resolveSecrets(); err != nil {
		return nil, fmt.Errorf("resolving secrets: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the given path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Default returns a mock-mode configuration usable without a config file.
func Default() *Config {
	cfg := &Config{
		Version: CurrentVersion,
		Source:  SourceConfig{Mode: "mock", Family: "sap-ecc", Release: "6.0", Client: "100"},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Source.Mode == "" {
		c.Source.Mode = "mock"
	}
	if c.Source.Family == "" {
		c.Source.Family = "sap-ecc"
	}
	if c.Extraction.RunDir == "" {
		c.Extraction.RunDir = ExpandHome("~/.erplens/runs/")
	}
	if c.Audit.Retention == 0 {
		c.Audit.Retention = 1000
	}
	if c.Audit.Path == "" {
		c.Audit.Path = ExpandHome("~/.erplens/audit.yaml")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Directory == "" {
		c.Logging.Directory = ExpandHome("~/.erplens/logs/")
	}
	if c.Logging.RetentionDays == 0 {
		c.Logging.RetentionDays = 30
	}
}

func (c *Config) validate() error {
	switch c.Source.Mode {
	case "mock", "live":
	default:
		return fmt.Errorf("invalid source mode %q (expected mock or live)", c.Source.Mode)
	}
	if c.Source.Mode == "live" && c.Source.DSN == "" {
		return fmt.Errorf("live mode requires source.dsn")
	}
	return nil
}

var secretPattern = regexp.MustCompile(`\$\{(ENV|VAULT):([^}]+)\}`)

func (c *Config) resolveSecrets() error {
	var err error
	c.Source.DSN, err = ResolveValue(c.Source.DSN)
	if err != nil {
		return fmt.Errorf("source dsn: %w", err)
	}
	c.Staging.ConnectionString, err = ResolveValue(c.Staging.ConnectionString)
	if err != nil {
		return fmt.Errorf("staging connection string: %w", err)
	}
	return nil
}

// ResolveValue resolves secret references in a string value.
func ResolveValue(val string) (string, error) {
	matches := secretPattern.FindStringSubmatch(val)
	if matches == nil {
		return val, nil
	}

	provider := matches[1]
	ref := matches[2]

	switch provider {
	case "ENV":
		v := os.Getenv(ref)
		if v == "" {
			return "", fmt.Errorf("environment variable %s not set", ref)
		}
		return v, nil
	case "VAULT":
		return resolveVault(ref)
	default:
		return "", fmt.Errorf("unknown secrets provider: %s", provider)
	}
}

// ExpandHome expands ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
