// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for plenum configuration.
	DefaultConfigDir = ".plenum"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default registry database file name.
	DefaultDatabaseFile = "plenum.db"
)

// Export targets.
const (
	TargetFilesystem = "fs"
	TargetS3         = "s3"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
	S3     S3Config     `yaml:"s3,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite member registry.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// When empty, SQLitePath computes it from the project directory.
	Path string `yaml:"path,omitempty"`
}

// ExportConfig controls where and how the static tree is written.
type ExportConfig struct {
	Dir     string `yaml:"dir,omitempty"`      // Output directory for the fs target
	BaseURI string `yaml:"base_uri,omitempty"` // Prefix of every URI in the tree
	Target  string `yaml:"target,omitempty"`   // "fs" or "s3"
}

// S3Config holds configuration for publishing the tree to S3.
type S3Config struct {
	Bucket   string `yaml:"bucket,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"` // Optional custom endpoint (MinIO, LocalStack)
	Prefix   string `yaml:"prefix,omitempty"`   // Optional key prefix
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text or json
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Dir:     "public",
			BaseURI: "/",
			Target:  TargetFilesystem,
		},
		S3: S3Config{
			Region: "eu-west-1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the .plenum directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'plenum init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PLENUM_BASE_URI"); v != "" {
		c.Export.BaseURI = v
	}
	if v := os.Getenv("PLENUM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PLENUM_S3_BUCKET"); v != "" {
		c.S3.Bucket = v
	}
}

// Validate checks option values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Export.Target {
	case TargetFilesystem:
	case TargetS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("export target %q requires s3.bucket", TargetS3)
		}
	default:
		return fmt.Errorf("invalid export target %q (valid: %s, %s)", c.Export.Target, TargetFilesystem, TargetS3)
	}
	return nil
}

// ConfigDir returns the path to the .plenum config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// SQLitePath returns the registry database path for the project in basePath.
// A configured relative path is taken relative to basePath.
func (c *Config) SQLitePath(basePath string) string {
	switch {
	case c.SQLite.Path == "":
		return filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)
	case filepath.IsAbs(c.SQLite.Path):
		return c.SQLite.Path
	default:
		return filepath.Join(basePath, c.SQLite.Path)
	}
}

// ExportDir returns the output directory for the filesystem target.
func (c *Config) ExportDir(basePath string) string {
	if filepath.IsAbs(c.Export.Dir) {
		return c.Export.Dir
	}
	return filepath.Join(basePath, c.Export.Dir)
}
