package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"portfolio/internal/logging"
	"portfolio/pkg/fileops"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "portfolio" // application name used for config directory

// Environment variables consulted by ApplyEnv.
const (
	EnvConfigPath = "PORTFOLIO_CONFIG_PATH"
	EnvDataPath   = "DATA_PATH"
	EnvLogLevel   = "PORTFOLIO_LOG_LEVEL"
)

// DefaultDataPath is the first candidate when no data path is configured.
const DefaultDataPath = "/app/db/portfolio-data/ai-portfolio.json"

// dataRelPath is the data file location relative to a deployment root.
var dataRelPath = filepath.Join("db", "portfolio-data", "ai-portfolio.json")

// Config holds user configuration for the portfolio server.
type Config struct {
	// DataPath is an explicit data file. It is probed before the built-in locations.
	DataPath        string       `yaml:"data_path,omitempty"`
	LogLevel        string       `yaml:"log_level,omitempty"`
	MaxDataFileSize int64        `yaml:"max_data_file_size,omitempty"` // bytes
	Server          ServerConfig `yaml:"server"`
}

// ServerConfig describes how the server identifies itself to MCP clients.
type ServerConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Instructions string `yaml:"instructions,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		MaxDataFileSize: 10 * 1024 * 1024,
		Server: ServerConfig{
			Name:    "portfolio-server",
			Version: "1.0.0",
		},
	}
}

// ConfigPath returns the config file location. PORTFOLIO_CONFIG_PATH wins
// over the XDG location.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return fileops.ExpandPath(p)
	}
	path := filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
	logging.Debug("Determined config path", "path", path)
	return path
}

// Load reads the config from the standard location. A missing file is not
// an error: the defaults are returned instead.
func Load() (*Config, error) {
	path := ConfigPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logging.Debug("No config file, using defaults", "path", path)
		cfg := DefaultConfig()
		return &cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads config from a specific path. Fields absent from the file
// keep their default values.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxDataFileSize < 0 {
		return fmt.Errorf("config: max_data_file_size must not be negative")
	}
	if c.Server.Name == "" {
		return fmt.Errorf("config: server.name is required")
	}
	if c.Server.Version == "" {
		return fmt.Errorf("config: server.version is required")
	}
	return nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataPath); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// DataCandidates returns the ordered list of locations probed for the data
// file: the configured path (or DefaultDataPath), two locations relative to
// the running executable, then two relative to the working directory.
func (c *Config) DataCandidates() []string {
	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		exeDir = filepath.Dir(exe)
	}
	return c.dataCandidates(exeDir)
}

func (c *Config) dataCandidates(exeDir string) []string {
	first := c.DataPath
	if first == "" {
		first = DefaultDataPath
	}

	paths := []string{first}
	if exeDir != "" {
		paths = append(paths,
			filepath.Join(exeDir, "..", dataRelPath),
			filepath.Join(exeDir, "..", "..", dataRelPath),
		)
	}
	paths = append(paths,
		dataRelPath,
		filepath.Join("..", dataRelPath),
	)

	return fileops.UniquePaths(paths)
}
