package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Path      string `yaml:"path" toml:"path"`
		BackupDir string `yaml:"backup_dir,omitempty" toml:"backup_dir,omitempty"`
	} `yaml:"database" toml:"database"`

	Output struct {
		Format string `yaml:"format" toml:"format"`
	} `yaml:"output" toml:"output"`

	Import struct {
		// Sanitize strips markup from free-text cells on import. Off by
		// default; enable it for sources that carry HTML.
		Sanitize bool `yaml:"sanitize" toml:"sanitize"`
	} `yaml:"import" toml:"import"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Database.Path = "./longbox.db"
	cfg.Output.Format = "human"
	return cfg
}

// LoadConfig reads the config file at path over the defaults. A missing file
// is not an error. Files ending in .toml are parsed as TOML, anything else
// as YAML. Environment overrides (see ApplyEnv) are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	case strings.EqualFold(filepath.Ext(path), ".toml"):
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides config values from LONGBOX_DB and LONGBOX_FORMAT. A
// .env file in the working directory is loaded first if present; variables
// already set in the environment win.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv("LONGBOX_DB")); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("LONGBOX_FORMAT")); v != "" {
		c.Output.Format = v
	}
}

// Marshal encodes the config in the format implied by path's extension.
func (c *Config) Marshal(path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var b strings.Builder
		if err := toml.NewEncoder(&b).Encode(c); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	}
	return yaml.Marshal(c)
}
