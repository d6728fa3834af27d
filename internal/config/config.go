package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment keys recognized in the process environment and in
// ~/.laracheat/.env. Each one overrides the matching YAML field.
const (
	EnvSource   = "LARACHEAT_SOURCE"
	EnvUpstream = "LARACHEAT_UPSTREAM"
	EnvListen   = "LARACHEAT_LISTEN"
	EnvStyle    = "LARACHEAT_STYLE"
)

// Config is the in-memory representation of ~/.laracheat/laracheat.yaml.
type Config struct {
	// Source is the cheat sheet file queried by default.
	Source string `yaml:"source"`
	// Upstream is the URL pull fetches the sheet from.
	Upstream string `yaml:"upstream,omitempty"`
	// Listen is the address serve binds to.
	Listen string `yaml:"listen,omitempty"`
	// Style is the default output style: plain, pretty or json.
	Style string `yaml:"style,omitempty"`
	// Limit caps search results; zero means unlimited.
	Limit int `yaml:"limit,omitempty"`
}

// LaracheatDir returns the absolute path to ~/.laracheat/.
func LaracheatDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".laracheat"), nil
}

// ConfigPath returns the absolute path to ~/.laracheat/laracheat.yaml.
func ConfigPath() (string, error) {
	dir, err := LaracheatDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "laracheat.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the default Config written on first laracheat init.
func DefaultConfig() (*Config, error) {
	dir, err := LaracheatDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Source:   filepath.Join(dir, "laravel.md"),
		Upstream: "https://raw.githubusercontent.com/michaelsholadiran/laravel-cheat-code/main/README.md",
		Listen:   "127.0.0.1:7340",
		Style:    "plain",
	}, nil
}

// Load returns the effective configuration: defaults, overlaid with
// ~/.laracheat/laracheat.yaml when it exists, overlaid with LARACHEAT_*
// values from the process environment and ~/.laracheat/.env. A missing
// config file is not an error; a malformed one is.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First run: defaults apply until laracheat init writes the file.
	default:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Source, err = ExpandPath(cfg.Source)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save marshals cfg and writes it to ~/.laracheat/laracheat.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	for _, kv := range []struct {
		key string
		dst *string
	}{
		{EnvSource, &cfg.Source},
		{EnvUpstream, &cfg.Upstream},
		{EnvListen, &cfg.Listen},
		{EnvStyle, &cfg.Style},
	} {
		v, err := GetConfigValue(kv.key)
		if err != nil {
			return err
		}
		if v != "" {
			*kv.dst = v
		}
	}
	return nil
}
