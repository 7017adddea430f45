package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the manifest filename used for both project-local
// and global configurations.
const ManifestFileName = "apkgrab.toml"

type Config struct {
	Project ProjectConfig        `toml:"project"`
	Apps    map[string]AppConfig `toml:"apps,omitempty"`
}

type ProjectConfig struct {
	Name string `toml:"name"`
}

// AppConfig describes one application to fetch.
type AppConfig struct {
	// Package is the Android package identifier, e.g. com.example.app.
	Package string `toml:"package"`

	// Source selects the downloader: "apkeep" (default) or "url".
	Source string `toml:"source,omitempty"`

	// Version requests a specific version. Sources that cannot pin
	// fall back to the latest version with a warning.
	Version string `toml:"version,omitempty"`

	// URL is the direct download location, required for source = "url".
	URL string `toml:"url,omitempty"`
}

func UnmarshalConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	err := toml.Unmarshal(data, cfg)

	return cfg, err
}

func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return UnmarshalConfig(data)
}

func SaveFile(path string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GlobalManifestPath returns the path to the global manifest
// (~/.apkgrab/apkgrab.toml), ensuring the directory exists.
func GlobalManifestPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ManifestFileName), nil
}
