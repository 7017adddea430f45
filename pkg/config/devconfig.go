package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/apkgrab/apkgrab/pkg/workdir"
)

// LocalConfigFile is the project-local developer config filename.
const LocalConfigFile = "apkgrab.local.toml"

// DevConfig holds developer-specific configuration that is NOT committed
// to version control. It is resolved with Viper precedence:
// CLI flags > apkgrab.local.toml (project-local) > ~/.apkgrab/config.toml (global).
type DevConfig struct {
	// TempFolder is the download workspace path. Defaults to "apks"
	// under the current working directory.
	TempFolder string `toml:"temp_folder" mapstructure:"temp_folder"`
}

// LoadDevConfig resolves developer configuration using Viper's merge
// semantics. flagTempFolder, if non-empty, takes highest precedence (set via
// the --temp-folder flag).
func LoadDevConfig(flagTempFolder string) (*DevConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determining home directory: %w", err)
	}
	globalPath := filepath.Join(home, ".apkgrab", "config.toml")
	return loadDevConfig(flagTempFolder, globalPath, LocalConfigFile)
}

// loadDevConfig is the internal implementation that accepts explicit paths,
// making it testable without touching the real home directory.
func loadDevConfig(flagTempFolder, globalPath, localPath string) (*DevConfig, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("temp_folder", workdir.DefaultFolderName)

	// Lowest priority: global config. Ignore if missing.
	v.SetConfigFile(globalPath)
	_ = v.ReadInConfig()

	// Higher priority: project-local config.
	if _, err := os.Stat(localPath); err == nil {
		v.SetConfigFile(localPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", localPath, err)
		}
	}

	// Highest priority: CLI flags.
	if flagTempFolder != "" {
		v.Set("temp_folder", flagTempFolder)
	}

	cfg := &DevConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling dev config: %w", err)
	}

	return cfg, nil
}

// GlobalConfigDir returns the path to ~/.apkgrab, creating it if necessary.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	dir := filepath.Join(home, ".apkgrab")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

// WriteLocalDevConfig persists developer config to apkgrab.local.toml in the
// given project directory.
func WriteLocalDevConfig(projectDir string, cfg *DevConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling dev config: %w", err)
	}

	path := filepath.Join(projectDir, LocalConfigFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
