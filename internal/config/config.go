// Package config is a thin viper layer over ~/.appcellar/config.yaml with
// APPCELLAR_-prefixed environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	homeDirName = ".appcellar"
	fileName    = "config"
	fileType    = "yaml"
	envPrefix   = "APPCELLAR"

	// DefaultPageSize is the software-list page length when page_size is
	// not configured.
	DefaultPageSize = 10
)

// Dir returns the path to the config directory (~/.appcellar/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", homeDirName)
	}
	return filepath.Join(home, homeDirName)
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// CatalogPath returns the configured catalog document path, defaulting to
// ~/.appcellar/catalog.yaml.
func CatalogPath() string {
	if v := viper.GetString("catalog_path"); v != "" {
		return v
	}
	return filepath.Join(Dir(), "catalog.yaml")
}

// LogPath returns the configured session log path, defaulting to
// ~/.appcellar/appcellar.log.
func LogPath() string {
	if v := viper.GetString("log_path"); v != "" {
		return v
	}
	return filepath.Join(Dir(), "appcellar.log")
}

// PageSize returns the configured page size for software lists.
func PageSize() int {
	if v := viper.GetInt("page_size"); v > 0 {
		return v
	}
	return DefaultPageSize
}

// GitHubToken returns the optional API token for higher rate limits.
func GitHubToken() string {
	if v := viper.GetString("github_token"); v != "" {
		return v
	}
	return os.Getenv("GITHUB_TOKEN")
}

// InstallDir returns the configured extraction directory for release
// archives; empty means the installer's platform default.
func InstallDir() string {
	return viper.GetString("install_dir")
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", Dir(), err)
	}
	return nil
}

// Load initializes viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	// Missing config file is fine; defaults cover everything.
	_ = viper.ReadInConfig()
}

// Get reads a config value as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
