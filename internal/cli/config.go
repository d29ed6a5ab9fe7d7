package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user settings loaded from the config file.
type Config struct {
	Service ServiceConfig `toml:"service"`
	Cache   CacheConfig   `toml:"cache"`
}

// ServiceConfig configures the generative edit service.
type ServiceConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// CacheConfig selects the edit-result cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // "file", "redis", or "none"
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// defaultConfig returns the config used when no file exists.
func defaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			URL: "https://edit.darkroom.dev",
		},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
	}
}

// configPath returns the config file location (~/.config/darkroom/config.toml).
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file, layering it over defaults.
// A missing or unreadable file is not an error: defaults apply, and the
// DARKROOM_API_KEY environment variable overrides the stored key either way.
func LoadConfig() Config {
	cfg := defaultConfig()

	if path, err := configPath(); err == nil {
		// Unknown keys are tolerated so old binaries can read new configs.
		_, _ = toml.DecodeFile(path, &cfg)
	}

	if key := os.Getenv("DARKROOM_API_KEY"); key != "" {
		cfg.Service.APIKey = key
	}
	return cfg
}

// SaveConfig writes the config file, creating the directory if needed.
func SaveConfig(cfg Config) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "config.toml"), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
