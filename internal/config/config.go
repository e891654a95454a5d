package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete viaggio configuration
type Config struct {
	Itinerary ItineraryConfig `mapstructure:"itinerary"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Progress  ProgressConfig  `mapstructure:"progress"`
	Map       MapConfig       `mapstructure:"map"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ItineraryConfig controls where the trip document comes from
type ItineraryConfig struct {
	// Source is a file path or an http(s) URL (default: "italy.json")
	Source string `mapstructure:"source"`
	// Days is the number of day tabs to show; 0 means one per loaded day
	Days int `mapstructure:"days"`
	// FetchTimeoutSeconds bounds HTTP fetches of the document
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds"`
}

// StorageConfig controls the local database
type StorageConfig struct {
	// DBPath is the SQLite file holding completion state (default: ~/.viaggio/viaggio.db)
	DBPath string `mapstructure:"db_path"`
}

// ProgressConfig controls checklist persistence
type ProgressConfig struct {
	// Key is the storage key the completion state is written under
	Key string `mapstructure:"key"`
	// AutosaveIntervalMs is how often the state is flushed
	AutosaveIntervalMs int `mapstructure:"autosave_interval_ms"`
}

// MapConfig controls the map dialog
type MapConfig struct {
	CenterLat   float64 `mapstructure:"center_lat"`
	CenterLng   float64 `mapstructure:"center_lng"`
	Zoom        int     `mapstructure:"zoom"`
	TileURL     string  `mapstructure:"tile_url"`
	Attribution string  `mapstructure:"attribution"`
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
	// Dir is where viaggio.log is written (default: the config directory)
	Dir string `mapstructure:"dir"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	dir := ConfigDir()
	return &Config{
		Itinerary: ItineraryConfig{
			Source:              "italy.json",
			Days:                0,
			FetchTimeoutSeconds: 10,
		},
		Storage: StorageConfig{
			DBPath: filepath.Join(dir, "viaggio.db"),
		},
		Progress: ProgressConfig{
			Key:                "italy2025-progress",
			AutosaveIntervalMs: 5000,
		},
		Map: MapConfig{
			CenterLat:   42.8333,
			CenterLng:   12.8333,
			Zoom:        8,
			TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "© OpenStreetMap contributors",
		},
		Logging: LoggingConfig{
			Level: "INFO",
			Dir:   dir,
		},
	}
}

// AutosaveInterval returns the flush interval as a duration.
func (c *ProgressConfig) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveIntervalMs) * time.Millisecond
}

// FetchTimeout returns the fetch timeout as a duration.
func (c *ItineraryConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// SetDefaults registers every default with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("itinerary.source", defaults.Itinerary.Source)
	viper.SetDefault("itinerary.days", defaults.Itinerary.Days)
	viper.SetDefault("itinerary.fetch_timeout_seconds", defaults.Itinerary.FetchTimeoutSeconds)

	viper.SetDefault("storage.db_path", defaults.Storage.DBPath)

	viper.SetDefault("progress.key", defaults.Progress.Key)
	viper.SetDefault("progress.autosave_interval_ms", defaults.Progress.AutosaveIntervalMs)

	viper.SetDefault("map.center_lat", defaults.Map.CenterLat)
	viper.SetDefault("map.center_lng", defaults.Map.CenterLng)
	viper.SetDefault("map.zoom", defaults.Map.Zoom)
	viper.SetDefault("map.tile_url", defaults.Map.TileURL)
	viper.SetDefault("map.attribution", defaults.Map.Attribution)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ConfigDir returns the directory holding the config file, database and log.
func ConfigDir() string {
	if dir := os.Getenv("VIAGGIO_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".viaggio"
	}
	return filepath.Join(home, ".viaggio")
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidationErrors joins every validation failure into one error.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}
