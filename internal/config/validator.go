package config

import (
	"fmt"
	"strings"

	"viaggio/internal/logging"
)

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []error {
	var errs []error

	if strings.TrimSpace(c.Itinerary.Source) == "" {
		errs = append(errs, fmt.Errorf("itinerary.source must not be empty"))
	}
	if c.Itinerary.Days < 0 || c.Itinerary.Days > 9 {
		errs = append(errs, fmt.Errorf("itinerary.days must be between 0 and 9, got %d", c.Itinerary.Days))
	}
	if c.Itinerary.FetchTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("itinerary.fetch_timeout_seconds must be positive"))
	}
	if strings.TrimSpace(c.Storage.DBPath) == "" {
		errs = append(errs, fmt.Errorf("storage.db_path must not be empty"))
	}
	if strings.TrimSpace(c.Progress.Key) == "" {
		errs = append(errs, fmt.Errorf("progress.key must not be empty"))
	}
	if c.Progress.AutosaveIntervalMs < 100 {
		errs = append(errs, fmt.Errorf("progress.autosave_interval_ms must be at least 100, got %d", c.Progress.AutosaveIntervalMs))
	}
	if c.Map.CenterLat < -85 || c.Map.CenterLat > 85 {
		errs = append(errs, fmt.Errorf("map.center_lat out of range: %v", c.Map.CenterLat))
	}
	if c.Map.CenterLng < -180 || c.Map.CenterLng > 180 {
		errs = append(errs, fmt.Errorf("map.center_lng out of range: %v", c.Map.CenterLng))
	}
	if c.Map.Zoom < 1 || c.Map.Zoom > 18 {
		errs = append(errs, fmt.Errorf("map.zoom must be between 1 and 18, got %d", c.Map.Zoom))
	}
	if !validLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of %s", strings.Join(logging.ValidLevels(), ", ")))
	}

	return errs
}

func validLevel(level string) bool {
	for _, l := range logging.ValidLevels() {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}
