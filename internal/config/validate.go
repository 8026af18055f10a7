package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateSource() error {
	if strings.TrimSpace(c.Source.BaseURL) == "" {
		return errors.New("source.base_url must be set")
	}
	if c.Source.FirstID <= 0 {
		return errors.New("source.first_id must be positive")
	}
	if c.Source.LastID < c.Source.FirstID {
		return errors.New("source.last_id must be >= source.first_id")
	}
	if c.Source.FetchWorkers <= 0 {
		return errors.New("source.fetch_workers must be positive")
	}
	if c.Source.RequestTimeout <= 0 {
		return errors.New("source.request_timeout must be positive (seconds)")
	}
	if c.Source.BatchPauseMS < 0 {
		return errors.New("source.batch_pause_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/aniharvest/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'aniharvest config init')", defaultPath)
	}
	if c.TMDB.Workers <= 0 {
		return errors.New("tmdb.workers must be positive")
	}
	if c.TMDB.RequestTimeout <= 0 {
		return errors.New("tmdb.request_timeout must be positive (seconds)")
	}
	if c.TMDB.CacheEnabled && strings.TrimSpace(c.TMDB.CachePath) == "" {
		return errors.New("tmdb.cache_path must be set when tmdb.cache_enabled is true")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir must be set")
	}
	if strings.TrimSpace(c.Output.DataFile) == "" {
		return errors.New("output.data_file must be set")
	}
	if strings.TrimSpace(c.Output.FailuresFile) == "" {
		return errors.New("output.failures_file must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
