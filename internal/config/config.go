package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Source contains configuration for the episode-listing endpoint sweep.
type Source struct {
	BaseURL        string `toml:"base_url"`
	FirstID        int    `toml:"first_id"`
	LastID         int    `toml:"last_id"`
	FetchWorkers   int    `toml:"fetch_workers"`
	RequestTimeout int    `toml:"request_timeout"`
	BatchPauseMS   int    `toml:"batch_pause_ms"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Language       string `toml:"language"`
	Workers        int    `toml:"workers"`
	RequestTimeout int    `toml:"request_timeout"`
	CacheEnabled   bool   `toml:"cache_enabled"`
	CachePath      string `toml:"cache_path"`
}

// Output contains configuration for the result artifacts.
type Output struct {
	Dir          string `toml:"dir"`
	DataFile     string `toml:"data_file"`
	FailuresFile string `toml:"failures_file"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Config encapsulates all configuration values for aniharvest.
//
// Configuration sections by subsystem:
//   - Source: identifier range, fetch concurrency, and throttling
//   - TMDB: catalog enrichment credentials, concurrency, and cache
//   - Output: result and failure artifact locations
//   - Logging: log format, level, and directory
//   - Notifications: ntfy run-completion notifications
type Config struct {
	Source        Source        `toml:"source"`
	TMDB          TMDB          `toml:"tmdb"`
	Output        Output        `toml:"output"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/aniharvest/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("aniharvest.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	if err := c.normalizeSource(); err != nil {
		return err
	}
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSource() error {
	c.Source.BaseURL = strings.TrimRight(strings.TrimSpace(c.Source.BaseURL), "/")
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = defaultSourceBaseURL
	}
	if c.Source.FetchWorkers == 0 {
		c.Source.FetchWorkers = defaultFetchWorkers
	}
	if c.Source.RequestTimeout == 0 {
		c.Source.RequestTimeout = defaultSourceRequestTimeout
	}
	return nil
}

func (c *Config) normalizeTMDB() error {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	if c.TMDB.Workers == 0 {
		c.TMDB.Workers = defaultTMDBWorkers
	}
	if c.TMDB.RequestTimeout == 0 {
		c.TMDB.RequestTimeout = defaultTMDBRequestTimeout
	}
	if strings.TrimSpace(c.TMDB.CachePath) == "" {
		c.TMDB.CachePath = defaultCachePath
	}
	var err error
	if c.TMDB.CachePath, err = expandPath(c.TMDB.CachePath); err != nil {
		return fmt.Errorf("tmdb.cache_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if strings.TrimSpace(c.Output.DataFile) == "" {
		c.Output.DataFile = defaultDataFile
	}
	if strings.TrimSpace(c.Output.FailuresFile) == "" {
		c.Output.FailuresFile = defaultFailuresFile
	}
	return nil
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		if expanded, err := expandPath(c.Logging.Dir); err == nil {
			c.Logging.Dir = expanded
		}
	}
}

// EnsureDirectories creates the directories a sweep writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Output.Dir}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	if c.TMDB.CacheEnabled {
		dirs = append(dirs, filepath.Dir(c.TMDB.CachePath))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DataPath returns the absolute path of the JSON result artifact.
func (c *Config) DataPath() string {
	return filepath.Join(c.Output.Dir, c.Output.DataFile)
}

// FailuresPath returns the absolute path of the failed-URL artifact.
func (c *Config) FailuresPath() string {
	return filepath.Join(c.Output.Dir, c.Output.FailuresFile)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
