package config

const (
	defaultSourceBaseURL        = "https://4anime.gg/ajax/episode/list"
	defaultSourceFirstID        = 10000
	defaultSourceLastID         = 20000
	defaultFetchWorkers         = 30
	defaultSourceRequestTimeout = 10
	defaultBatchPauseMS         = 50
	defaultTMDBBaseURL          = "https://api.themoviedb.org/3"
	defaultTMDBLanguage         = "en-US"
	defaultTMDBWorkers          = 10
	defaultTMDBRequestTimeout   = 10
	defaultCachePath            = "~/.cache/aniharvest/catalog_cache.db"
	defaultOutputDir            = "~/.local/share/aniharvest"
	defaultDataFile             = "anime_series_data.json"
	defaultFailuresFile         = "harvest_errors.txt"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogDir               = "~/.local/share/aniharvest/logs"
	defaultNotifyTimeout        = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Source: Source{
			BaseURL:        defaultSourceBaseURL,
			FirstID:        defaultSourceFirstID,
			LastID:         defaultSourceLastID,
			FetchWorkers:   defaultFetchWorkers,
			RequestTimeout: defaultSourceRequestTimeout,
			BatchPauseMS:   defaultBatchPauseMS,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			Language:       defaultTMDBLanguage,
			Workers:        defaultTMDBWorkers,
			RequestTimeout: defaultTMDBRequestTimeout,
			CacheEnabled:   true,
			CachePath:      defaultCachePath,
		},
		Output: Output{
			Dir:          defaultOutputDir,
			DataFile:     defaultDataFile,
			FailuresFile: defaultFailuresFile,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
	}
}
