// Package config loads the server subcommand's TOML configuration file,
// the same decode-a-struct-from-TOML idiom internal/tqw uses for its own
// on-disk format, applied here to application configuration rather than
// game-world data - this repo has no world format of its own to load.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/whitemech/lydia-sub000/errs"
	"github.com/whitemech/lydia-sub000/logger"
)

const (
	defaultListenAddr  = ":8080"
	defaultCacheDBPath = "lydia-cache.sqlite"
	defaultLogLevel    = "info"
)

// Config is the HTTP server's configuration, loaded from one TOML file.
type Config struct {
	ListenAddr  string `toml:"listen_addr"`
	JWTSecret   string `toml:"jwt_secret"`
	CacheDBPath string `toml:"cache_db_path"`
	LogLevel    string `toml:"log_level"`
}

// Load decodes path as TOML into a Config, applying defaults for any key
// the file omits, the same tolerance-for-partial-structs behavior
// internal/tqw's marshaling relies on. A missing or malformed file is
// reported as errs.ErrIO.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:  defaultListenAddr,
		CacheDBPath: defaultCacheDBPath,
		LogLevel:    defaultLogLevel,
	}

	if _, err := os.Stat(path); err != nil {
		return Config{}, errs.IO("config: reading "+path, err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errs.IO("config: decoding "+path, err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errs.New("config: jwt_secret is required", errs.ErrContractViolation)
	}

	return cfg, nil
}

// ParsedLogLevel maps the config's textual log level to a logger.Level,
// defaulting to logger.LevelInfo for anything unrecognized.
func (c Config) ParsedLogLevel() logger.Level {
	switch c.LogLevel {
	case "error":
		return logger.LevelError
	case "debug":
		return logger.LevelDebug
	case "trace":
		return logger.LevelTrace
	default:
		return logger.LevelInfo
	}
}
