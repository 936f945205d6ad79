package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/i474232898/wash-advisor/internal/log"
)

type AppConfig struct {
	Port string

	LogDebug      bool
	LogDir        string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxAgeDays int

	// Locale selects month names in rendered times: "en" or "ru".
	Locale string
	// MergeGap is the largest gap collapsed into one time range.
	MergeGap time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	// Timezone cache retention.
	ZoneCacheMaxEntries int           // 0 = unlimited
	ZoneCacheMaxAge     time.Duration // 0 = unlimited
	CachePruneInterval  time.Duration
}

// fileConfig mirrors the optional YAML file. Environment variables win over it.
type fileConfig struct {
	Port string `yaml:"port"`
	Log  struct {
		Debug      bool   `yaml:"debug"`
		Dir        string `yaml:"dir"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Locale    string `yaml:"locale"`
	MergeGap  string `yaml:"merge_gap"`
	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	ZoneCache struct {
		MaxEntries    int    `yaml:"max_entries"`
		MaxAge        string `yaml:"max_age"`
		PruneInterval string `yaml:"prune_interval"`
	} `yaml:"zone_cache"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file found or error loading it: %v", err)
	}

	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read CONFIG_FILE: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse CONFIG_FILE: %w", err)
		}
	}

	return fromEnv(fc)
}

func fromEnv(fc fileConfig) (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", orString(fc.Port, "8080"))

	cfg.LogDebug = getenvBool("LOG_DEBUG", fc.Log.Debug)
	cfg.LogDir = getenvDefault("LOG_DIR", orString(fc.Log.Dir, "logs"))
	cfg.LogFile = getenvDefault("LOG_FILE", fc.Log.File)
	cfg.LogMaxSizeMB = getenvInt("LOG_MAX_SIZE_MB", orInt(fc.Log.MaxSizeMB, 50))
	cfg.LogMaxAgeDays = getenvInt("LOG_MAX_AGE_DAYS", orInt(fc.Log.MaxAgeDays, 14))

	cfg.Locale = getenvDefault("LOCALE", orString(fc.Locale, "en"))
	if cfg.Locale != "en" && cfg.Locale != "ru" {
		return nil, fmt.Errorf("invalid LOCALE %q: want en or ru", cfg.Locale)
	}

	var err error
	if cfg.MergeGap, err = getenvDuration("MERGE_GAP", orString(fc.MergeGap, "3h")); err != nil {
		return nil, err
	}

	cfg.RateLimitRPS = getenvFloat("RATE_LIMIT_RPS", orFloat(fc.RateLimit.RPS, 20))
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", orInt(fc.RateLimit.Burst, 40))

	// Roughly one entry per city the bot has ever served.
	cfg.ZoneCacheMaxEntries = getenvInt("ZONE_CACHE_MAX_ENTRIES", orInt(fc.ZoneCache.MaxEntries, 10000))
	if cfg.ZoneCacheMaxAge, err = getenvDuration("ZONE_CACHE_MAX_AGE", orString(fc.ZoneCache.MaxAge, "24h")); err != nil {
		return nil, err
	}
	if cfg.CachePruneInterval, err = getenvDuration("CACHE_PRUNE_INTERVAL", orString(fc.ZoneCache.PruneInterval, "15m")); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func orString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

func orFloat(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}
