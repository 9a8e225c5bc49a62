package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// DefaultBaseURL is the Nasdaq Data Link v3 API root.
const DefaultBaseURL = "https://data.nasdaq.com/api/v3"

// DefaultPaths are tried in order when no config path is given.
var DefaultPaths = []string{"pyalgo.cfg", "config/pyalgo.cfg", "../config/pyalgo.cfg"}

type Quandl struct {
	APIKey                string `mapstructure:"api_key"`
	BaseURL               string `mapstructure:"base_url"`
	MaxRequestsPerMinute  int    `mapstructure:"max_requests_per_minute"`
	Burst                 int    `mapstructure:"burst"`
	MinRequestIntervalSec int    `mapstructure:"min_request_interval_sec"`
	RateLimitCooldownSec  int    `mapstructure:"rate_limit_cooldown_sec"`
}

type HTTP struct {
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
	UserAgent         string `mapstructure:"user_agent"`
}

// Series selects one dataset and value column. Dates are optional.
type Series struct {
	Code      string `mapstructure:"code"`
	Column    string `mapstructure:"column"`
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`
}

type Cache struct {
	TTLSeconds int    `mapstructure:"ttl_sec"`
	MaxItems   int    `mapstructure:"max_items"`
	Dir        string `mapstructure:"dir"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	Quandl  Quandl `mapstructure:"quandl"`
	HTTP    HTTP   `mapstructure:"http"`
	Bitcoin Series `mapstructure:"bitcoin"`
	Equity  Series `mapstructure:"equity"`
	Cache   Cache  `mapstructure:"cache"`
	Log     Log    `mapstructure:"log"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("quandl.api_key", "")
	v.SetDefault("quandl.base_url", DefaultBaseURL)
	v.SetDefault("quandl.max_requests_per_minute", 0)
	v.SetDefault("quandl.burst", 1)
	v.SetDefault("quandl.min_request_interval_sec", 0)
	v.SetDefault("quandl.rate_limit_cooldown_sec", 60)

	v.SetDefault("http.request_timeout_sec", 30)
	v.SetDefault("http.user_agent", "eodseries/1.0")

	v.SetDefault("bitcoin.code", "BCHAIN/MKPRU")
	v.SetDefault("bitcoin.column", "Value")
	v.SetDefault("bitcoin.start_date", "")
	v.SetDefault("bitcoin.end_date", "")

	v.SetDefault("equity.code", "FSE/SAP_X")
	v.SetDefault("equity.column", "")
	v.SetDefault("equity.start_date", "2018-01-01")
	v.SetDefault("equity.end_date", "2020-05-01")

	v.SetDefault("cache.ttl_sec", 0)
	v.SetDefault("cache.max_items", 64)
	v.SetDefault("cache.dir", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	v := viper.New()
	defaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads the INI config at path (sections such as [quandl] api_key = ...).
// If path is empty the DefaultPaths are tried; a missing file yields defaults.
// A .env file, when present, is loaded into the environment first, and
// environment variables (QUANDL_API_KEY, HTTP_REQUEST_TIMEOUT_SEC, ...) override the file.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		for _, p := range DefaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path != "" {
		sections, err := readINI(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Default(), fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := v.MergeConfigMap(sections); err != nil {
				return Default(), fmt.Errorf("parse config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	cfg.Quandl.APIKey = strings.TrimSpace(cfg.Quandl.APIKey)
	// "base_url =" in the file is an explicit empty value, not an unset key.
	if cfg.Quandl.BaseURL = strings.TrimSpace(cfg.Quandl.BaseURL); cfg.Quandl.BaseURL == "" {
		cfg.Quandl.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// readINI returns the file's sections as nested maps, keys lower-cased.
func readINI(path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any)
	for _, s := range f.Sections() {
		if len(s.Keys()) == 0 {
			continue
		}
		kv := make(map[string]any, len(s.Keys()))
		for _, k := range s.Keys() {
			kv[k.Name()] = k.String()
		}
		out[strings.ToLower(s.Name())] = kv
	}
	return out, nil
}
