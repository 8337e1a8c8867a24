// config - источник загрузки конфигурации клиента.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	Locale   string        `yaml:"locale" env:"LOCALE" env-default:"zh"`
	HTTP     HTTPConfig    `yaml:"http"`
	API      APIConfig     `yaml:"api"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Feed     FeedConfig    `yaml:"feed"`
	Search   SearchConfig  `yaml:"search"`
	Storage  StorageConfig `yaml:"storage"`
	Notices  NoticesConfig `yaml:"notices"`
}

// HTTPConfig — локальный сервер представлений.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"127.0.0.1"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50100"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// APIConfig — REST-бэкенд платформы.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"   env:"API_BASE_URL"   env-default:"http://127.0.0.1:8000"`
	UserAgent string `yaml:"user_agent" env:"API_USER_AGENT" env-default:"ossclient/1.0"`
}

// TimeoutConfig — таймауты запросов и остановки.
type TimeoutConfig struct {
	Request   time.Duration `yaml:"request"   env:"REQUEST_TIMEOUT"   env-default:"10s"`
	Shutdown  time.Duration `yaml:"shutdown"  env:"SHUTDOWN_TIMEOUT"  env-default:"5s"`
	Hydration time.Duration `yaml:"hydration" env:"HYDRATION_TIMEOUT" env-default:"2s"`
}

// FeedConfig — лента главной страницы.
type FeedConfig struct {
	PageSize int    `yaml:"page_size" env:"FEED_PAGE_SIZE" env-default:"10"`
	OrderBy  string `yaml:"order_by"  env:"FEED_ORDER_BY"  env-default:"updated_at"`
	Order    string `yaml:"order"     env:"FEED_ORDER"     env-default:"desc"`
}

// SearchConfig — страница поиска и рекомендации.
type SearchConfig struct {
	PageSize        int           `yaml:"page_size"        env:"SEARCH_PAGE_SIZE"        env-default:"10"`
	SuggestDebounce time.Duration `yaml:"suggest_debounce" env:"SEARCH_SUGGEST_DEBOUNCE" env-default:"1s"`
	RelatedLimit    int           `yaml:"related_limit"    env:"SEARCH_RELATED_LIMIT"    env-default:"6"`
}

// StorageConfig — хранилище клиентского состояния.
type StorageConfig struct {
	Driver   string `yaml:"driver"    env:"STORAGE_DRIVER"    env-default:"file"`
	Path     string `yaml:"path"      env:"STORAGE_PATH"      env-default:"ossclient-state.json"`
	RedisURL string `yaml:"redis_url" env:"STORAGE_REDIS_URL" env-default:"redis://127.0.0.1:6379/0"`
	Prefix   string `yaml:"prefix"    env:"STORAGE_PREFIX"    env-default:"ossclient:"`
}

// NoticesConfig — буфер уведомлений для GET /notices.
type NoticesConfig struct {
	Limit int `yaml:"limit" env:"NOTICES_LIMIT" env-default:"50"`
}

// Драйверы хранилища.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return validated(&cfg)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return validated(&cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for driver %q", DriverFile)
		}
	case DriverRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redis_url is required for driver %q", DriverRedis)
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if c.Feed.PageSize <= 0 || c.Search.PageSize <= 0 || c.Search.RelatedLimit <= 0 {
		return fmt.Errorf("page sizes and related_limit must be positive")
	}
	if c.Feed.Order != "asc" && c.Feed.Order != "desc" {
		return fmt.Errorf("feed.order must be asc or desc, got %q", c.Feed.Order)
	}
	if c.Search.SuggestDebounce < 0 {
		return fmt.Errorf("search.suggest_debounce must not be negative")
	}
	if c.Timeouts.Request <= 0 || c.Timeouts.Shutdown <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	return nil
}
