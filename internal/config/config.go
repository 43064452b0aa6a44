package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Источники справочника
const (
	CatalogSourceMemory   = "memory"
	CatalogSourcePostgres = "postgres"
)

// Хранилища сессий
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Режимы запуска обратного геокодирования
const (
	GeocodeDispatchInline = "inline"
	GeocodeDispatchStream = "stream"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Mapbox   MapboxConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	Geocode  GeocodeConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	StyleURL       string
	RequestTimeout int // seconds
	SearchLimit    int
}

type CatalogConfig struct {
	Source string
}

type SessionConfig struct {
	Store string
	TTL   time.Duration
}

type GeocodeConfig struct {
	CacheEnabled  bool
	CacheTTL      time.Duration
	Dispatch      string
	LookupTimeout time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	BatchSize     int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// без .env работаем только на переменных окружения
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("API_HOST"),
			Port:         viper.GetInt("API_PORT"),
			Env:          viper.GetString("API_ENV"),
			AllowOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			StyleURL:       viper.GetString("MAPBOX_STYLE_URL"),
			RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
			SearchLimit:    viper.GetInt("MAPBOX_SEARCH_LIMIT"),
		},
		Catalog: CatalogConfig{
			Source: strings.ToLower(viper.GetString("CATALOG_SOURCE")),
		},
		Session: SessionConfig{
			Store: strings.ToLower(viper.GetString("SESSION_STORE")),
			TTL:   time.Duration(viper.GetInt("SESSION_TTL")) * time.Second,
		},
		Geocode: GeocodeConfig{
			CacheEnabled:  viper.GetBool("GEOCODE_CACHE_ENABLED"),
			CacheTTL:      time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
			Dispatch:      strings.ToLower(viper.GetString("GEOCODE_DISPATCH")),
			LookupTimeout: time.Duration(viper.GetInt("GEOCODE_LOOKUP_TIMEOUT")) * time.Millisecond,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:     viper.GetInt("WORKER_BATCH_SIZE"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults - значения по умолчанию, если не заданы
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.AllowOrigins == "" {
		c.Server.AllowOrigins = "http://localhost:4200,http://localhost:3000"
	}
	if c.Mapbox.BaseURL == "" {
		c.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if c.Mapbox.StyleURL == "" {
		c.Mapbox.StyleURL = "mapbox://styles/mapbox/streets-v11"
	}
	if c.Mapbox.RequestTimeout == 0 {
		c.Mapbox.RequestTimeout = 10
	}
	if c.Mapbox.SearchLimit == 0 {
		c.Mapbox.SearchLimit = 5
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogSourceMemory
	}
	if c.Session.Store == "" {
		c.Session.Store = SessionStoreMemory
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 12 * time.Hour
	}
	if c.Geocode.CacheTTL == 0 {
		c.Geocode.CacheTTL = 24 * time.Hour
	}
	if c.Geocode.Dispatch == "" {
		c.Geocode.Dispatch = GeocodeDispatchInline
	}
	if c.Geocode.LookupTimeout == 0 {
		c.Geocode.LookupTimeout = 5000 * time.Millisecond
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "city-lookup-workers"
	}
	if c.Worker.BatchSize <= 0 {
		c.Worker.BatchSize = 20
	}
}

// NeedsRedis - нужен ли Redis при текущей конфигурации API
func (c *Config) NeedsRedis() bool {
	return c.Session.Store == SessionStoreRedis ||
		c.Geocode.Dispatch == GeocodeDispatchStream ||
		c.Geocode.CacheEnabled
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

// DSN - строка подключения в формате key=value для pgx и lib/pq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

// Addr - адрес Redis host:port
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
