package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Tracing     TracingConfig     `toml:"tracing"`
	Redis       RedisConfig       `toml:"redis"`
	Kafka       KafkaConfig       `toml:"kafka"`
	UserService UserServiceConfig `toml:"user_service"`
	Scheduling  SchedulingConfig  `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TracingConfig настройки OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

// RedisConfig настройки кэша занятости. Пустой Addr отключает кэш
type RedisConfig struct {
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	BusyCacheTTL    int    `toml:"busy_cache_ttl_seconds"`
	BusyCachePrefix string `toml:"busy_cache_prefix"`
}

// KafkaConfig настройки событий. Пустой Brokers отключает публикацию
type KafkaConfig struct {
	Brokers      string `toml:"brokers"`
	Topic        string `toml:"topic"`
	WriteTimeout int    `toml:"write_timeout"`
}

// UserServiceConfig настройки справочника пользователей. Пустой URL отключает обогащение участников
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulingConfig параметры движка планирования
type SchedulingConfig struct {
	MaxPanelInterviewers  int    `toml:"max_panel_interviewers"`
	DefaultTimezone       string `toml:"default_timezone"`
	DefaultMaxSuggestions int    `toml:"default_max_suggestions"`
	ExpireIntervalSeconds int    `toml:"expire_interval_seconds"`
	ExpireBatchSize       int    `toml:"expire_batch_size"`
}

// ExpireInterval период фоновой задачи истечения слотов
func (s SchedulingConfig) ExpireInterval() time.Duration {
	return time.Duration(s.ExpireIntervalSeconds) * time.Second
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "interview_scheduler",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "interview-scheduler",
		},
		Tracing: TracingConfig{SampleRatio: 1},
		Redis: RedisConfig{
			BusyCacheTTL:    60,
			BusyCachePrefix: "busy",
		},
		Kafka: KafkaConfig{
			Topic:        "scheduling.slot-events",
			WriteTimeout: 5,
		},
		UserService: UserServiceConfig{Timeout: 3},
		Scheduling: SchedulingConfig{
			MaxPanelInterviewers:  5,
			DefaultTimezone:       "UTC",
			DefaultMaxSuggestions: 10,
			ExpireIntervalSeconds: 300,
			ExpireBatchSize:       500,
		},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем TOML файл (если есть),
// затем .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_PORT: %w", err)
		}
		cfg.Database.Port = port
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Tracing.OTLPEndpoint = v
		cfg.Tracing.Enabled = true
	}
	if v := os.Getenv("USER_SERVICE_URL"); v != "" {
		cfg.UserService.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("database.host and database.dbname are required")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return errors.New("database pool sizes must not be negative")
	}
	switch c.Logs.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logs.level %q must be one of debug, info, warn, error", c.Logs.Level)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio %v must be within [0, 1]", c.Tracing.SampleRatio)
	}
	if c.Scheduling.MaxPanelInterviewers < 1 {
		return errors.New("scheduling.max_panel_interviewers must be at least 1")
	}
	if _, err := time.LoadLocation(c.Scheduling.DefaultTimezone); err != nil {
		return fmt.Errorf("scheduling.default_timezone: %w", err)
	}
	if c.Scheduling.DefaultMaxSuggestions < 1 || c.Scheduling.DefaultMaxSuggestions > 50 {
		return errors.New("scheduling.default_max_suggestions must be within [1, 50]")
	}
	if c.Scheduling.ExpireIntervalSeconds < 0 {
		return errors.New("scheduling.expire_interval_seconds must not be negative")
	}
	return nil
}
