package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs     LogsConfig     `toml:"logs"`
	Server   ServerConfig   `toml:"server"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Telegram TelegramConfig `toml:"telegram"`
	Worker   WorkerConfig   `toml:"worker"`
}

// LogsConfig содержит настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// MetricsConfig содержит настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TelegramConfig содержит настройки Telegram Bot API
type TelegramConfig struct {
	BotToken    string `toml:"bot_token"`
	WebhookURL  string `toml:"webhook_url"`  // Пусто - работаем в режиме long polling
	BaseURL     string `toml:"base_url"`     // Переопределяется в тестах
	Timeout     int    `toml:"timeout"`      // Таймаут HTTP клиента (в секундах)
	PollLimit   int    `toml:"poll_limit"`   // Количество обновлений за один getUpdates
	PollTimeout int    `toml:"poll_timeout"` // Long polling таймаут (в секундах)
}

// WorkerConfig содержит настройки воркеров
type WorkerConfig struct {
	HealthcheckInterval int `toml:"healthcheck_interval"` // Интервал проверки Bot API (в секундах)
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config

	// Читаем TOML файл
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	// Переопределяем значения из переменных окружения (если они установлены)
	overrideFromEnv(&cfg)

	// Валидация конфигурации
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Server
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}

	// Logs
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logs.File = v
	}

	// Metrics
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
	if v := os.Getenv("METRICS_SERVICE_NAME"); v != "" {
		cfg.Metrics.ServiceName = v
	}

	// Telegram
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_WEBHOOK_URL"); v != "" {
		cfg.Telegram.WebhookURL = v
	}
	if v := os.Getenv("TELEGRAM_BASE_URL"); v != "" {
		cfg.Telegram.BaseURL = v
	}

	// Worker
	if v := os.Getenv("WORKER_HEALTHCHECK_INTERVAL"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil {
			cfg.Worker.HealthcheckInterval = interval
		}
	}
}

// validate проверяет корректность конфигурации
func validate(cfg *Config) error {
	// Server validation
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}

	// Logs validation
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info" // default
	}
	if cfg.Logs.File == "" {
		cfg.Logs.File = "./logs/app.log" // default
	}

	// Set defaults for timeouts if not specified
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	// Metrics validation and defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "botgateway"
	}

	// Telegram validation and defaults
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required")
	}
	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 90 // должен превышать poll_timeout
	}
	if cfg.Telegram.PollLimit == 0 {
		cfg.Telegram.PollLimit = 100
	}
	if cfg.Telegram.PollTimeout == 0 {
		cfg.Telegram.PollTimeout = 60
	}

	// Worker validation and defaults
	if cfg.Worker.HealthcheckInterval == 0 {
		cfg.Worker.HealthcheckInterval = 60 // раз в минуту
	}

	return nil
}
