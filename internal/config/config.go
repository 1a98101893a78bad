package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatasetSourceXLSX     = "xlsx"
	DatasetSourcePostgres = "postgres"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Dataset Config
	DatasetSource string `env:"DATASET_SOURCE" envDefault:"xlsx"`
	DatasetPath   string `env:"DATASET_PATH" envDefault:"sunshade_location.xlsx"`
	DatabaseURL   string `env:"DATABASE_URL"`

	// SMTP Config
	SMTPHost        string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort        int           `env:"SMTP_PORT" envDefault:"465"`
	SMTPTimeout     time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
	SenderAddress   string        `env:"SENDER_ADDRESS"`
	SenderSecret    string        `env:"SENDER_SECRET"`
	ReceiverAddress string        `env:"RECEIVER_ADDRESS"`

	// Upload Config
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Разрешенные origin'ы для JSON API
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DatasetSource:   strings.ToLower(getEnv("DATASET_SOURCE", DatasetSourceXLSX)),
		DatasetPath:     getEnv("DATASET_PATH", "sunshade_location.xlsx"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvAsInt("SMTP_PORT", 465),
		SMTPTimeout:     getEnvAsDuration("SMTP_TIMEOUT", 10*time.Second),
		SenderAddress:   os.Getenv("SENDER_ADDRESS"),
		SenderSecret:    os.Getenv("SENDER_SECRET"),
		ReceiverAddress: os.Getenv("RECEIVER_ADDRESS"),
		MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatasetSource {
	case DatasetSourceXLSX:
		if c.DatasetPath == "" {
			return fmt.Errorf("DATASET_PATH environment variable is required")
		}
	case DatasetSourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for postgres dataset source")
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q", c.DatasetSource)
	}

	if c.SenderAddress == "" || c.SenderSecret == "" || c.ReceiverAddress == "" {
		return fmt.Errorf("SENDER_ADDRESS, SENDER_SECRET and RECEIVER_ADDRESS environment variables are required")
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	items := strings.Split(value, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}
