// Package config собирает настройки сервиса из переменных окружения и файла .env
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	StorageDisk  = "disk"
	StorageMinio = "minio"
)

type Config struct {
	HTTPAddr        string
	DBConnectDSN    string
	MigrationsDir   string
	AvatarsDir      string
	AvatarStorage   string
	Minio           MinioConfig
	KafkaBrokers    []string
	BodyLimit       string
	CORSOrigin      string
	LogLevel        log.Lvl
	ShutdownTimeout time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Load подгружает .env (если он есть) и читает конфигурацию из окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info(".env файл не обнаружен")
	}
	return FromEnv()
}

// FromEnv читает конфигурацию из окружения, подставляя значения по умолчанию
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		DBConnectDSN:  getEnv("DB_CONNECT_DSN", "user=root dbname=defaultdb sslmode=disable port=26257"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", ""),
		AvatarsDir:    getEnv("AVATARS_DIR", "avatars"),
		AvatarStorage: strings.ToLower(getEnv("AVATAR_STORAGE", StorageDisk)),
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "avatars"),
		},
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		BodyLimit:    getEnv("BODY_LIMIT", "10M"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "localhost:3000"),
	}

	if cfg.AvatarStorage != StorageDisk && cfg.AvatarStorage != StorageMinio {
		return nil, fmt.Errorf("AVATAR_STORAGE: неизвестное хранилище %q", cfg.AvatarStorage)
	}

	useSSL, err := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	if err != nil {
		return nil, fmt.Errorf("MINIO_USE_SSL: %w", err)
	}
	cfg.Minio.UseSSL = useSSL

	cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL: неизвестный уровень %q", level)
}
