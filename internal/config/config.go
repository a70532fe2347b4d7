// Package config собирает настройки процессов из окружения (и .env, если он есть).
package config

import (
	"errors"
	"fmt"
	"os"
	"recruit-backend/internal/entity"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	StorageMinio = "minio"
	StorageS3    = "s3"

	OCRTextract = "textract"
	OCRGemini   = "gemini"
	OCRNone     = "none"

	EventBusKafka = "kafka"
	EventBusNats  = "nats"
	EventBusNone  = "none"
)

var ErrMissingEnv = errors.New("обязательная переменная окружения не задана")

type Config struct {
	HTTPAddr            string
	DBConnectDSN        string
	MigrationsDir       string
	JWTSecret           string
	CORSOrigin          string
	ExternalCallTimeout time.Duration
	ShutdownTimeout     time.Duration

	StorageDriver string
	Bucket        string
	Minio         MinioConfig
	AWS           AWSConfig

	OCRDriver string
	Gemini    GeminiConfig

	EventBus     string
	KafkaBrokers []string
	KafkaGroupID string
	NatsURL      string
	NatsQueue    string

	Policy entity.UploadPolicy
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// S3Endpoint задаётся для S3-совместимых хранилищ
	S3Endpoint string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// Load читает .env (если есть) и окружение. Не хватает обязательных значений - ошибка
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info(".env файл не обнаружен")
	}
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}
	cfg := &Config{
		HTTPAddr:            e.str("HTTP_ADDR", "0.0.0.0:80"),
		DBConnectDSN:        e.str("DB_CONNECT_DSN", ""),
		MigrationsDir:       e.str("MIGRATIONS_DIR", "./cockroachdb/migrations"),
		JWTSecret:           e.str("JWT_SECRET", ""),
		CORSOrigin:          e.str("CORS_ORIGIN", "localhost:3000"),
		ExternalCallTimeout: e.duration("EXTERNAL_CALL_TIMEOUT", 30*time.Second),
		ShutdownTimeout:     e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),

		StorageDriver: strings.ToLower(e.str("STORAGE_DRIVER", StorageMinio)),
		Bucket:        e.str("STORAGE_BUCKET", "recruit-uploads"),
		Minio: MinioConfig{
			Endpoint:  e.str("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: e.str("MINIO_ACCESS_KEY", ""),
			SecretKey: e.str("MINIO_SECRET_KEY", ""),
			UseSSL:    e.boolean("MINIO_USE_SSL", false),
		},
		AWS: AWSConfig{
			Region:          e.str("AWS_REGION", ""),
			AccessKeyID:     e.str("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: e.str("AWS_SECRET_ACCESS_KEY", ""),
			S3Endpoint:      e.str("AWS_S3_ENDPOINT", ""),
		},

		OCRDriver: strings.ToLower(e.str("OCR_DRIVER", OCRTextract)),
		Gemini: GeminiConfig{
			APIKey: e.str("GEMINI_API_KEY", ""),
			Model:  e.str("GEMINI_MODEL", "gemini-2.5-flash"),
		},

		EventBus:     strings.ToLower(e.str("EVENT_BUS", EventBusNone)),
		KafkaBrokers: e.list("KAFKA_BROKERS", nil),
		KafkaGroupID: e.str("KAFKA_GROUP_ID", "orphan-sweeper"),
		NatsURL:      e.str("NATS_URL", "nats://localhost:4222"),
		NatsQueue:    e.str("NATS_QUEUE", "orphan-sweeper"),

		Policy: entity.UploadPolicy{
			MaxSizeBytes:     e.integer("UPLOAD_MAX_SIZE_BYTES", entity.DefaultMaxUploadSize),
			AllowedMimeTypes: e.list("UPLOAD_ALLOWED_MIME_TYPES", entity.DefaultUploadPolicy().AllowedMimeTypes),
		},
	}
	if len(e.errs) > 0 {
		return nil, errors.Join(e.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, общие для всех процессов
func (c *Config) Validate() error {
	var errs []error
	require := func(name, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEnv, name))
		}
	}

	require("DB_CONNECT_DSN", c.DBConnectDSN)
	require("STORAGE_BUCKET", c.Bucket)

	switch c.StorageDriver {
	case StorageMinio:
		require("MINIO_ENDPOINT", c.Minio.Endpoint)
		require("MINIO_ACCESS_KEY", c.Minio.AccessKey)
		require("MINIO_SECRET_KEY", c.Minio.SecretKey)
	case StorageS3:
		c.requireAWS(require)
	default:
		errs = append(errs, fmt.Errorf("неизвестный STORAGE_DRIVER: %s", c.StorageDriver))
	}

	switch c.EventBus {
	case EventBusKafka:
		if len(c.KafkaBrokers) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEnv, "KAFKA_BROKERS"))
		}
	case EventBusNats:
		require("NATS_URL", c.NatsURL)
	case EventBusNone:
	default:
		errs = append(errs, fmt.Errorf("неизвестный EVENT_BUS: %s", c.EventBus))
	}

	if c.Policy.MaxSizeBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_SIZE_BYTES должен быть положительным"))
	}
	return errors.Join(errs...)
}

// ValidateGateway добавляет к Validate то, что нужно только HTTP API: секрет JWT и OCR
func (c *Config) ValidateGateway() error {
	var errs []error
	require := func(name, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEnv, name))
		}
	}

	require("JWT_SECRET", c.JWTSecret)
	switch c.OCRDriver {
	case OCRTextract:
		c.requireAWS(require)
	case OCRGemini:
		require("GEMINI_API_KEY", c.Gemini.APIKey)
	case OCRNone:
	default:
		errs = append(errs, fmt.Errorf("неизвестный OCR_DRIVER: %s", c.OCRDriver))
	}
	return errors.Join(errs...)
}

func (c *Config) requireAWS(require func(name, value string)) {
	require("AWS_REGION", c.AWS.Region)
	require("AWS_ACCESS_KEY_ID", c.AWS.AccessKeyID)
	require("AWS_SECRET_ACCESS_KEY", c.AWS.SecretAccessKey)
}

type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *env) list(key string, def []string) []string {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("неверный формат %s: %w", key, err))
		return def
	}
	return d
}

func (e *env) integer(key string, def int64) int64 {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("неверный формат %s: %w", key, err))
		return def
	}
	return v
}

func (e *env) boolean(key string, def bool) bool {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("неверный формат %s: %w", key, err))
		return def
	}
	return v
}
