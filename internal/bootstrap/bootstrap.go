// Package bootstrap собирает репозитории по конфигу. Общий код гейтвея и воркера очистки.
package bootstrap

import (
	"context"
	"fmt"
	"recruit-backend/internal/config"
	"recruit-backend/internal/repo"
	"recruit-backend/internal/repo/gemini"
	"recruit-backend/internal/repo/kafka"
	repominio "recruit-backend/internal/repo/minio"
	"recruit-backend/internal/repo/nats"
	repos3 "recruit-backend/internal/repo/s3"
	"recruit-backend/internal/repo/textract"
	"recruit-backend/pkg/connector"
	"recruit-backend/pkg/goosehelper"
)

// Migrate применяет миграции отдельным соединением
func Migrate(ctx context.Context, cfg *config.Config) error {
	db, err := connector.GetCockroachConnector(ctx, cfg.DBConnectDSN)
	if err != nil {
		return fmt.Errorf("ошибка при подключении к базе данных: %w", err)
	}
	defer func() { _ = db.Close() }()
	return goosehelper.MigrateUp(db.DB, cfg.MigrationsDir)
}

func Storage(ctx context.Context, cfg *config.Config) (repo.ObjectStorage, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		awsConfig, err := connector.GetAWSConfig(ctx, cfg.AWS.Region, cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey)
		if err != nil {
			return nil, fmt.Errorf("ошибка конфигурации AWS: %w", err)
		}
		client := connector.GetS3Connector(awsConfig, cfg.AWS.S3Endpoint)
		return repos3.NewStorage(client, cfg.Bucket, cfg.AWS.Region, cfg.AWS.S3Endpoint), nil
	default:
		client, err := connector.GetMinioConnector(ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			return nil, fmt.Errorf("ошибка при подключении к MinIO: %w", err)
		}
		return repominio.NewStorage(ctx, client, cfg.Bucket, cfg.AWS.Region)
	}
}

// TextDetector возвращает nil при OCR_DRIVER=none, тогда изображения не поддерживаются
func TextDetector(ctx context.Context, cfg *config.Config) (repo.TextDetector, error) {
	switch cfg.OCRDriver {
	case config.OCRTextract:
		awsConfig, err := connector.GetAWSConfig(ctx, cfg.AWS.Region, cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey)
		if err != nil {
			return nil, fmt.Errorf("ошибка конфигурации AWS: %w", err)
		}
		return textract.NewDetector(connector.GetTextractConnector(awsConfig)), nil
	case config.OCRGemini:
		client, err := connector.GetGeminiConnector(ctx, cfg.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("ошибка при создании клиента Gemini: %w", err)
		}
		return gemini.NewDetector(client.Models, cfg.Gemini.Model), nil
	default:
		return nil, nil
	}
}

// Events возвращает nil при EVENT_BUS=none
func Events(cfg *config.Config, clientName string) (repo.FileEvent, func(), error) {
	switch cfg.EventBus {
	case config.EventBusKafka:
		events, err := kafka.NewFileEventRepository(cfg.KafkaBrokers, cfg.KafkaGroupID)
		if err != nil {
			return nil, nil, err
		}
		return events, func() { _ = events.Close() }, nil
	case config.EventBusNats:
		conn, err := connector.GetNatsConnector(cfg.NatsURL, clientName)
		if err != nil {
			return nil, nil, fmt.Errorf("ошибка при подключении к NATS: %w", err)
		}
		events := nats.NewFileEventRepository(conn, cfg.NatsQueue)
		return events, func() {
			_ = events.Close()
			conn.Close()
		}, nil
	default:
		return nil, func() {}, nil
	}
}
