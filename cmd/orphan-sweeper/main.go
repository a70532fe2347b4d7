package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"recruit-backend/internal/bootstrap"
	"recruit-backend/internal/config"
	"recruit-backend/internal/repo/cockroach"
	"recruit-backend/internal/usecase/service"
	"recruit-backend/pkg/connector"
	"time"

	"github.com/labstack/gommon/log"
)

func main() {
	// Настройка контекста для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	if cfg.EventBus == config.EventBusNone {
		log.Fatal("Воркеру очистки нужна шина событий: задайте EVENT_BUS=kafka или EVENT_BUS=nats")
	}

	workerID := os.Getenv("ORPHAN_SWEEPER_ID")
	if workerID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			workerID = fmt.Sprintf("orphan-sweeper-%d", time.Now().Unix())
		} else {
			workerID = fmt.Sprintf("orphan-sweeper-%s-%d", hostname, time.Now().Unix())
		}
	}

	dbConn, err := connector.GetCockroachConnector(ctx, cfg.DBConnectDSN)
	if err != nil {
		log.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Errorf("Ошибка при закрытии соединения с базой данных: %v", err)
		}
	}()

	storage, err := bootstrap.Storage(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка при создании хранилища: %v", err)
	}
	events, closeEvents, err := bootstrap.Events(cfg, workerID)
	if err != nil {
		log.Fatalf("Ошибка при подключении к шине событий: %v", err)
	}
	defer closeEvents()

	sweeper := service.NewOrphanSweeper(cockroach.NewFile(dbConn), storage, events, workerID)
	if err := sweeper.Start(ctx); err != nil {
		log.Errorf("Воркер очистки завершился с ошибкой: %v", err)
	}
}
