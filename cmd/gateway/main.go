package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"recruit-backend/internal/bootstrap"
	"recruit-backend/internal/config"
	delivery "recruit-backend/internal/delivery/http"
	"recruit-backend/internal/delivery/http/utils"
	"recruit-backend/internal/repo/cockroach"
	"recruit-backend/internal/usecase/service"
	"recruit-backend/internal/usecase/service/extractor"
	"recruit-backend/pkg/connector"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// запас на служебные части multipart-формы
const multipartOverhead = 1 << 20

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	if err := cfg.ValidateGateway(); err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	if err := bootstrap.Migrate(ctx, cfg); err != nil {
		log.Fatalf("Ошибка применения миграций: %v", err)
	}

	// cockroach
	DBConn, err := connector.GetCockroachConnector(ctx, cfg.DBConnectDSN)
	if err != nil {
		log.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer func() {
		if err := DBConn.Close(); err != nil {
			log.Errorf("Ошибка при закрытии соединения с базой данных: %v", err)
		}
	}()

	// хранилище, OCR и шина событий выбираются драйверами из конфига
	storage, err := bootstrap.Storage(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка при создании хранилища: %v", err)
	}
	detector, err := bootstrap.TextDetector(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка при создании OCR: %v", err)
	}
	events, closeEvents, err := bootstrap.Events(cfg, "recruit-gateway")
	if err != nil {
		log.Fatalf("Ошибка при подключении к шине событий: %v", err)
	}
	defer closeEvents()

	// репозитории и usecase
	fileRepo := cockroach.NewFile(DBConn)
	registry := extractor.NewDefault(detector)
	log.Infof("Извлечение текста поддерживается для: %s", strings.Join(registry.Supported(), ", "))
	fileUseCase := service.NewFile(fileRepo, storage, registry, events, cfg.Policy)

	// delivery
	authManager := utils.NewAuthManager([]byte(cfg.JWTSecret))
	fileDelivery := delivery.NewFile(fileUseCase, authManager, cfg.ExternalCallTimeout)

	// REST API
	echoServer := echo.New()
	echoServer.HideBanner = true

	// лимит с запасом: файл до двух максимумов доходит до валидатора и получает понятную ошибку
	echoServer.Use(middleware.BodyLimit(strconv.FormatInt(2*cfg.Policy.MaxSizeBytes+multipartOverhead, 10)))
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.RequestID())
	echoServer.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderAccept,
			echo.HeaderContentType,
			echo.HeaderAuthorization,
			echo.HeaderCookie,
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Endpoints
	api := echoServer.Group("/api")
	files := api.Group("/files")
	fileDelivery.Configure(files)

	go func(server *echo.Echo) {
		if err := server.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Logger.Fatalf("Сервер завершил свою работу по причине: %v\n", err)
		}
	}(echoServer)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := echoServer.Shutdown(shutdownCtx); err != nil {
		echoServer.Logger.Errorf("Во время выключения сервера возникла ошибка: %s\n", err)
	}
}
