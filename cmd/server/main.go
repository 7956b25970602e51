// @title           Users API
// @version         1.0
// @description     REST API for managing users stored in MongoDB.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /
// @schemes http
//
// Package main содержит точку входа HTTP-сервера пользователей.
//
// Пакет отвечает за инициализацию и жизненный цикл сервера:
//   - загрузку переменных окружения из config/.env и .env (если есть);
//   - загрузку конфигурации (CONFIG_PATH, по умолчанию ./configs/server.yaml);
//   - подключение к MongoDB с проверкой ping и создание индексов;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск HTTP-сервера с таймаутами из конфига;
//   - graceful shutdown по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-users-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/config"
	h "github.com/IvanChernomyrdin/go-users-api/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/repository"
	"github.com/IvanChernomyrdin/go-users-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-users-api/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-users-api/swagger/docs"
)

const defaultConfigPath = "./configs/server.yaml"

func main() {
	// до загрузки конфига пишем в консоль с дефолтами
	sugar := logger.NewHTTPLogger(logger.Options{}).Sugar()

	for _, f := range []string{"config/.env", ".env"} {
		if err := godotenv.Load(f); err != nil {
			sugar.Warnf("no %s file loaded, error: %v", f, err)
		}
	}

	cfg, err := config.Load(configPath())
	if err != nil {
		sugar.Fatal(err)
	}

	httpLogger := logger.NewHTTPLogger(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer func() { _ = httpLogger.Sync() }()
	sugar = httpLogger.Sugar()

	// подключаем базу данных, без ping не стартуем
	db, err := config.NewMongo(context.Background(), cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			sugar.Warnf("mongo disconnect: %v", err)
		}
	}()
	sugar.Infof("connected to MongoDB, database %q", db.DB.Name())

	// создаём репы
	usersRepo := repository.NewUsersRepository(db.Collection(cfg.DB.Collection), cfg.DB.QueryTimeout)
	if err := usersRepo.EnsureIndexes(context.Background()); err != nil {
		sugar.Fatal(err)
	}

	var users service.UsersRepo = usersRepo
	if opts := tracingOptions(cfg.Observability); len(opts) > 0 {
		traced, err := repository.NewTracedUsersRepo(usersRepo, opts...)
		if err != nil {
			sugar.Fatal(err)
		}
		users = traced
	}

	// создаём сервис и хандлер
	svc := service.NewServices(service.Repositories{Users: users})
	handler := api.NewHandler(svc, httpLogger)
	router := h.NewRouter(handler, h.Options{
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Swagger:      cfg.Swagger.Enabled,
	})

	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infof("server started on %s", addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugar.Errorf("server stopped with error: %v", err)
		return
	}
	sugar.Info("server gracefully stopped")
}

// configPath возвращает путь к YAML-конфигу. Если CONFIG_PATH не задан
// и файла по умолчанию нет, возвращается пустая строка: конфиг соберётся
// из дефолтов и окружения. Явно заданный путь обязан существовать.
func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigPath); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return defaultConfigPath
}

func tracingOptions(cfg config.ObservabilityConfig) []repository.TracingOption {
	var opts []repository.TracingOption
	if cfg.Tracing {
		opts = append(opts, repository.WithDefaultTracer())
	}
	if cfg.Metrics {
		opts = append(opts, repository.WithDefaultMeter())
	}
	return opts
}
