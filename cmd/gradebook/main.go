// Package main - точка входа для консольного журнала оценок.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: оценки, студенты, статистика и ранжирование
// - Application: use cases (Commands/Queries)
// - Infrastructure: хранилища сессии (memory, PostgreSQL, Redis), экспорт XLSX
// - Interface: текстовое меню
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/alem-hub/gradebook/config"

	// Application layer
	"github.com/alem-hub/gradebook/internal/application/command"
	"github.com/alem-hub/gradebook/internal/application/query"

	// Domain layer
	"github.com/alem-hub/gradebook/internal/domain/roster"

	// Infrastructure layer
	"github.com/alem-hub/gradebook/internal/infrastructure/export/excel"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/gradebook/internal/infrastructure/persistence/redis"

	// Interface layer
	"github.com/alem-hub/gradebook/internal/interface/console"

	// Packages
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/alem-hub/gradebook/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	// Контекст отменяется по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	sessionID := uuid.NewString()
	log := setupLogger(cfg).WithSessionID(sessionID)
	log.Info("starting gradebook",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Store(string(cfg.Store.Backend)),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ХРАНИЛИЩЕ СЕССИИ
	// ─────────────────────────────────────────────────────────────────────────
	store, closeConn, err := openStore(ctx, cfg, sessionID, log)
	if err != nil {
		return err
	}
	defer func() {
		defer closeConn()

		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("failed to close store", logger.Err(err))
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	addStudent := command.NewAddStudentHandler(store, log)
	deps := console.Dependencies{
		AddStudent:      addStudent,
		ListStudents:    query.NewListStudentsHandler(store),
		FindStudent:     query.NewFindStudentHandler(store),
		ClassStatistics: query.NewClassStatisticsHandler(store),
		TopPerformers:   query.NewTopPerformersHandler(store, cfg.Roster.TopDefault),
	}

	if cfg.Roster.SeedSample {
		if _, err := command.SeedSample(ctx, addStudent); err != nil {
			return fmt.Errorf("failed to seed sample roster: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ЗАПУСК МЕНЮ
	// Чтение stdin блокируется, поэтому меню работает в отдельной горутине,
	// а run ждёт либо его завершения, либо сигнала.
	// ─────────────────────────────────────────────────────────────────────────
	menu := console.New(os.Stdin, os.Stdout, deps, log)
	menuDone := make(chan error, 1)
	go func() {
		menuDone <- menu.Run(ctx)
	}()

	select {
	case err := <-menuDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("menu: %w", err)
		}
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ЭКСПОРТ ИТОГОВ
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Export.XLSXPath != "" {
		exportCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		exporter := excel.NewExporter(cfg.Export.XLSXPath)
		res, err := command.NewExportSummaryHandler(store, exporter, log).Handle(exportCtx)
		if err != nil {
			return fmt.Errorf("failed to export summary: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Summary of %d students written to %s\n", res.Students, exporter.Path())
	}

	log.Info("gradebook stopped")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func setupLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Output:    logger.OutputFor(cfg.Observability.LogOutput),
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		Format:    cfg.Observability.LogFormat,
		AddCaller: cfg.IsDevelopment(),
	}).With(logger.String("app", cfg.App.Name))
}

// sessionStore - хранилище журнала, которое умеет убрать за собой.
// Хранилища PostgreSQL и Redis дополнительно реализуют roster.Ranker.
type sessionStore interface {
	roster.Repository
	Close(ctx context.Context) error
}

// openStore выбирает бэкенд по конфигурации. Подключения к PostgreSQL и Redis
// повторяются с экспоненциальной задержкой. closeConn закрывает подключение
// и вызывается после store.Close.
func openStore(ctx context.Context, cfg *config.Config, sessionID string, log *logger.Logger) (store sessionStore, closeConn func(), err error) {
	storeLog := log.With(logger.Store(string(cfg.Store.Backend)))
	retrier := retry.StoreConnectRetrier(cfg.Store.ConnectAttempts, cfg.Store.ConnectDelay,
		func(attempt int, err error, delay time.Duration) {
			storeLog.Warn("store connection failed, retrying",
				logger.Int("attempt", attempt),
				logger.Duration("delay", delay),
				logger.Err(err),
			)
		},
	)

	switch cfg.Store.Backend {
	case config.StorePostgres:
		var conn *postgres.Connection
		err := retrier.Do(ctx, func(ctx context.Context) error {
			var err error
			conn, err = postgres.NewConnectionFromURL(ctx, cfg.Database.URL, postgres.PoolOptions{
				MaxConns:        int32(cfg.Database.MaxConns),
				MinConns:        int32(cfg.Database.MinConns),
				MaxConnLifetime: cfg.Database.ConnMaxLifetime,
				MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
			})
			if errors.Is(err, postgres.ErrInvalidURL) {
				return retry.Permanent(err)
			}
			return err
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		storeLog.Info("connected to PostgreSQL")
		return postgres.NewRosterStore(conn, sessionID), conn.Close, nil

	case config.StoreRedis:
		var cache *redis.Cache
		err := retrier.Do(ctx, func(ctx context.Context) error {
			var err error
			cache, err = redis.NewCache(ctx, redis.Config{
				URL:          cfg.Redis.URL,
				Host:         cfg.Redis.Host,
				Port:         cfg.Redis.Port,
				Password:     cfg.Redis.Password,
				DB:           cfg.Redis.DB,
				DialTimeout:  cfg.Redis.DialTimeout,
				ReadTimeout:  cfg.Redis.ReadTimeout,
				WriteTimeout: cfg.Redis.WriteTimeout,
			})
			if errors.Is(err, redis.ErrCacheConfig) {
				return retry.Permanent(err)
			}
			return err
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		storeLog.Info("connected to Redis")
		return redis.NewRosterStore(cache, sessionID, cfg.Redis.SessionTTL), func() { _ = cache.Close() }, nil

	default:
		return memory.NewRosterStore(), func() {}, nil
	}
}
