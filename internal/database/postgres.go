package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	// file driver необходим для миграций базы данных.
	_ "github.com/golang-migrate/migrate/v4/source/file"

	// pgx/stdlib регистрирует драйвер "pgx" для database/sql, через него работают миграции.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
)

const (
	maxInt32          = 1<<31 - 1
	applicationName   = "linkvault"
	connectTimeout    = 5 * time.Second
	healthCheckPeriod = 30 * time.Second
)

type PostgresDB struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
}

func NewPostgresDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при парсинге строки подключения к PostgreSQL: %w", err)
	}

	poolConfig.MaxConns = clampMaxConns(cfg.DatabaseMaxConn)
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пула соединений PostgreSQL: %w", err)
	}

	db := &PostgresDB{
		Pool:   pool,
		Logger: logger,
	}

	if err := db.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка при проверке соединения с PostgreSQL: %w", err)
	}

	logger.Info("Соединение с PostgreSQL успешно установлено",
		"maxConns", poolConfig.MaxConns,
	)

	return db, nil
}

// clampMaxConns переводит настройку в int32; 0 оставляет значение pgxpool по умолчанию.
func clampMaxConns(value int) int32 {
	switch {
	case value <= 0:
		return 0
	case value >= maxInt32:
		return maxInt32
	default:
		return int32(value)
	}
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		db.Logger.Info("Соединение с PostgreSQL закрыто")
	}
}

// Ping используется проверкой /health сервера метрик.
func (db *PostgresDB) Ping(ctx context.Context) error {
	start := time.Now()

	err := db.Pool.Ping(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.RecordDatabaseQuery("ping", status, time.Since(start))

	return err
}
