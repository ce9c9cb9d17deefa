package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	postgresdriver "github.com/golang-migrate/migrate/v4/database/postgres"
)

// RunMigrations применяет все миграции из sourceURL, например "file://migrations".
func RunMigrations(databaseURL, sourceURL string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("не удалось открыть соединение с базой данных: %w", err)
	}
	defer db.Close()

	driver, err := postgresdriver.WithInstance(db, &postgresdriver.Config{})
	if err != nil {
		return fmt.Errorf("не удалось создать драйвер миграций: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("не удалось создать инстанс миграций: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Миграции уже применены")
			return nil
		}

		return fmt.Errorf("не удалось применить миграции: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info("Миграции успешно применены", "version", version)

	return nil
}
