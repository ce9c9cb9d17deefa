package repository

import (
	"log/slog"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/repository/orm"
	sqlrepo "github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/repository/sql"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/database"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
)

type Factory struct {
	db     *database.PostgresDB
	config *config.Config
	logger *slog.Logger
}

func NewFactory(db *database.PostgresDB, config *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		db:     db,
		config: config,
		logger: logger,
	}
}

func (f *Factory) CreateLinkRepository() (LinkRepository, error) {
	switch f.config.DatabaseAccessType {
	case config.SquirrelAccess:
		f.logger.Info("Создание ORM (Squirrel) репозитория ссылок")
		return orm.NewLinkRepository(f.db), nil
	case config.SQLAccess:
		f.logger.Info("Создание SQL репозитория ссылок")
		return sqlrepo.NewLinkRepository(f.db), nil
	default:
		return nil, &errors.ErrUnknownDBAccessType{AccessType: string(f.config.DatabaseAccessType)}
	}
}
