package notify

import (
	"context"
	"log/slog"

	"go.uber.org/multierr"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

type FallbackPublisher struct {
	primary   LinkEventPublisher
	secondary LinkEventPublisher
	logger    *slog.Logger
}

func NewFallbackPublisher(primary, secondary LinkEventPublisher, logger *slog.Logger) *FallbackPublisher {
	return &FallbackPublisher{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

func (p *FallbackPublisher) PublishLinkSaved(ctx context.Context, record *models.LinkRecord) error {
	err := p.primary.PublishLinkSaved(ctx, record)
	if err == nil {
		return nil
	}

	p.logger.Warn("Основной транспорт событий недоступен, переключаемся на резервный",
		"primaryError", err,
		"linkID", record.ID,
	)

	if fallbackErr := p.secondary.PublishLinkSaved(ctx, record); fallbackErr != nil {
		return err
	}

	p.logger.Info("Событие отправлено через резервный транспорт",
		"linkID", record.ID,
	)

	return nil
}

func (p *FallbackPublisher) Close() error {
	return multierr.Append(p.primary.Close(), p.secondary.Close())
}
