package notify

import (
	"context"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

// LinkEventPublisher сообщает подписчикам (UI) о новой сохранённой ссылке.
// Ошибка публикации не должна влиять на результат обработки ссылки.
type LinkEventPublisher interface {
	PublishLinkSaved(ctx context.Context, record *models.LinkRecord) error
	Close() error
}

type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishLinkSaved(_ context.Context, _ *models.LinkRecord) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
