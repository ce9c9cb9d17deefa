package repository

import (
	"context"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

// LinkRepository хранит записи ссылок. Каждое сохранение создаёт новую строку:
// повторная отправка того же URL не дедуплицируется.
type LinkRepository interface {
	Save(ctx context.Context, link *models.LinkRecord) error
	List(ctx context.Context, limit uint64) ([]*models.LinkRecord, error)
	CountBySourceType(ctx context.Context) (map[models.SourceType]int64, error)
}
