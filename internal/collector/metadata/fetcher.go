package metadata

import (
	"context"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

// Fetcher - одна стратегия получения метаданных. Любой сбой внешнего вызова
// возвращается ошибкой и никогда не выходит за пределы цепочки.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, rawURL string) (*models.LinkMetadata, error)
}
