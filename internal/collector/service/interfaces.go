package service

import (
	"context"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/enrichment"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/metadata"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

type PlatformClassifier interface {
	Classify(url string) models.Platform
}

type MetadataResolver interface {
	Resolve(ctx context.Context, platform models.Platform, rawURL string) metadata.Resolution
}

type LinkEnricher interface {
	Enrich(ctx context.Context, in enrichment.Input) (*models.EnrichmentResult, error)
}

type LinkRepository interface {
	Save(ctx context.Context, link *models.LinkRecord) error

	List(ctx context.Context, limit uint64) ([]*models.LinkRecord, error)
}

type LinkEventPublisher interface {
	PublishLinkSaved(ctx context.Context, record *models.LinkRecord) error
}
