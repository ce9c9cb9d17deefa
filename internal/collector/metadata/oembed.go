package metadata

import (
	"context"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/clients"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

type OEmbedFetcher struct {
	name     string
	platform string
	lookup   clients.OEmbedLookup
}

func NewOEmbedFetcher(name, platform string, lookup clients.OEmbedLookup) *OEmbedFetcher {
	return &OEmbedFetcher{
		name:     name,
		platform: platform,
		lookup:   lookup,
	}
}

func (f *OEmbedFetcher) Name() string {
	return f.name
}

// Fetch не заполняет описание: oEmbed его не отдаёт.
func (f *OEmbedFetcher) Fetch(ctx context.Context, rawURL string) (*models.LinkMetadata, error) {
	resp, err := f.lookup.Lookup(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return &models.LinkMetadata{
		Title:        models.StringPtr(resp.Title),
		ThumbnailURL: models.StringPtr(resp.ThumbnailURL),
		Platform:     models.StringPtr(f.platform),
		Raw:          resp.Raw,
	}, nil
}
