package metadata

import (
	"context"
	"log/slog"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/clients"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

const (
	YouTubeOEmbedStrategy = "youtube_oembed"
	TikTokOEmbedStrategy  = "tiktok_oembed"

	attemptHit    = "hit"
	attemptEmpty  = "empty"
	attemptFailed = "failed"
)

type Table map[models.Platform][]Fetcher

type Sources struct {
	YouTube               clients.OEmbedLookup
	TikTok                clients.OEmbedLookup
	Instagram             clients.InstagramMediaGetter
	Pages                 clients.PageGetter
	InstagramCanonicalURL string
}

// DefaultTable задаёт порядок стратегий для каждой платформы.
func DefaultTable(src Sources) Table {
	openGraph := NewOpenGraphFetcher(src.Pages)

	return Table{
		models.YouTube: {
			NewOEmbedFetcher(YouTubeOEmbedStrategy, string(models.YouTube), src.YouTube),
		},
		models.TikTok: {
			NewOEmbedFetcher(TikTokOEmbedStrategy, string(models.TikTok), src.TikTok),
		},
		models.Instagram: {
			NewInstagramAPIFetcher(src.Instagram, src.InstagramCanonicalURL),
			NewInstagramReelFetcher(src.Pages),
			NewInstagramPostFetcher(src.Pages),
			openGraph,
		},
		models.Twitter: {openGraph},
		models.Generic: {openGraph},
	}
}

// LongestChain - наибольшее число стратегий, которое может перебрать один Resolve.
func (t Table) LongestChain() int {
	longest := 0

	for _, fetchers := range t {
		longest = max(longest, len(fetchers))
	}

	return longest
}

type Resolution struct {
	Metadata *models.LinkMetadata
	Strategy string
	Attempts int
}

// Resolved сообщает, дала ли какая-либо стратегия результат.
func (r Resolution) Resolved() bool {
	return r.Metadata != nil
}

type Chain struct {
	table  Table
	logger *slog.Logger
}

func NewChain(table Table, logger *slog.Logger) *Chain {
	return &Chain{
		table:  table,
		logger: logger,
	}
}

// Resolve перебирает стратегии платформы строго по очереди и возвращает первый
// результат с заголовком или описанием. Если стратегии исчерпаны, метаданные пусты.
func (c *Chain) Resolve(ctx context.Context, platform models.Platform, rawURL string) Resolution {
	fetchers, ok := c.table[platform]
	if !ok || len(fetchers) == 0 {
		c.logger.Warn("Метаданные не запрашивались",
			"url", rawURL,
			"error", &domainerrors.ErrUnsupportedPlatform{Platform: string(platform)},
		)

		return Resolution{}
	}

	for i, fetcher := range fetchers {
		if ctx.Err() != nil {
			c.logger.Info("Получение метаданных прервано", "url", rawURL, "error", ctx.Err())
			return Resolution{Attempts: i}
		}

		result, err := fetcher.Fetch(ctx, rawURL)
		if err != nil {
			metrics.RecordMetadataAttempt(string(platform), fetcher.Name(), attemptFailed)
			c.logger.Info("Стратегия не вернула метаданные",
				"strategy", fetcher.Name(),
				"url", rawURL,
				"error", err,
			)

			continue
		}

		if !result.HasContent() {
			metrics.RecordMetadataAttempt(string(platform), fetcher.Name(), attemptEmpty)
			c.logger.Info("Стратегия вернула пустые метаданные",
				"strategy", fetcher.Name(),
				"url", rawURL,
			)

			continue
		}

		metrics.RecordMetadataAttempt(string(platform), fetcher.Name(), attemptHit)
		c.logger.Info("Метаданные получены",
			"strategy", fetcher.Name(),
			"url", rawURL,
			"title", models.StringValue(result.Title),
		)

		return Resolution{
			Metadata: result,
			Strategy: fetcher.Name(),
			Attempts: i + 1,
		}
	}

	c.logger.Warn("Все стратегии получения метаданных исчерпаны",
		"platform", platform,
		"url", rawURL,
		"attempts", len(fetchers),
	)

	return Resolution{Attempts: len(fetchers)}
}
