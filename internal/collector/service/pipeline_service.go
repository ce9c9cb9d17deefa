package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/enrichment"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/middleware"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

type Outcome string

const (
	// OutcomeNoURL - в сообщении нет ссылки, внешние вызовы не выполнялись.
	OutcomeNoURL Outcome = "no_url"
	// OutcomeSaved - запись сохранена вместе с summary и тегами.
	OutcomeSaved Outcome = "saved"
	// OutcomePartial - обогащение не удалось, запись сохранена без него.
	OutcomePartial Outcome = "partial"
	// OutcomePersistFailed - запись не сохранена.
	OutcomePersistFailed Outcome = "persist_failed"
)

const enrichmentWarning = "AI enrichment unavailable, link saved without summary and tags"

type Submission struct {
	Text    string
	Channel models.Channel
}

type Result struct {
	Outcome  Outcome
	URL      string
	Platform models.Platform
	Record   *models.LinkRecord
	Enriched bool
	Warning  string
}

type PipelineService struct {
	classifier PlatformClassifier
	resolver   MetadataResolver
	enricher   LinkEnricher
	writer     *RecordWriter
	repo       LinkRepository
	publisher  LinkEventPublisher
	tracer     trace.Tracer
	logger     *slog.Logger
}

func NewPipelineService(
	classifier PlatformClassifier,
	resolver MetadataResolver,
	enricher LinkEnricher,
	repo LinkRepository,
	publisher LinkEventPublisher,
	logger *slog.Logger,
) *PipelineService {
	return &PipelineService{
		classifier: classifier,
		resolver:   resolver,
		enricher:   enricher,
		writer:     NewRecordWriter(repo, logger),
		repo:       repo,
		publisher:  publisher,
		tracer:     otel.Tracer("linkvault/pipeline"),
		logger:     logger,
	}
}

// Process проводит сообщение через все стадии за один проход, без повторов.
// Ошибка возвращается только для OutcomePersistFailed.
func (s *PipelineService) Process(ctx context.Context, submission Submission) (*Result, error) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "pipeline.process",
		trace.WithAttributes(attribute.String("channel", string(submission.Channel))),
	)
	defer span.End()

	logger := s.logger.With(
		"request_id", middleware.RequestIDFromContext(ctx),
		"channel", submission.Channel,
	)

	result, err := s.process(ctx, submission, logger)

	span.SetAttributes(attribute.String("outcome", string(result.Outcome)))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	metrics.RecordPipelineOutcome(string(submission.Channel), string(result.Outcome), time.Since(start))

	return result, err
}

func (s *PipelineService) process(ctx context.Context, submission Submission, logger *slog.Logger) (*Result, error) {
	linkURL, ok := common.ExtractURL(submission.Text)
	if !ok {
		logger.Info("Сообщение пропущено", "reason", &errors.ErrNoURLFound{Message: submission.Text})
		return &Result{Outcome: OutcomeNoURL}, nil
	}

	platform := s.classifier.Classify(linkURL)

	logger = logger.With("url", linkURL, "platform", platform)
	logger.Info("Ссылка получена")

	result := &Result{URL: linkURL, Platform: platform}

	meta := s.resolveMetadata(ctx, platform, linkURL, logger)

	enriched, err := s.enrich(ctx, linkURL, meta)
	if err != nil {
		logger.Warn("Обогащение не удалось, сохраняем ссылку без него", "error", err)

		result.Warning = enrichmentWarning
	}

	record, err := s.persist(ctx, Draft{
		URL:        linkURL,
		Platform:   platform,
		Channel:    submission.Channel,
		Metadata:   meta,
		Enrichment: enriched,
	})
	if err != nil {
		result.Outcome = OutcomePersistFailed
		return result, err
	}

	result.Record = record
	result.Enriched = enriched != nil

	if result.Enriched {
		result.Outcome = OutcomeSaved
	} else {
		result.Outcome = OutcomePartial
	}

	s.publish(ctx, record, logger)

	return result, nil
}

func (s *PipelineService) resolveMetadata(
	ctx context.Context,
	platform models.Platform,
	linkURL string,
	logger *slog.Logger,
) *models.LinkMetadata {
	ctx, span := s.tracer.Start(ctx, "pipeline.metadata")
	defer span.End()

	resolution := s.resolver.Resolve(ctx, platform, linkURL)

	span.SetAttributes(
		attribute.String("strategy", resolution.Strategy),
		attribute.Int("attempts", resolution.Attempts),
	)

	if !resolution.Resolved() {
		logger.Info("Метаданные недоступны, сохраняем без них", "attempts", resolution.Attempts)
		return nil
	}

	logger.Info("Метаданные получены",
		"strategy", resolution.Strategy,
		"attempts", resolution.Attempts,
	)

	return resolution.Metadata
}

func (s *PipelineService) enrich(ctx context.Context, linkURL string, meta *models.LinkMetadata) (*models.EnrichmentResult, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.enrich")
	defer span.End()

	in := enrichment.Input{URL: linkURL}
	if meta != nil {
		in.Title = meta.Title
		in.Description = meta.Description
		in.Platform = meta.Platform
	}

	result, err := s.enricher.Enrich(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return result, nil
}

func (s *PipelineService) persist(ctx context.Context, draft Draft) (*models.LinkRecord, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.persist")
	defer span.End()

	record, err := s.writer.Write(ctx, draft)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(attribute.Int64("link_id", record.ID))

	return record, nil
}

func (s *PipelineService) publish(ctx context.Context, record *models.LinkRecord, logger *slog.Logger) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishLinkSaved(ctx, record); err != nil {
		logger.Warn("Не удалось опубликовать событие о сохранении ссылки",
			"error", err,
			"linkID", record.ID,
		)
	}
}

// RecentLinks возвращает последние сохранённые ссылки, новые первыми.
func (s *PipelineService) RecentLinks(ctx context.Context, limit uint64) ([]*models.LinkRecord, error) {
	links, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error("Ошибка при получении списка ссылок", "error", err)
		return nil, err
	}

	return links, nil
}
