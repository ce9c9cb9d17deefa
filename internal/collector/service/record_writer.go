package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

// Draft - всё, что пайплайн знает о ссылке к моменту записи.
type Draft struct {
	URL        string
	Platform   models.Platform
	Channel    models.Channel
	Metadata   *models.LinkMetadata
	Enrichment *models.EnrichmentResult
}

type RecordWriter struct {
	repo   LinkRepository
	logger *slog.Logger
}

func NewRecordWriter(repo LinkRepository, logger *slog.Logger) *RecordWriter {
	return &RecordWriter{
		repo:   repo,
		logger: logger,
	}
}

// Write всегда вставляет новую строку. Повторная отправка того же URL создаёт дубликат.
func (w *RecordWriter) Write(ctx context.Context, draft Draft) (*models.LinkRecord, error) {
	record := buildRecord(draft)

	if err := w.repo.Save(ctx, record); err != nil {
		w.logger.Error("Ошибка при сохранении ссылки",
			"error", err,
			"url", record.URL,
		)

		return nil, &errors.ErrPersistence{Operation: "сохранение ссылки", Cause: err}
	}

	w.logger.Info("Ссылка сохранена",
		"linkID", record.ID,
		"url", record.URL,
		"sourceType", record.SourceType,
	)

	return record, nil
}

func buildRecord(draft Draft) *models.LinkRecord {
	channel := draft.Channel
	if channel == "" {
		channel = models.ChannelForm
	}

	record := &models.LinkRecord{
		URL:        draft.URL,
		SourceType: models.SourceTypeFor(draft.Platform),
		Channel:    channel,
		Labels:     []string{},
		Watched:    false,
	}

	if meta := draft.Metadata; meta != nil {
		record.Platform = storableText(meta.Platform)
		record.Title = storableText(meta.Title)
		record.Description = storableText(meta.Description)
		record.ThumbnailURL = storableText(meta.ThumbnailURL)
		record.VideoURL = storableText(meta.VideoURL)
		record.Metadata = meta.Raw
	}

	if result := draft.Enrichment; result != nil {
		record.Summary = storableText(models.StringPtr(strings.TrimSpace(result.Summary)))
		record.Tags = uniqueTags(result.Tags)
	}

	return record
}

// uniqueTags сохраняет порядок первого вхождения, сравнение без учёта регистра.
func uniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(sanitizeText(tag))
		if tag == "" {
			continue
		}

		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		result = append(result, tag)
	}

	return result
}

// storableText приводит строку к виду, который примет TEXT-колонка Postgres:
// валидный UTF-8 без нулевых байтов.
func storableText(value *string) *string {
	if value == nil {
		return nil
	}

	return models.StringPtr(sanitizeText(*value))
}

func sanitizeText(value string) string {
	value = strings.ToValidUTF8(value, "\uFFFD")
	return strings.ReplaceAll(value, "\x00", "")
}
