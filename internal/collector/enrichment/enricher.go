package enrichment

import (
	"context"
	"log/slog"

	"github.com/go-faster/errors"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

const (
	callOK          = "ok"
	callEmpty       = "empty"
	callUnavailable = "unavailable"
)

type Enricher struct {
	models []CompletionModel
	logger *slog.Logger
}

func NewEnricher(completionModels []CompletionModel, logger *slog.Logger) *Enricher {
	return &Enricher{
		models: completionModels,
		logger: logger,
	}
}

// Enrich строит промпт, получает ответ первой доступной модели и разбирает его.
// Пустой ответ доступной модели - отказ без перехода к следующей.
func (e *Enricher) Enrich(ctx context.Context, in Input) (*models.EnrichmentResult, error) {
	text, model, err := e.complete(ctx, BuildPrompt(in))
	if err != nil {
		return nil, err
	}

	result, err := ParseReply(text)
	if err != nil {
		var invalid *domainerrors.ErrInvalidCompletionJSON
		if errors.As(err, &invalid) {
			e.logger.Warn("Ответ модели не разобран",
				"model", model,
				"raw", invalid.Raw,
				"cleaned", invalid.Cleaned,
			)
		}

		return nil, errors.Wrapf(err, "ответ модели %s", model)
	}

	return result, nil
}

func (e *Enricher) complete(ctx context.Context, prompt string) (string, string, error) {
	tried := make([]string, 0, len(e.models))

	var last error

	for _, m := range e.models {
		tried = append(tried, m.Name())

		text, err := m.Complete(ctx, prompt)
		if err != nil {
			metrics.RecordModelCall(m.Name(), callUnavailable)
			e.logger.Warn("Модель недоступна, пробуем следующую",
				"model", m.Name(),
				"error", err,
			)

			last = err

			continue
		}

		if text == "" {
			metrics.RecordModelCall(m.Name(), callEmpty)
			return "", m.Name(), &domainerrors.ErrEmptyCompletion{Model: m.Name()}
		}

		metrics.RecordModelCall(m.Name(), callOK)
		e.logger.Info("Модель ответила", "model", m.Name())

		return text, m.Name(), nil
	}

	if last == nil {
		last = errors.New("список моделей пуст")
	}

	return "", "", &domainerrors.ErrAllModelsFailed{Models: tried, Last: last}
}
