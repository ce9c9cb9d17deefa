package scheduler

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

const refreshTimeout = 30 * time.Second

var knownSourceTypes = []models.SourceType{
	models.SourceYouTube,
	models.SourceTikTok,
	models.SourceInstagram,
	models.SourceWhatsApp,
	models.SourceOther,
	models.SourceGeneric,
}

type LinkCounter interface {
	CountBySourceType(ctx context.Context) (map[models.SourceType]int64, error)
}

// StatsScheduler периодически обновляет метрику количества сохранённых ссылок.
type StatsScheduler struct {
	scheduler *gocron.Scheduler
	counter   LinkCounter
	logger    *slog.Logger
	interval  time.Duration
}

func NewStatsScheduler(counter LinkCounter, interval time.Duration, logger *slog.Logger) *StatsScheduler {
	return &StatsScheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		counter:   counter,
		logger:    logger,
		interval:  interval,
	}
}

func (s *StatsScheduler) Start() {
	s.logger.Info("Запуск планировщика статистики",
		"interval", s.interval.String(),
	)

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := s.RefreshStats(ctx); err != nil {
			s.logger.Error("Ошибка при обновлении статистики ссылок",
				"error", err,
			)
		}
	})

	if err != nil {
		s.logger.Error("Ошибка при настройке планировщика",
			"error", err,
		)

		return
	}

	s.scheduler.StartAsync()
}

func (s *StatsScheduler) Stop() {
	s.logger.Info("Остановка планировщика статистики")
	s.scheduler.Stop()
}

// RefreshStats выставляет значение для каждого известного source_type,
// отсутствующие в хранилище типы получают 0.
func (s *StatsScheduler) RefreshStats(ctx context.Context) error {
	counts, err := s.counter.CountBySourceType(ctx)
	if err != nil {
		return err
	}

	for _, sourceType := range knownSourceTypes {
		metrics.UpdateLinksCount(string(sourceType), float64(counts[sourceType]))
	}

	for sourceType, count := range counts {
		if !slices.Contains(knownSourceTypes, sourceType) {
			metrics.UpdateLinksCount(string(sourceType), float64(count))
		}
	}

	s.logger.Debug("Статистика ссылок обновлена", "sourceTypes", len(counts))

	return nil
}
