package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
)

type TransportType string

const (
	NoTransport    TransportType = "NONE"
	KafkaTransport TransportType = "KAFKA"
	RedisTransport TransportType = "REDIS"
)

type PublisherFactory struct {
	config *config.Config
	logger *slog.Logger
}

func NewPublisherFactory(config *config.Config, logger *slog.Logger) *PublisherFactory {
	return &PublisherFactory{
		config: config,
		logger: logger,
	}
}

// CreatePublisher строит публикатор по EVENT_TRANSPORT. При EVENT_FALLBACK_ENABLED
// второй из транспортов Kafka/Redis используется как резервный.
func (f *PublisherFactory) CreatePublisher() (LinkEventPublisher, error) {
	transport := TransportType(strings.ToUpper(strings.TrimSpace(f.config.EventTransport)))

	f.logger.Info("Создание публикатора событий",
		"transport", transport,
		"fallback", f.config.EventFallbackEnabled,
	)

	switch transport {
	case NoTransport, "":
		return NewNoopPublisher(), nil
	case KafkaTransport:
		primary := f.createKafka()
		if !f.config.EventFallbackEnabled {
			return primary, nil
		}

		secondary, err := f.createRedis()
		if err != nil {
			f.logger.Warn("Резервный транспорт Redis недоступен, работаем без него", "error", err)
			return primary, nil
		}

		return NewFallbackPublisher(primary, secondary, f.logger), nil
	case RedisTransport:
		primary, err := f.createRedis()
		if err != nil {
			return nil, err
		}

		if !f.config.EventFallbackEnabled {
			return primary, nil
		}

		return NewFallbackPublisher(primary, f.createKafka(), f.logger), nil
	default:
		return nil, &errors.ErrUnknownEventTransport{Transport: string(transport)}
	}
}

func (f *PublisherFactory) createKafka() *KafkaPublisher {
	brokers := strings.Split(f.config.KafkaBrokers, ",")
	return NewKafkaPublisher(brokers, f.config.TopicLinkEvents, f.logger)
}

func (f *PublisherFactory) createRedis() (*RedisPublisher, error) {
	publisher, err := NewRedisPublisher(f.config.RedisURL, f.config.RedisPassword, f.config.RedisDB, f.config.RedisChannel, f.logger)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании публикатора Redis: %w", err)
	}

	return publisher, nil
}
