package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

type KafkaPublisher struct {
	producer *kafka.Writer
	logger   *slog.Logger
	topic    string
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	producer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Logger:                 kafka.LoggerFunc(logger.Debug),
		ErrorLogger:            kafka.LoggerFunc(logger.Error),
	}

	return &KafkaPublisher{
		producer: producer,
		logger:   logger,
		topic:    topic,
	}
}

func (p *KafkaPublisher) PublishLinkSaved(ctx context.Context, record *models.LinkRecord) error {
	value, err := json.Marshal(models.NewLinkSavedEvent(record))
	if err != nil {
		return fmt.Errorf("ошибка при сериализации события: %w", err)
	}

	err = p.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(record.ID, 10)),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.logger.Error("Ошибка при отправке события в Kafka",
			"error", err,
			"topic", p.topic,
			"linkID", record.ID,
		)

		return fmt.Errorf("ошибка при отправке события в Kafka: %w", err)
	}

	p.logger.Debug("Событие о сохранении ссылки отправлено в Kafka",
		"topic", p.topic,
		"linkID", record.ID,
	)

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
