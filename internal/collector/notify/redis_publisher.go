package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisPublisher(redisURL, password string, db int, channel string, logger *slog.Logger) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ошибка при подключении к Redis: %w", err)
	}

	logger.Info("Соединение с Redis успешно установлено")

	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}, nil
}

func (p *RedisPublisher) PublishLinkSaved(ctx context.Context, record *models.LinkRecord) error {
	payload, err := json.Marshal(models.NewLinkSavedEvent(record))
	if err != nil {
		return fmt.Errorf("ошибка при сериализации события: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		p.logger.Error("Ошибка при публикации события в Redis",
			"error", err,
			"channel", p.channel,
			"linkID", record.ID,
		)

		return fmt.Errorf("ошибка при публикации события в Redis: %w", err)
	}

	p.logger.Debug("Событие о сохранении ссылки опубликовано в Redis",
		"channel", p.channel,
		"linkID", record.ID,
		"receivers", receivers,
	)

	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
