package sql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/database"
	customerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
	"github.com/jackc/pgx/v5"
)

const (
	insertLinkQuery = `
INSERT INTO links (url, platform, title, description, thumbnail_url, video_url,
                   source_type, channel, summary, tags, labels, watched, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, created_at`

	listLinksQuery = `
SELECT id, url, platform, title, description, thumbnail_url, video_url,
       source_type, channel, summary, tags, labels, watched, metadata, created_at
FROM links
ORDER BY created_at DESC, id DESC
LIMIT $1`

	countBySourceTypeQuery = `SELECT source_type, COUNT(*) FROM links GROUP BY source_type`
)

type LinkRepository struct {
	db *database.PostgresDB
}

func NewLinkRepository(db *database.PostgresDB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) Save(ctx context.Context, link *models.LinkRecord) error {
	start := time.Now()

	err := r.db.Pool.QueryRow(ctx, insertLinkQuery,
		link.URL,
		link.Platform,
		link.Title,
		link.Description,
		link.ThumbnailURL,
		link.VideoURL,
		string(link.SourceType),
		string(link.Channel),
		link.Summary,
		link.Tags,
		nonNil(link.Labels),
		link.Watched,
		nullableJSON(link.Metadata),
	).Scan(&link.ID, &link.CreatedAt)

	observe("insert", start, err)

	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: "сохранение ссылки", Cause: err}
	}

	return nil
}

func (r *LinkRepository) List(ctx context.Context, limit uint64) ([]*models.LinkRecord, error) {
	start := time.Now()

	rows, err := r.db.Pool.Query(ctx, listLinksQuery, limit)
	if err != nil {
		observe("select", start, err)
		return nil, &customerrors.ErrSQLExecution{Operation: "получение списка ссылок", Cause: err}
	}
	defer rows.Close()

	links := make([]*models.LinkRecord, 0)

	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			observe("select", start, err)
			return nil, &customerrors.ErrSQLScan{Entity: "ссылка", Cause: err}
		}

		links = append(links, link)
	}

	err = rows.Err()
	observe("select", start, err)

	if err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: "итерация по ссылкам", Cause: err}
	}

	return links, nil
}

func (r *LinkRepository) CountBySourceType(ctx context.Context) (map[models.SourceType]int64, error) {
	start := time.Now()

	rows, err := r.db.Pool.Query(ctx, countBySourceTypeQuery)
	if err != nil {
		observe("count", start, err)
		return nil, &customerrors.ErrSQLExecution{Operation: "подсчёт ссылок", Cause: err}
	}
	defer rows.Close()

	counts := make(map[models.SourceType]int64)

	for rows.Next() {
		var (
			sourceType string
			count      int64
		)

		if err := rows.Scan(&sourceType, &count); err != nil {
			observe("count", start, err)
			return nil, &customerrors.ErrSQLScan{Entity: "счётчик ссылок", Cause: err}
		}

		counts[models.SourceType(sourceType)] = count
	}

	err = rows.Err()
	observe("count", start, err)

	if err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: "подсчёт ссылок", Cause: err}
	}

	return counts, nil
}

func scanLink(row pgx.Row) (*models.LinkRecord, error) {
	var (
		link       models.LinkRecord
		sourceType string
		channel    string
		metadata   []byte
	)

	err := row.Scan(
		&link.ID,
		&link.URL,
		&link.Platform,
		&link.Title,
		&link.Description,
		&link.ThumbnailURL,
		&link.VideoURL,
		&sourceType,
		&channel,
		&link.Summary,
		&link.Tags,
		&link.Labels,
		&link.Watched,
		&metadata,
		&link.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	link.SourceType = models.SourceType(sourceType)
	link.Channel = models.Channel(channel)

	if len(metadata) > 0 {
		link.Metadata = json.RawMessage(metadata)
	}

	return &link, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}

	return string(raw)
}

func observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.RecordDatabaseQuery(operation, status, time.Since(start))
}
