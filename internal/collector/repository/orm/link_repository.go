package orm

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/metrics"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/database"
	customerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
	"github.com/jackc/pgx/v5"
)

var linkColumns = []string{
	"id", "url", "platform", "title", "description", "thumbnail_url", "video_url",
	"source_type", "channel", "summary", "tags", "labels", "watched", "metadata", "created_at",
}

type LinkRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewLinkRepository(db *database.PostgresDB) *LinkRepository {
	return &LinkRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *LinkRepository) Save(ctx context.Context, link *models.LinkRecord) error {
	labels := link.Labels
	if labels == nil {
		labels = []string{}
	}

	var metadata any
	if len(link.Metadata) > 0 {
		metadata = string(link.Metadata)
	}

	insertQuery := r.sq.Insert("links").
		SetMap(map[string]any{
			"url":           link.URL,
			"platform":      link.Platform,
			"title":         link.Title,
			"description":   link.Description,
			"thumbnail_url": link.ThumbnailURL,
			"video_url":     link.VideoURL,
			"source_type":   string(link.SourceType),
			"channel":       string(link.Channel),
			"summary":       link.Summary,
			"tags":          link.Tags,
			"labels":        labels,
			"watched":       link.Watched,
			"metadata":      metadata,
		}).
		Suffix("RETURNING id, created_at")

	query, args, err := insertQuery.ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: "вставка ссылки", Cause: err}
	}

	start := time.Now()
	err = r.db.Pool.QueryRow(ctx, query, args...).Scan(&link.ID, &link.CreatedAt)

	observe("insert", start, err)

	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: "сохранение ссылки", Cause: err}
	}

	return nil
}

func (r *LinkRepository) List(ctx context.Context, limit uint64) ([]*models.LinkRecord, error) {
	selectQuery := r.sq.Select(linkColumns...).
		From("links").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	query, args, err := selectQuery.ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: "получение списка ссылок", Cause: err}
	}

	start := time.Now()

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		observe("select", start, err)
		return nil, &customerrors.ErrSQLExecution{Operation: "получение списка ссылок", Cause: err}
	}

	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.LinkRecord, error) {
		return scanLink(row)
	})

	observe("select", start, err)

	if err != nil {
		return nil, &customerrors.ErrSQLScan{Entity: "ссылка", Cause: err}
	}

	return links, nil
}

func (r *LinkRepository) CountBySourceType(ctx context.Context) (map[models.SourceType]int64, error) {
	countQuery := r.sq.Select("source_type", "COUNT(*)").
		From("links").
		GroupBy("source_type")

	query, args, err := countQuery.ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: "подсчёт ссылок", Cause: err}
	}

	start := time.Now()

	rows, err := r.db.Pool.Query(ctx, query, args...)
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

	if err := row.Scan(
		&link.ID, &link.URL, &link.Platform, &link.Title, &link.Description,
		&link.ThumbnailURL, &link.VideoURL, &sourceType, &channel, &link.Summary,
		&link.Tags, &link.Labels, &link.Watched, &metadata, &link.CreatedAt,
	); err != nil {
		return nil, err
	}

	link.SourceType = models.SourceType(sourceType)
	link.Channel = models.Channel(channel)

	if len(metadata) > 0 {
		link.Metadata = json.RawMessage(metadata)
	}

	return &link, nil
}

func observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.RecordDatabaseQuery(operation, status, time.Since(start))
}
