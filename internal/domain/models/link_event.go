package models

import "time"

// LinkSavedEvent публикуется после сохранения записи, чтобы UI мог обновить список без перезагрузки.
type LinkSavedEvent struct {
	ID         int64      `json:"id"`
	URL        string     `json:"url"`
	Title      *string    `json:"title,omitempty"`
	SourceType SourceType `json:"source_type"`
	Channel    Channel    `json:"channel"`
	Tags       []string   `json:"tags,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewLinkSavedEvent(record *LinkRecord) *LinkSavedEvent {
	return &LinkSavedEvent{
		ID:         record.ID,
		URL:        record.URL,
		Title:      record.Title,
		SourceType: record.SourceType,
		Channel:    record.Channel,
		Tags:       record.Tags,
		CreatedAt:  record.CreatedAt,
	}
}
