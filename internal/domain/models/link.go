package models

import (
	"encoding/json"
	"time"
)

type Platform string

const (
	YouTube   Platform = "youtube"
	TikTok    Platform = "tiktok"
	Instagram Platform = "instagram"
	Twitter   Platform = "twitter"
	Generic   Platform = "generic"
)

type SourceType string

const (
	SourceYouTube   SourceType = "youtube"
	SourceTikTok    SourceType = "tiktok"
	SourceInstagram SourceType = "instagram"
	SourceWhatsApp  SourceType = "whatsapp"
	SourceOther     SourceType = "other"
	SourceGeneric   SourceType = "generic"
)

// SourceTypeFor переводит тег платформы в значение source_type хранимой записи.
func SourceTypeFor(platform Platform) SourceType {
	//nolint:exhaustive // twitter и generic сводятся к общим значениям
	switch platform {
	case YouTube:
		return SourceYouTube
	case TikTok:
		return SourceTikTok
	case Instagram:
		return SourceInstagram
	case Twitter:
		return SourceOther
	default:
		return SourceGeneric
	}
}

type Channel string

const (
	ChannelForm     Channel = "form"
	ChannelWhatsApp Channel = "whatsapp"
)

// LinkMetadata - результат одной стратегии получения метаданных.
// Все поля необязательны: отсутствие данных не является ошибкой.
type LinkMetadata struct {
	Title        *string
	Description  *string
	ThumbnailURL *string
	VideoURL     *string
	Platform     *string
	Raw          json.RawMessage
}

// HasContent сообщает, есть ли у результата заголовок или описание.
func (m *LinkMetadata) HasContent() bool {
	if m == nil {
		return false
	}

	return m.Title != nil || m.Description != nil
}

type EnrichmentResult struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

type LinkRecord struct {
	ID           int64           `json:"id"`
	URL          string          `json:"url"`
	Platform     *string         `json:"platform"`
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	ThumbnailURL *string         `json:"thumbnail_url"`
	VideoURL     *string         `json:"video_url"`
	SourceType   SourceType      `json:"source_type"`
	Channel      Channel         `json:"channel"`
	Summary      *string         `json:"summary"`
	Tags         []string        `json:"tags"`
	Labels       []string        `json:"labels"`
	Watched      bool            `json:"watched"`
	Metadata     json.RawMessage `json:"metadata"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StringPtr возвращает nil для пустой строки.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func StringValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
