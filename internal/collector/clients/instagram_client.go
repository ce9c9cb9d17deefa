package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/httputil"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/go-resty/resty/v2"
)

const InstagramAPIService = "instagram_api"

type InstagramMediaType string

const (
	InstagramPost InstagramMediaType = "post"
	InstagramReel InstagramMediaType = "reel"
)

type CaptionEdges struct {
	Edges []struct {
		Node struct {
			Text string `json:"text"`
		} `json:"node"`
	} `json:"edges"`
}

// InstagramMedia - общий вид медиа-объекта: его отдаёт scraper API и он же
// встроен в HTML страницы рилса как graphql.shortcode_media.
type InstagramMedia struct {
	Shortcode    string       `json:"shortcode"`
	Title        string       `json:"title"`
	Caption      CaptionEdges `json:"edge_media_to_caption"`
	ThumbnailSrc string       `json:"thumbnail_src"`
	DisplayURL   string       `json:"display_url"`
	VideoURL     string       `json:"video_url"`
	IsVideo      bool         `json:"is_video"`

	Error json.RawMessage `json:"error"`
	Raw   json.RawMessage `json:"-"`
}

func (m *InstagramMedia) CaptionText() string {
	if len(m.Caption.Edges) == 0 {
		return ""
	}

	return m.Caption.Edges[0].Node.Text
}

// HasError сообщает, что поле error присутствует и непусто.
func (m *InstagramMedia) HasError() bool {
	trimmed := bytes.TrimSpace(m.Error)
	if len(trimmed) == 0 {
		return false
	}

	switch string(trimmed) {
	case "null", "false", `""`, "0":
		return false
	default:
		return true
	}
}

type InstagramMediaGetter interface {
	GetMedia(ctx context.Context, canonicalURL string, mediaType InstagramMediaType) (*InstagramMedia, error)
}

type InstagramClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

func NewInstagramClient(cfg *config.Config, logger *slog.Logger) *InstagramClient {
	baseURL := cfg.InstagramAPIBaseURL
	if baseURL == "" {
		baseURL = "https://" + cfg.InstagramAPIHost
	}

	client := httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{
		ServiceName: InstagramAPIService,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Headers: map[string]string{
			"x-rapidapi-host": cfg.InstagramAPIHost,
			"x-rapidapi-key":  cfg.InstagramAPIKey,
		},
	})

	return &InstagramClient{
		client:  client,
		baseURL: baseURL,
		apiKey:  cfg.InstagramAPIKey,
		logger:  logger,
	}
}

func (c *InstagramClient) GetMedia(ctx context.Context, canonicalURL string, mediaType InstagramMediaType) (*InstagramMedia, error) {
	if c.apiKey == "" {
		return nil, &domainerrors.ErrUpstreamUnavailable{
			Service: InstagramAPIService,
			Cause:   errors.New("API ключ не задан"),
		}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("reel_post_code_or_url", canonicalURL).
		SetQueryParam("type", string(mediaType)).
		Get("/get_media_data.php")
	if err := checkResponse(InstagramAPIService, resp, err); err != nil {
		return nil, err
	}

	var media InstagramMedia
	if err := json.Unmarshal(resp.Body(), &media); err != nil {
		return nil, &domainerrors.ErrMalformedUpstreamResponse{Service: InstagramAPIService, Cause: err}
	}

	if media.HasError() {
		return nil, &domainerrors.ErrMalformedUpstreamResponse{
			Service: InstagramAPIService,
			Cause:   fmt.Errorf("поле error в ответе: %s", media.Error),
		}
	}

	media.Raw = resp.Body()

	return &media, nil
}
