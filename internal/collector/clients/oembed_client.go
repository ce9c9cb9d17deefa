package clients

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/httputil"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/go-resty/resty/v2"
)

const (
	YouTubeOEmbedService = "youtube_oembed"
	TikTokOEmbedService  = "tiktok_oembed"
)

type OEmbedResponse struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
	ThumbnailURL string `json:"thumbnail_url"`

	Raw json.RawMessage `json:"-"`
}

type OEmbedLookup interface {
	Lookup(ctx context.Context, pageURL string) (*OEmbedResponse, error)
}

type OEmbedClient struct {
	client   *resty.Client
	endpoint string
	params   map[string]string
	service  string
	logger   *slog.Logger
}

func NewOEmbedClient(service, endpoint string, params map[string]string, cfg *config.Config, logger *slog.Logger) *OEmbedClient {
	return &OEmbedClient{
		client:   httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{ServiceName: service}),
		endpoint: endpoint,
		params:   params,
		service:  service,
		logger:   logger,
	}
}

func NewYouTubeOEmbedClient(cfg *config.Config, logger *slog.Logger) *OEmbedClient {
	return NewOEmbedClient(YouTubeOEmbedService, cfg.YouTubeOEmbedURL, map[string]string{"format": "json"}, cfg, logger)
}

func NewTikTokOEmbedClient(cfg *config.Config, logger *slog.Logger) *OEmbedClient {
	return NewOEmbedClient(TikTokOEmbedService, cfg.TikTokOEmbedURL, nil, cfg, logger)
}

func (c *OEmbedClient) Lookup(ctx context.Context, pageURL string) (*OEmbedResponse, error) {
	request := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("url", pageURL).
		SetQueryParams(c.params)

	resp, err := request.Get(c.endpoint)
	if err := checkResponse(c.service, resp, err); err != nil {
		return nil, err
	}

	var result OEmbedResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &domainerrors.ErrMalformedUpstreamResponse{Service: c.service, Cause: err}
	}

	result.Raw = resp.Body()

	return &result, nil
}
