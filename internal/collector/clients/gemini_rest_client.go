package clients

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/httputil"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	"github.com/go-resty/resty/v2"
)

const GeminiService = "gemini"

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type GeminiRESTClient struct {
	client *resty.Client
	apiKey string
}

func NewGeminiRESTClient(cfg *config.Config, logger *slog.Logger) *GeminiRESTClient {
	return &GeminiRESTClient{
		client: httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{
			ServiceName: GeminiService,
			BaseURL:     strings.TrimRight(cfg.GeminiBaseURL, "/"),
			// Путь содержит имя модели: у каждой модели свой breaker.
			BreakerKey: httputil.ByPath,
		}),
		apiKey: cfg.GeminiAPIKey,
	}
}

// GenerateContent возвращает тело ответа generateContent без разбора:
// форма ответа различается между моделями и версиями API.
func (c *GeminiRESTClient) GenerateContent(ctx context.Context, model, prompt string) ([]byte, error) {
	body := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		Post("/v1/models/" + url.PathEscape(model) + ":generateContent")
	if err := checkResponse(GeminiService+":"+model, resp, err); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}
