package clients

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"google.golang.org/genai"
)

type GeminiSDKClient struct {
	client *genai.Client
}

func NewGeminiSDKClient(ctx context.Context, cfg *config.Config) (*GeminiSDKClient, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY обязателен для AI_BACKEND=SDK")
	}

	cc := &genai.ClientConfig{
		APIKey:     strings.TrimSpace(cfg.GeminiAPIKey),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.ExternalRequestTimeout},
	}
	if strings.TrimSpace(cfg.GeminiBaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.GeminiBaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	return &GeminiSDKClient{client: client}, nil
}

// GenerateText возвращает склеенный текст первого кандидата.
func (c *GeminiSDKClient) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		CandidateCount: 1,
	})
	if err != nil {
		return "", classifySDKError(model, err)
	}

	return resp.Text(), nil
}

func classifySDKError(model string, err error) error {
	service := GeminiService + ":" + model

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domainerrors.ErrUpstreamUnavailable{
			Service: service,
			Cause:   &domainerrors.HTTPError{StatusCode: apiErr.Code},
		}
	}

	return &domainerrors.ErrUpstreamUnavailable{Service: service, Cause: err}
}
