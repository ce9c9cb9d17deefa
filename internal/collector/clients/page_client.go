package clients

import (
	"context"
	"log/slog"

	"golang.org/x/net/html/charset"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common/httputil"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/go-resty/resty/v2"
)

const PageService = "page"

type PageGetter interface {
	GetPage(ctx context.Context, pageURL string) ([]byte, error)
}

// PageClient скачивает HTML страниц. Многие сайты отдают пустую страницу
// клиентам без браузерного User-Agent.
type PageClient struct {
	client *resty.Client
}

// NewPageClient держит отдельный circuit breaker на каждый хост: ссылки
// присылают пользователи, и недоступность одного сайта не должна мешать остальным.
func NewPageClient(cfg *config.Config, logger *slog.Logger) *PageClient {
	return &PageClient{
		client: httputil.CreateResilientHTTPClient(cfg, logger, httputil.ClientOptions{
			ServiceName: PageService,
			UserAgent:   cfg.BrowserUserAgent,
			Headers: map[string]string{
				"Accept":          "text/html,application/xhtml+xml",
				"Accept-Language": "en-US,en;q=0.9",
			},
			BreakerKey:        httputil.ByHost,
			ResponseBodyLimit: cfg.PageBodyLimit,
		}),
	}
}

// GetPage возвращает страницу в UTF-8. Кодировка берётся из Content-Type,
// затем из <meta charset>; без них тело проверяется на валидный UTF-8.
func (c *PageClient) GetPage(ctx context.Context, pageURL string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err := checkResponse(PageService, resp, err); err != nil {
		return nil, err
	}

	body := resp.Body()
	if len(body) == 0 {
		return body, nil
	}

	enc, _, _ := charset.DetermineEncoding(body, resp.Header().Get("Content-Type"))

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, &domainerrors.ErrMalformedUpstreamResponse{Service: PageService, Cause: err}
	}

	return decoded, nil
}
