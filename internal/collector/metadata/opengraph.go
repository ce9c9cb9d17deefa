package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/clients"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

const OpenGraphStrategy = "opengraph"

type openGraphRaw struct {
	OGTitle       *string `json:"ogTitle"`
	OGDescription *string `json:"ogDescription"`
	OGImage       *string `json:"ogImage"`
}

type OpenGraphFetcher struct {
	pages clients.PageGetter
}

func NewOpenGraphFetcher(pages clients.PageGetter) *OpenGraphFetcher {
	return &OpenGraphFetcher{pages: pages}
}

func (f *OpenGraphFetcher) Name() string {
	return OpenGraphStrategy
}

func (f *OpenGraphFetcher) Fetch(ctx context.Context, rawURL string) (*models.LinkMetadata, error) {
	html, err := f.pages.GetPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &domainerrors.ErrMalformedUpstreamResponse{Service: OpenGraphStrategy, Cause: err}
	}

	title := metaContent(doc, `meta[property="og:title"]`)
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	description := metaContent(doc, `meta[property="og:description"]`)
	if description == "" {
		description = metaContent(doc, `meta[name="description"]`)
	}

	image := metaContent(doc, `meta[property="og:image"]`)

	result := &models.LinkMetadata{
		Title:        models.StringPtr(title),
		Description:  models.StringPtr(description),
		ThumbnailURL: models.StringPtr(image),
		Platform:     models.StringPtr(hostLabel(rawURL)),
	}

	result.Raw, _ = json.Marshal(openGraphRaw{
		OGTitle:       result.Title,
		OGDescription: result.Description,
		OGImage:       result.ThumbnailURL,
	})

	return result, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// hostLabel возвращает имя хоста без ведущего "www.".
func hostLabel(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
