package metadata

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/clients"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

const (
	InstagramAPIStrategy  = "instagram_api"
	InstagramReelStrategy = "instagram_reel_html"
	InstagramPostStrategy = "instagram_post_html"

	instagramPlatform = "instagram.com"
)

var (
	reelDataPattern = regexp.MustCompile(`window\.__additionalDataLoaded\([^,]+,\s*(\{[\s\S]*?\})\);`)
	ldJSONPattern   = regexp.MustCompile(`<script type="application/ld\+json">([\s\S]*?)</script>`)
)

func isReelURL(rawURL string) bool {
	return strings.Contains(rawURL, "/reel/")
}

type InstagramAPIFetcher struct {
	api          clients.InstagramMediaGetter
	canonicalURL string
}

func NewInstagramAPIFetcher(api clients.InstagramMediaGetter, canonicalURL string) *InstagramAPIFetcher {
	return &InstagramAPIFetcher{
		api:          api,
		canonicalURL: strings.TrimRight(canonicalURL, "/"),
	}
}

func (f *InstagramAPIFetcher) Name() string {
	return InstagramAPIStrategy
}

func (f *InstagramAPIFetcher) Fetch(ctx context.Context, rawURL string) (*models.LinkMetadata, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &domainerrors.ErrInvalidURL{URL: rawURL}
	}

	// Query и фрагмент отбрасываются: API принимает только канонический путь.
	cleanURL := f.canonicalURL + parsed.Path

	mediaType := clients.InstagramPost
	if strings.HasPrefix(strings.ToLower(parsed.Path), "/reel/") {
		mediaType = clients.InstagramReel
	}

	media, err := f.api.GetMedia(ctx, cleanURL, mediaType)
	if err != nil {
		return nil, err
	}

	caption := media.CaptionText()

	title := caption
	if strings.TrimSpace(media.Title) != "" {
		title = media.Title
	}

	if title == "" {
		title = "Instagram"
	}

	thumbnail := media.ThumbnailSrc
	if thumbnail == "" {
		thumbnail = media.DisplayURL
	}

	return &models.LinkMetadata{
		Title:        models.StringPtr(title),
		Description:  models.StringPtr(caption),
		ThumbnailURL: models.StringPtr(thumbnail),
		VideoURL:     models.StringPtr(media.VideoURL),
		Platform:     models.StringPtr(instagramPlatform),
		Raw:          media.Raw,
	}, nil
}

// InstagramReelFetcher достаёт медиа-объект, встроенный в HTML страницы рилса.
type InstagramReelFetcher struct {
	pages clients.PageGetter
}

func NewInstagramReelFetcher(pages clients.PageGetter) *InstagramReelFetcher {
	return &InstagramReelFetcher{pages: pages}
}

func (f *InstagramReelFetcher) Name() string {
	return InstagramReelStrategy
}

func (f *InstagramReelFetcher) Fetch(ctx context.Context, rawURL string) (*models.LinkMetadata, error) {
	if !isReelURL(rawURL) {
		return nil, &domainerrors.ErrNoMetadata{Strategy: InstagramReelStrategy, Reason: "ссылка не на рилс"}
	}

	html, err := f.pages.GetPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	match := reelDataPattern.FindSubmatch(html)
	if match == nil {
		return nil, &domainerrors.ErrNoMetadata{Strategy: InstagramReelStrategy, Reason: "встроенный JSON не найден"}
	}

	var payload struct {
		Graphql struct {
			ShortcodeMedia *clients.InstagramMedia `json:"shortcode_media"`
		} `json:"graphql"`
	}

	if err := json.Unmarshal(match[1], &payload); err != nil {
		return nil, &domainerrors.ErrMalformedUpstreamResponse{Service: InstagramReelStrategy, Cause: err}
	}

	media := payload.Graphql.ShortcodeMedia
	if media == nil {
		return nil, &domainerrors.ErrNoMetadata{Strategy: InstagramReelStrategy, Reason: "нет graphql.shortcode_media"}
	}

	caption := media.CaptionText()

	title := media.Title
	if title == "" {
		title = caption
	}

	if title == "" {
		title = "Instagram Reel"
	}

	return &models.LinkMetadata{
		Title:        models.StringPtr(title),
		Description:  models.StringPtr(caption),
		ThumbnailURL: models.StringPtr(media.DisplayURL),
		VideoURL:     models.StringPtr(media.VideoURL),
		Platform:     models.StringPtr(instagramPlatform),
		Raw:          json.RawMessage(match[1]),
	}, nil
}

// ldImage принимает image из ld+json в любой из встречающихся форм:
// строка, массив строк или объект с полем url.
type ldImage string

func (i *ldImage) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*i = ldImage(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			*i = ldImage(list[0])
		}

		return nil
	}

	var object struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &object); err == nil {
		*i = ldImage(object.URL)
	}

	return nil
}

type InstagramPostFetcher struct {
	pages clients.PageGetter
}

func NewInstagramPostFetcher(pages clients.PageGetter) *InstagramPostFetcher {
	return &InstagramPostFetcher{pages: pages}
}

func (f *InstagramPostFetcher) Name() string {
	return InstagramPostStrategy
}

func (f *InstagramPostFetcher) Fetch(ctx context.Context, rawURL string) (*models.LinkMetadata, error) {
	if isReelURL(rawURL) {
		return nil, &domainerrors.ErrNoMetadata{Strategy: InstagramPostStrategy, Reason: "ссылка на рилс, а не на пост"}
	}

	html, err := f.pages.GetPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	match := ldJSONPattern.FindSubmatch(html)
	if match == nil {
		return nil, &domainerrors.ErrNoMetadata{Strategy: InstagramPostStrategy, Reason: "ld+json не найден"}
	}

	var post struct {
		Caption string  `json:"caption"`
		Name    string  `json:"name"`
		Image   ldImage `json:"image"`
	}

	if err := json.Unmarshal(match[1], &post); err != nil {
		return nil, &domainerrors.ErrMalformedUpstreamResponse{Service: InstagramPostStrategy, Cause: err}
	}

	title := post.Caption
	if title == "" {
		title = post.Name
	}

	if title == "" {
		title = "Instagram Post"
	}

	return &models.LinkMetadata{
		Title:        models.StringPtr(title),
		Description:  models.StringPtr(post.Caption),
		ThumbnailURL: models.StringPtr(string(post.Image)),
		Platform:     models.StringPtr(instagramPlatform),
		Raw:          json.RawMessage(match[1]),
	}, nil
}
