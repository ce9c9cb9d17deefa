package metadata_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/clients"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/metadata"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/config"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

const (
	reelHTML = `<html><head><title>Instagram</title></head><body>
<script>window.__additionalDataLoaded('extra',{"graphql":{"shortcode_media":{"shortcode":"XYZ","edge_media_to_caption":{"edges":[{"node":{"text":"Reel caption"}}]},"display_url":"https://cdn.example/reel.jpg","video_url":"https://cdn.example/reel.mp4"}}});</script>
</body></html>`

	postHTML = `<html><head>
<script type="application/ld+json">{"@type":"ImageObject","caption":"Post caption","name":"Post name","image":["https://cdn.example/post.jpg"]}</script>
</head></html>`

	openGraphHTML = `<html><head>
<title>Fallback title</title>
<meta property="og:title" content="OG title">
<meta property="og:description" content="OG description">
<meta property="og:image" content="https://cdn.example/og.jpg">
</head></html>`

	plainHTML = `<html><head>
<title> Plain page </title>
<meta name="description" content="Plain description">
</head></html>`
)

type testEnv struct {
	oembed    *httptest.Server
	instagram *httptest.Server
	pages     *httptest.Server
	chain     *metadata.Chain
}

// newTestEnv поднимает фейковые oEmbed, scraper API и сайт и собирает цепочку
// на настоящих клиентах.
func newTestEnv(t *testing.T, apiKey string, oembed, instagram, pages http.HandlerFunc) *testEnv {
	t.Helper()

	env := &testEnv{
		oembed:    httptest.NewServer(oembed),
		instagram: httptest.NewServer(instagram),
		pages:     httptest.NewServer(pages),
	}

	t.Cleanup(func() {
		env.oembed.Close()
		env.instagram.Close()
		env.pages.Close()
	})

	cfg := &config.Config{
		ExternalRequestTimeout:     2 * time.Second,
		CBSlidingWindowSize:        10,
		CBMinimumRequiredCalls:     100,
		CBFailureRateThreshold:     100,
		CBPermittedCallsInHalfOpen: 1,
		CBWaitDurationInOpenState:  time.Second,
		YouTubeOEmbedURL:           env.oembed.URL + "/youtube",
		TikTokOEmbedURL:            env.oembed.URL + "/tiktok",
		InstagramAPIHost:           "instagram-scraper-stable-api.p.rapidapi.com",
		InstagramAPIBaseURL:        env.instagram.URL,
		InstagramAPIKey:            apiKey,
		BrowserUserAgent:           "Mozilla/5.0 Test",
	}

	logger := testLogger()

	table := metadata.DefaultTable(metadata.Sources{
		YouTube:               clients.NewYouTubeOEmbedClient(cfg, logger),
		TikTok:                clients.NewTikTokOEmbedClient(cfg, logger),
		Instagram:             clients.NewInstagramClient(cfg, logger),
		Pages:                 clients.NewPageClient(cfg, logger),
		InstagramCanonicalURL: "https://www.instagram.com",
	})

	env.chain = metadata.NewChain(table, logger)

	return env
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

func serverError(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusInternalServerError)
}

func html(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func TestYouTubeOEmbed(t *testing.T) {
	var requested string

	env := newTestEnv(t, "",
		func(w http.ResponseWriter, r *http.Request) {
			requested = r.URL.Query().Get("url")
			_, _ = w.Write([]byte(`{"title":"Never Gonna","thumbnail_url":"https://i.ytimg.com/abc.jpg","author_name":"Rick"}`))
		},
		notFound, notFound)

	res := env.chain.Resolve(context.Background(), models.YouTube, "https://youtu.be/abc123")

	require.True(t, res.Resolved())
	assert.Equal(t, "https://youtu.be/abc123", requested)
	assert.Equal(t, metadata.YouTubeOEmbedStrategy, res.Strategy)
	assert.Equal(t, "Never Gonna", *res.Metadata.Title)
	assert.Equal(t, "https://i.ytimg.com/abc.jpg", *res.Metadata.ThumbnailURL)
	assert.Nil(t, res.Metadata.Description)
	assert.Equal(t, "youtube", *res.Metadata.Platform)
}

func TestTikTokOEmbedFailureIsUnresolved(t *testing.T) {
	env := newTestEnv(t, "", serverError, notFound, notFound)

	res := env.chain.Resolve(context.Background(), models.TikTok, "https://www.tiktok.com/@user/video/1")

	assert.False(t, res.Resolved())
	assert.Equal(t, 1, res.Attempts)
}

func TestInstagramStableAPI(t *testing.T) {
	var canonical, mediaType string

	env := newTestEnv(t, "key",
		notFound,
		func(w http.ResponseWriter, r *http.Request) {
			canonical = r.URL.Query().Get("reel_post_code_or_url")
			mediaType = r.URL.Query().Get("type")
			_, _ = w.Write([]byte(`{"title":"  ","edge_media_to_caption":{"edges":[{"node":{"text":"API caption"}}]},"display_url":"https://cdn.example/api.jpg","video_url":"https://cdn.example/api.mp4"}`))
		},
		notFound)

	res := env.chain.Resolve(context.Background(), models.Instagram, "https://instagram.com/Reel/XYZ/?igsh=abc")

	require.True(t, res.Resolved())
	assert.Equal(t, "https://www.instagram.com/Reel/XYZ/", canonical)
	assert.Equal(t, "reel", mediaType)
	assert.Equal(t, metadata.InstagramAPIStrategy, res.Strategy)
	assert.Equal(t, "API caption", *res.Metadata.Title)
	assert.Equal(t, "API caption", *res.Metadata.Description)
	assert.Equal(t, "https://cdn.example/api.jpg", *res.Metadata.ThumbnailURL)
	assert.Equal(t, "https://cdn.example/api.mp4", *res.Metadata.VideoURL)
	assert.Equal(t, "instagram.com", *res.Metadata.Platform)
}

func TestInstagramStableAPIDefaultTitle(t *testing.T) {
	env := newTestEnv(t, "key",
		notFound,
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"thumbnail_src":"https://cdn.example/t.jpg"}`))
		},
		notFound)

	res := env.chain.Resolve(context.Background(), models.Instagram, "https://www.instagram.com/p/ABC/")

	require.True(t, res.Resolved())
	assert.Equal(t, "Instagram", *res.Metadata.Title)
	assert.Nil(t, res.Metadata.Description)
	assert.Equal(t, "https://cdn.example/t.jpg", *res.Metadata.ThumbnailURL)
}

func TestInstagramFallsToReelHTML(t *testing.T) {
	env := newTestEnv(t, "key",
		notFound,
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error":"Media not found or unavailable"}`))
		},
		html(reelHTML))

	res := env.chain.Resolve(context.Background(), models.Instagram, env.pages.URL+"/reel/XYZ/")

	require.True(t, res.Resolved())
	assert.Equal(t, metadata.InstagramReelStrategy, res.Strategy)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, "Reel caption", *res.Metadata.Title)
	assert.Equal(t, "https://cdn.example/reel.jpg", *res.Metadata.ThumbnailURL)
	assert.Equal(t, "instagram.com", *res.Metadata.Platform)
	assert.True(t, json.Valid(res.Metadata.Raw))
}

func TestInstagramPostSkipsReelStrategy(t *testing.T) {
	env := newTestEnv(t, "", notFound, notFound, html(postHTML))

	res := env.chain.Resolve(context.Background(), models.Instagram, env.pages.URL+"/p/ABC/")

	require.True(t, res.Resolved())
	assert.Equal(t, metadata.InstagramPostStrategy, res.Strategy)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, "Post caption", *res.Metadata.Title)
	assert.Equal(t, "https://cdn.example/post.jpg", *res.Metadata.ThumbnailURL)
}

func TestInstagramFallsToOpenGraph(t *testing.T) {
	env := newTestEnv(t, "", notFound, notFound, html(openGraphHTML))

	res := env.chain.Resolve(context.Background(), models.Instagram, env.pages.URL+"/reel/XYZ/")

	require.True(t, res.Resolved())
	assert.Equal(t, metadata.OpenGraphStrategy, res.Strategy)
	assert.Equal(t, 4, res.Attempts)
	assert.Equal(t, "OG title", *res.Metadata.Title)
}

func TestInstagramAllStrategiesFail(t *testing.T) {
	env := newTestEnv(t, "key",
		notFound,
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error":"blocked"}`))
		},
		serverError)

	res := env.chain.Resolve(context.Background(), models.Instagram, env.pages.URL+"/reel/XYZ/")

	assert.False(t, res.Resolved())
	assert.Nil(t, res.Metadata, "платформа не определяется, если ни одна стратегия не сработала")
	assert.Equal(t, 4, res.Attempts)
}

func TestOpenGraphTags(t *testing.T) {
	env := newTestEnv(t, "", notFound, notFound, html(openGraphHTML))

	res := env.chain.Resolve(context.Background(), models.Generic, env.pages.URL+"/article")

	require.True(t, res.Resolved())
	assert.Equal(t, "OG title", *res.Metadata.Title)
	assert.Equal(t, "OG description", *res.Metadata.Description)
	assert.Equal(t, "https://cdn.example/og.jpg", *res.Metadata.ThumbnailURL)
	assert.Equal(t, "127.0.0.1", *res.Metadata.Platform)
	assert.JSONEq(t,
		`{"ogTitle":"OG title","ogDescription":"OG description","ogImage":"https://cdn.example/og.jpg"}`,
		string(res.Metadata.Raw))
}

func TestOpenGraphFallbackTags(t *testing.T) {
	env := newTestEnv(t, "", notFound, notFound, html(plainHTML))

	res := env.chain.Resolve(context.Background(), models.Twitter, env.pages.URL)

	require.True(t, res.Resolved())
	assert.Equal(t, "Plain page", *res.Metadata.Title)
	assert.Equal(t, "Plain description", *res.Metadata.Description)
	assert.Nil(t, res.Metadata.ThumbnailURL)
	assert.JSONEq(t, `{"ogTitle":"Plain page","ogDescription":"Plain description","ogImage":null}`, string(res.Metadata.Raw))
}

func TestOpenGraphEmptyPageIsUnresolved(t *testing.T) {
	env := newTestEnv(t, "", notFound, notFound, html(`<html><body>nothing</body></html>`))

	res := env.chain.Resolve(context.Background(), models.Generic, env.pages.URL)

	assert.False(t, res.Resolved())
}

func TestOpenGraphDecodesLegacyCharset(t *testing.T) {
	// "Привет" и "Мир" в windows-1251.
	page := "<html><head><title>\xcf\xf0\xe8\xe2\xe5\xf2</title>" +
		"<meta name=\"description\" content=\"\xcc\xe8\xf0\"></head></html>"

	env := newTestEnv(t, "", notFound, notFound, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		_, _ = w.Write([]byte(page))
	})

	res := env.chain.Resolve(context.Background(), models.Generic, env.pages.URL+"/news")

	require.True(t, res.Resolved())
	assert.Equal(t, "Привет", *res.Metadata.Title)
	assert.Equal(t, "Мир", *res.Metadata.Description)
	assert.JSONEq(t, `{"ogTitle":"Привет","ogDescription":"Мир","ogImage":null}`, string(res.Metadata.Raw))
}
