package common_test

import (
	"testing"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestLinkAnalyzer_Classify(t *testing.T) {
	analyzer := common.NewLinkAnalyzer()

	tests := []struct {
		name     string
		url      string
		expected models.Platform
	}{
		{
			name:     "YouTube watch URL",
			url:      "https://www.youtube.com/watch?v=abc123",
			expected: models.YouTube,
		},
		{
			name:     "YouTube short URL",
			url:      "https://youtu.be/abc123",
			expected: models.YouTube,
		},
		{
			name:     "YouTube uppercase host",
			url:      "HTTPS://WWW.YOUTUBE.COM/shorts/xyz",
			expected: models.YouTube,
		},
		{
			name:     "TikTok URL",
			url:      "https://www.tiktok.com/@user/video/123",
			expected: models.TikTok,
		},
		{
			name:     "Instagram reel",
			url:      "https://www.instagram.com/reel/XYZ/",
			expected: models.Instagram,
		},
		{
			name:     "Twitter URL",
			url:      "https://twitter.com/user/status/1",
			expected: models.Twitter,
		},
		{
			name:     "X URL",
			url:      "https://x.com/user/status/1",
			expected: models.Twitter,
		},
		{
			name:     "Generic URL",
			url:      "https://en.wikipedia.org/wiki/Go",
			expected: models.Generic,
		},
		{
			name:     "Empty URL",
			url:      "",
			expected: models.Generic,
		},
		{
			name:     "First rule wins",
			url:      "https://www.youtube.com/redirect?q=https://instagram.com/p/1",
			expected: models.YouTube,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analyzer.Classify(tt.url))
			assert.Equal(t, tt.expected, analyzer.Classify(tt.url), "классификация должна быть детерминированной")
		})
	}
}

func TestSourceTypeFor(t *testing.T) {
	assert.Equal(t, models.SourceYouTube, models.SourceTypeFor(models.YouTube))
	assert.Equal(t, models.SourceTikTok, models.SourceTypeFor(models.TikTok))
	assert.Equal(t, models.SourceInstagram, models.SourceTypeFor(models.Instagram))
	assert.Equal(t, models.SourceOther, models.SourceTypeFor(models.Twitter))
	assert.Equal(t, models.SourceGeneric, models.SourceTypeFor(models.Generic))
}
