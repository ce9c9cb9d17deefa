package common_test

import (
	"testing"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestExtractFirstURL(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{
			name:     "URL inside message",
			text:     "check this out https://youtu.be/abc123 lol",
			expected: "https://youtu.be/abc123",
			found:    true,
		},
		{
			name:     "Trailing punctuation",
			text:     "look (https://example.com/page).",
			expected: "https://example.com/page",
			found:    true,
		},
		{
			name:     "Trailing comma",
			text:     "https://example.com/a, and more",
			expected: "https://example.com/a",
			found:    true,
		},
		{
			name:     "Bare www prefix",
			text:     "see www.example.com/x",
			expected: "https://www.example.com/x",
			found:    true,
		},
		{
			name:     "First of many",
			text:     "http://first.example.com then https://second.example.com",
			expected: "http://first.example.com",
			found:    true,
		},
		{
			name:     "Stops at quote and angle bracket",
			text:     `<a href="https://example.com/q">`,
			expected: "https://example.com/q",
			found:    true,
		},
		{
			name:  "No URL",
			text:  "just some words",
			found: false,
		},
		{
			name:  "Empty text",
			text:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, ok := common.ExtractFirstURL(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, url)
		})
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "SafeLinks wrapper",
			url:      "https://eur01.safelinks.protection.outlook.com/?url=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dabc&data=1",
			expected: "https://www.youtube.com/watch?v=abc",
		},
		{
			name:     "Double encoded destination",
			url:      "https://wrapper.example.com/?url=https%253A%252F%252Fexample.com%252Fa",
			expected: "https://example.com/a",
		},
		{
			name:     "No wrapper",
			url:      "https://example.com/a?b=c",
			expected: "https://example.com/a?b=c",
		},
		{
			name:     "url parameter is not a link",
			url:      "https://example.com/share?url=abc",
			expected: "https://example.com/share?url=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, common.UnwrapRedirect(tt.url))
		})
	}
}

func TestExtractURL_Unwraps(t *testing.T) {
	url, ok := common.ExtractURL("saved: https://safelinks.example.com/?url=https%3A%2F%2Fexample.com%2Fpost.")

	assert.True(t, ok)
	assert.Equal(t, "https://example.com/post", url)
}
