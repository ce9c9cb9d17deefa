package enrichment_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/enrichment"
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
)

const cleanReply = `{"summary": "A talk about Go concurrency.", "tags": ["go", "concurrency", "talk"]}`

func TestCleanReply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "чистый JSON", in: cleanReply, want: cleanReply},
		{name: "ограждение json", in: "```json\n" + cleanReply + "\n```", want: cleanReply},
		{name: "ограждение без языка", in: "```\n" + cleanReply + "\n```", want: cleanReply},
		{name: "пояснения вокруг", in: "Sure! Here it is:\n" + cleanReply + "\nHope this helps.", want: cleanReply},
		{name: "нет объекта", in: "  no json here  ", want: "no json here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enrichment.CleanReply(tt.in))
		})
	}
}

func TestCleanReply_Idempotent(t *testing.T) {
	inputs := []string{cleanReply, "```json\n" + cleanReply + "```", "text {\"a\":1} more"}

	for _, in := range inputs {
		once := enrichment.CleanReply(in)
		assert.Equal(t, once, enrichment.CleanReply(once))
	}
}

func TestParseReply_CleanAndRawAgree(t *testing.T) {
	direct, err := enrichment.ParseReply(cleanReply)
	require.NoError(t, err)

	viaClean, err := enrichment.ParseReply(enrichment.CleanReply(cleanReply))
	require.NoError(t, err)

	assert.Equal(t, direct, viaClean)
}

func TestParseReply_FencedMatchesUnwrapped(t *testing.T) {
	plain, err := enrichment.ParseReply(cleanReply)
	require.NoError(t, err)

	fenced, err := enrichment.ParseReply("```json " + cleanReply + " ```")
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
	assert.Equal(t, "A talk about Go concurrency.", fenced.Summary)
	assert.Equal(t, []string{"go", "concurrency", "talk"}, fenced.Tags)
}

func TestParseReply_TrimsTags(t *testing.T) {
	result, err := enrichment.ParseReply(`{"summary":" s ","tags":[" go ","", "  "]}`)

	require.NoError(t, err)
	assert.Equal(t, "s", result.Summary)
	assert.Equal(t, []string{"go"}, result.Tags)
}

func TestParseReply_EmptyTagsAllowed(t *testing.T) {
	result, err := enrichment.ParseReply(`{"summary":"s","tags":[]}`)

	require.NoError(t, err)
	assert.Empty(t, result.Tags)
}

func TestParseReply_InvalidJSON(t *testing.T) {
	raw := "```json\n{\"summary\": \"unterminated\n```"

	_, err := enrichment.ParseReply(raw)

	var invalid *domainerrors.ErrInvalidCompletionJSON
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, raw, invalid.Raw)
	assert.False(t, strings.Contains(invalid.Cleaned, "```"))
}

func TestParseReply_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "нет summary", in: `{"tags":["a"]}`},
		{name: "пустой summary", in: `{"summary":"  ","tags":["a"]}`},
		{name: "нет tags", in: `{"summary":"s"}`},
		{name: "tags null", in: `{"summary":"s","tags":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enrichment.ParseReply(tt.in)

			var invalid *domainerrors.ErrInvalidEnrichment
			assert.True(t, errors.As(err, &invalid))
		})
	}
}
