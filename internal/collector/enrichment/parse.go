package enrichment

import (
	"encoding/json"
	"regexp"
	"strings"

	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// CleanReply убирает markdown-ограждения и оставляет самый длинный фрагмент
// от первой "{" до последней "}".
func CleanReply(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if match := objectPattern.FindString(cleaned); match != "" {
		cleaned = match
	}

	return cleaned
}

type reply struct {
	Summary *string  `json:"summary"`
	Tags    []string `json:"tags"`
}

func ParseReply(text string) (*models.EnrichmentResult, error) {
	cleaned := CleanReply(text)

	var parsed reply
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &domainerrors.ErrInvalidCompletionJSON{Raw: text, Cleaned: cleaned, Cause: err}
	}

	if parsed.Summary == nil || strings.TrimSpace(*parsed.Summary) == "" {
		return nil, &domainerrors.ErrInvalidEnrichment{Reason: "пустое поле summary"}
	}

	if parsed.Tags == nil {
		return nil, &domainerrors.ErrInvalidEnrichment{Reason: "нет поля tags"}
	}

	tags := make([]string, 0, len(parsed.Tags))

	for _, tag := range parsed.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return &models.EnrichmentResult{
		Summary: strings.TrimSpace(*parsed.Summary),
		Tags:    tags,
	}, nil
}
