package common

import (
	"strings"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

type platformRule struct {
	platform  models.Platform
	fragments []string
}

// LinkAnalyzer определяет платформу по подстрокам адреса. Порядок правил значим:
// выигрывает первое совпадение.
type LinkAnalyzer struct {
	rules []platformRule
}

func NewLinkAnalyzer() *LinkAnalyzer {
	return &LinkAnalyzer{
		rules: []platformRule{
			{platform: models.YouTube, fragments: []string{"youtube.com", "youtu.be"}},
			{platform: models.TikTok, fragments: []string{"tiktok.com"}},
			{platform: models.Instagram, fragments: []string{"instagram.com"}},
			{platform: models.Twitter, fragments: []string{"twitter.com", "x.com"}},
		},
	}
}

func (a *LinkAnalyzer) Classify(url string) models.Platform {
	lower := strings.ToLower(url)

	for _, rule := range a.rules {
		for _, fragment := range rule.fragments {
			if strings.Contains(lower, fragment) {
				return rule.platform
			}
		}
	}

	return models.Generic
}
