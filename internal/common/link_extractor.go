package common

import (
	"net/url"
	"regexp"
	"strings"
)

const trailingPunct = "),."

var urlPattern = regexp.MustCompile(`(?i)(https?://[^\s<>"]+|www\.[^\s<>"]+)`)

// Параметры, в которых обёртки вида SafeLinks передают настоящий адрес.
var redirectParams = []string{"url"}

// ExtractFirstURL находит первую ссылку в произвольном тексте.
// Завершающие ")", "," и "." отбрасываются, при отсутствии схемы добавляется https://.
func ExtractFirstURL(text string) (string, bool) {
	match := urlPattern.FindString(text)
	if match == "" {
		return "", false
	}

	raw := strings.TrimRight(strings.TrimSpace(match), trailingPunct)
	if raw == "" {
		return "", false
	}

	if !strings.HasPrefix(strings.ToLower(raw), "http") {
		raw = "https://" + raw
	}

	return raw, true
}

// UnwrapRedirect раскрывает один уровень обёртки-редиректа: если в query есть параметр
// с закодированным адресом назначения, возвращается он.
func UnwrapRedirect(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := parsed.Query()

	for _, param := range redirectParams {
		real := query.Get(param)
		if real == "" {
			continue
		}

		if decoded, err := url.PathUnescape(real); err == nil {
			real = decoded
		}

		lower := strings.ToLower(real)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return real
		}
	}

	return rawURL
}

// ExtractURL - ExtractFirstURL и UnwrapRedirect за один вызов.
func ExtractURL(text string) (string, bool) {
	raw, ok := ExtractFirstURL(text)
	if !ok {
		return "", false
	}

	return UnwrapRedirect(raw), true
}
