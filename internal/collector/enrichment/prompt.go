package enrichment

import (
	"fmt"
)

const notAvailable = "N/A"

type Input struct {
	URL         string
	Title       *string
	Description *string
	Platform    *string
}

func orNA(value *string) string {
	if value == nil || *value == "" {
		return notAvailable
	}

	return *value
}

// BuildPrompt просит модель вернуть ровно один JSON-объект с summary и tags.
func BuildPrompt(in Input) string {
	return fmt.Sprintf(`
You are helping categorize a saved link.

Given this link and its metadata:

URL: %s
Title: %s
Description: %s
Platform: %s

Return a concise JSON object with this shape:

{
  "summary": "one or two sentence human-friendly summary of what this link is about",
  "tags": ["short", "keyword-like", "tags", "for", "this", "link"]
}

Rules:
- Respond with ONLY valid JSON.
- Do not wrap it in backticks.
- Do not add commentary.
`, in.URL, orNA(in.Title), orNA(in.Description), orNA(in.Platform))
}
