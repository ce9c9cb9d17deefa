package enrichment

import (
	"context"
	"strings"
)

// CompletionModel - одна модель генерации текста. Модели в списке взаимозаменяемы
// и перебираются по порядку.
type CompletionModel interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type ContentGenerator interface {
	GenerateContent(ctx context.Context, model, prompt string) ([]byte, error)
}

type TextGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// RESTModel вызывает generateContent напрямую и сам достаёт текст из ответа.
type RESTModel struct {
	name      string
	generator ContentGenerator
}

func NewRESTModel(name string, generator ContentGenerator) *RESTModel {
	return &RESTModel{name: name, generator: generator}
}

func (m *RESTModel) Name() string {
	return m.name
}

func (m *RESTModel) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := m.generator.GenerateContent(ctx, m.name, prompt)
	if err != nil {
		return "", err
	}

	return ExtractText(body), nil
}

type SDKModel struct {
	name      string
	generator TextGenerator
}

func NewSDKModel(name string, generator TextGenerator) *SDKModel {
	return &SDKModel{name: name, generator: generator}
}

func (m *SDKModel) Name() string {
	return m.name
}

func (m *SDKModel) Complete(ctx context.Context, prompt string) (string, error) {
	return m.generator.GenerateText(ctx, m.name, prompt)
}

func NewRESTModels(names []string, generator ContentGenerator) []CompletionModel {
	result := make([]CompletionModel, 0, len(names))

	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			result = append(result, NewRESTModel(name, generator))
		}
	}

	return result
}

func NewSDKModels(names []string, generator TextGenerator) []CompletionModel {
	result := make([]CompletionModel, 0, len(names))

	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			result = append(result, NewSDKModel(name, generator))
		}
	}

	return result
}
