package llm

import (
	"context"
	"strings"

	"ExamAssistant/internal/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Doubao адаптер регионального Ark-эндпоинта. API OpenAI-совместимый,
// поэтому работаем через тот же SDK с другим базовым URL. Дополнительные
// заголовки (по умолчанию x-is-encrypted) передаются как есть — их
// семантика на стороне вендора.
type Doubao struct {
	apiKey string
	client openai.Client
}

func NewDoubao(cfg config.DoubaoConfig) *Doubao {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	}
	for _, h := range cfg.ExtraHeaders {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			continue
		}
		opts = append(opts, option.WithHeader(strings.TrimSpace(name), strings.TrimSpace(value)))
	}
	return &Doubao{
		apiKey: cfg.APIKey,
		client: openai.NewClient(opts...),
	}
}

func (c *Doubao) Call(ctx context.Context, model, prompt, imagePath string) (string, error) {
	var message openai.ChatCompletionMessageParamUnion
	if imagePath != "" {
		// Готовую http(s)-ссылку отдаём как есть, локальный файл — data URL-ом
		imageURL := imagePath
		if !isRemoteURL(imagePath) {
			var err error
			imageURL, err = imageDataURL(imagePath)
			if err != nil {
				return "", err
			}
		}
		message = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: imageURL}),
		})
	} else {
		message = openai.UserMessage(prompt)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{message},
	})
	if err != nil {
		return "", &TransportError{Provider: config.ProviderDoubao, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &TransportError{Provider: config.ProviderDoubao, Err: errEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}

// Check для платного API — только конфигурация, без сетевого вызова.
func (c *Doubao) Check(_ context.Context) bool {
	return keyConfigured(c.apiKey)
}
