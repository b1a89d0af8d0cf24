package llm

import (
	"context"

	"ExamAssistant/internal/config"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Claude адаптер messages API через официальный SDK. Изображение
// передаётся base64-блоком с явным media type.
type Claude struct {
	apiKey string
	client anthropic.Client
}

func NewClaude(cfg config.ClaudeConfig) *Claude {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Claude{
		apiKey: cfg.APIKey,
		client: anthropic.NewClient(opts...),
	}
}

func (c *Claude) Call(ctx context.Context, model, prompt, imagePath string) (string, error) {
	blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt)}
	if imagePath != "" {
		b64, err := encodeImageBase64(imagePath)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, anthropic.NewImageBlockBase64(imageMediaType(imagePath), b64))
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1000,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	})
	if err != nil {
		return "", &TransportError{Provider: config.ProviderClaude, Err: err}
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &TransportError{Provider: config.ProviderClaude, Err: errEmptyResponse}
}

// Check для платного API — только конфигурация, без сетевого вызова.
func (c *Claude) Check(_ context.Context) bool {
	return keyConfigured(c.apiKey)
}
