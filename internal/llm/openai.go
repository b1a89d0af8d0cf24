package llm

import (
	"context"

	"ExamAssistant/internal/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAI адаптер chat-completions API через официальный SDK.
// Изображения уходят inline как data URL.
type OpenAI struct {
	apiKey string
	client openai.Client
}

func NewOpenAI(cfg config.OpenAIConfig) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{
		apiKey: cfg.APIKey,
		client: openai.NewClient(opts...),
	}
}

func (c *OpenAI) Call(ctx context.Context, model, prompt, imagePath string) (string, error) {
	var message openai.ChatCompletionMessageParamUnion
	if imagePath != "" {
		dataURL, err := imageDataURL(imagePath)
		if err != nil {
			return "", err
		}
		message = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
		})
	} else {
		message = openai.UserMessage(prompt)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(model),
		Messages:  []openai.ChatCompletionMessageParamUnion{message},
		MaxTokens: openai.Int(1000),
	})
	if err != nil {
		return "", &TransportError{Provider: config.ProviderOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &TransportError{Provider: config.ProviderOpenAI, Err: errEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}

// Check для платного API — только конфигурация, без сетевого вызова.
func (c *OpenAI) Check(_ context.Context) bool {
	return keyConfigured(c.apiKey)
}
