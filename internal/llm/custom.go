package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Custom generic-адаптер для любого OpenAI-совместимого эндпоинта
// (千问 и прочие пользовательские бэкенды). Сырой HTTP POST с Bearer-токеном.
type Custom struct {
	name   string
	apiURL string
	apiKey string
	client *http.Client
}

func NewCustom(name, apiURL, apiKey string, timeout time.Duration) *Custom {
	return &Custom{
		name:   name,
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

func (c *Custom) Call(ctx context.Context, model, prompt, imagePath string) (string, error) {
	if c.apiURL == "" || c.apiKey == "" {
		return "", &ConfigError{Reason: c.name + ": api_url or api_key missing"}
	}

	msg := chatMessage{Role: "user", Content: prompt}
	if imagePath != "" {
		dataURL, err := imageDataURL(imagePath)
		if err != nil {
			return "", err
		}
		msg.Content = []chatContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &chatImageURL{URL: dataURL}},
		}
	}

	payload := struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}{Model: model, Messages: []chatMessage{msg}}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &TransportError{Provider: c.name, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Provider: c.name, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Provider: c.name, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &TransportError{Provider: c.name, Err: fmt.Errorf("http %d", resp.StatusCode)}
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TransportError{Provider: c.name, Err: err}
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", &TransportError{Provider: c.name, Err: errEmptyResponse}
	}
	return out.Choices[0].Message.Content, nil
}

// Check требует одновременно URL и ключ.
func (c *Custom) Check(_ context.Context) bool {
	return c.apiURL != "" && keyConfigured(c.apiKey)
}
