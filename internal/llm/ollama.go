package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ExamAssistant/internal/config"
)

// Проверка здоровья не должна висеть дольше 10 секунд, даже если
// таймаут вызовов настроен больше.
const ollamaProbeCap = 10 * time.Second

// Ollama адаптер локального inference-сервера. Без авторизации,
// изображения передаются массивом base64-строк.
type Ollama struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func NewOllama(cfg config.OllamaConfig, timeout time.Duration) *Ollama {
	return &Ollama{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

func (o *Ollama) Call(ctx context.Context, model, prompt, imagePath string) (string, error) {
	payload := struct {
		Model  string   `json:"model"`
		Prompt string   `json:"prompt"`
		Stream bool     `json:"stream"`
		Images []string `json:"images,omitempty"`
	}{Model: model, Prompt: prompt}

	if imagePath != "" {
		b64, err := encodeImageBase64(imagePath)
		if err != nil {
			return "", err
		}
		payload.Images = []string{b64}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &TransportError{Provider: config.ProviderOllama, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Provider: config.ProviderOllama, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", &TransportError{Provider: config.ProviderOllama, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &TransportError{Provider: config.ProviderOllama, Err: fmt.Errorf("http %d", resp.StatusCode)}
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TransportError{Provider: config.ProviderOllama, Err: err}
	}
	return out.Response, nil
}

// Check опрашивает /api/tags с укороченным таймаутом.
func (o *Ollama) Check(ctx context.Context) bool {
	t := o.timeout
	if t <= 0 || t > ollamaProbeCap {
		t = ollamaProbeCap
	}
	ctx, cancel := context.WithTimeout(ctx, t)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode/100 == 2
}
