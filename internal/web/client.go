package web

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"ExamAssistant/internal/config"

	"go.uber.org/zap"
)

// Client отправляет результаты захвата в web-сервис. Ошибки сети
// только логируются: недоступный сервис не должен ломать захват.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

func NewClient(cfg config.WebConfig, logger *zap.SugaredLogger) *Client {
	host := cfg.Host
	// Wildcard-адрес прослушивания не годится для исходящих запросов
	if host == "0.0.0.0" || host == "" {
		host = "localhost"
	}
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", host, cfg.Port),
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

// PushScreenshot читает файл скриншота и отправляет его сервису.
func (c *Client) PushScreenshot(imagePath, analysis string, capturedAt time.Time) {
	img, err := os.ReadFile(imagePath)
	if err != nil {
		c.logger.Warnw("Failed to read screenshot for push", "path", imagePath, "error", err)
		return
	}
	c.post("/api/screenshot", map[string]string{
		"image_base64": base64.StdEncoding.EncodeToString(img),
		"analysis":     analysis,
		"timestamp":    capturedAt.Format(time.RFC3339),
	})
}

// PushClipboard отправляет текст буфера обмена сервису.
func (c *Client) PushClipboard(text, analysis string, capturedAt time.Time) {
	c.post("/api/clipboard", map[string]string{
		"text":      text,
		"analysis":  analysis,
		"timestamp": capturedAt.Format(time.RFC3339),
	})
}

func (c *Client) post(path string, payload map[string]string) {
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warnw("Failed to marshal web payload", "error", err)
		return
	}
	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		c.logger.Warnw("Failed to push result to web service", "path", path, "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		c.logger.Warnw("Web service rejected result", "path", path, "status", resp.StatusCode)
	}
}
