package llm

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// encodeImageBase64 читает файл изображения и кодирует его в base64.
func encodeImageBase64(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &EncodingError{Path: path, Err: err}
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// imageMediaType определяет media type по расширению файла.
func imageMediaType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// imageDataURL кодирует изображение в data URL для inline-передачи.
func imageDataURL(path string) (string, error) {
	b64, err := encodeImageBase64(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:%s;base64,%s", imageMediaType(path), b64), nil
}

// isRemoteURL истинно для изображений, заданных http(s)-ссылкой.
func isRemoteURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// keyConfigured отсекает пустые ключи и незаполненные placeholder-ы
// вида "your_openai_api_key" из шаблона конфигурации.
func keyConfigured(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !strings.HasPrefix(key, "your_")
}
