package capture

import (
	"strings"

	"github.com/atotto/clipboard"
)

// ReadClipboard возвращает текст из системного буфера обмена.
// Пустой или пробельный буфер считается отсутствием содержимого.
func ReadClipboard() (string, bool) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
