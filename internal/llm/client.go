package llm

import "context"

// Client интерфейс адаптера бэкенда. Все реализации должны быть
// взаимозаменяемыми и не хранить состояния между вызовами.
type Client interface {
	// Call отправляет модели промпт и, опционально, изображение.
	// Возвращает первый текстовый фрагмент ответа провайдера.
	Call(ctx context.Context, model string, prompt string, imagePath string) (string, error)
	// Check лёгкая проверка доступности провайдера. Для платных API —
	// только проверка конфигурации, без сетевых вызовов.
	Check(ctx context.Context) bool
}
