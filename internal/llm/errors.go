package llm

import (
	"errors"
	"fmt"
)

// errEmptyResponse ответ провайдера без единого текстового поля.
var errEmptyResponse = errors.New("empty response")

// ConfigError неполная или некорректная конфигурация провайдера либо роли.
// Поднимается один раз на старте и отключает анализ, но не процесс.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "llm config: " + e.Reason }

// TransportError сетевая ошибка, таймаут или неуспешный статус бэкенда.
// Восстанавливается локально: шлюз превращает её в отсутствие результата.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// EncodingError ошибка чтения или кодирования изображения.
type EncodingError struct {
	Path string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode image %s: %v", e.Path, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
