package llm

import (
	"context"
	"strings"
	"time"

	"ExamAssistant/internal/config"

	"go.uber.org/zap"
)

// Gateway единая точка входа для анализа текста и изображений.
// Ошибки провайдеров не поднимаются наверх: наружу уходит либо
// результат, либо его отсутствие (ok=false), чтобы поток захвата
// никогда не падал из-за сети.
type Gateway struct {
	reg     *Registry
	logger  *zap.SugaredLogger
	timeout time.Duration
	enabled bool
}

func NewGateway(cfg *config.Config, logger *zap.SugaredLogger) *Gateway {
	return &Gateway{
		reg:     NewRegistry(cfg),
		logger:  logger,
		timeout: cfg.LLMTimeout,
		enabled: cfg.LLMEnabled,
	}
}

// AnalyzeText прогоняет текст через роль text. Шаблон промпта
// подставляет содержимое вместо маркера {content}.
func (g *Gateway) AnalyzeText(ctx context.Context, content string) (string, bool) {
	if !g.enabled {
		return "", false
	}
	client, rc, err := g.reg.Resolve(config.RoleText)
	if err != nil {
		g.logger.Warnw("Text analysis skipped", "error", err)
		return "", false
	}

	prompt := strings.ReplaceAll(rc.Prompt, "{content}", content)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := client.Call(callCtx, rc.Model, prompt, "")
	if err != nil {
		g.logger.Errorw("Text analysis failed", "provider", rc.Provider, "model", rc.Model, "error", err)
		return "", false
	}
	return result, true
}

// AnalyzeImage прогоняет файл изображения через роль vision.
func (g *Gateway) AnalyzeImage(ctx context.Context, imagePath string) (string, bool) {
	if !g.enabled {
		return "", false
	}
	client, rc, err := g.reg.Resolve(config.RoleVision)
	if err != nil {
		g.logger.Warnw("Image analysis skipped", "error", err)
		return "", false
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := client.Call(callCtx, rc.Model, rc.Prompt, imagePath)
	if err != nil {
		g.logger.Errorw("Image analysis failed", "provider", rc.Provider, "model", rc.Model, "error", err)
		return "", false
	}
	return result, true
}

// CheckAvailability проверяет каждого провайдера, на которого ссылаются
// роли. Агрегат fail-closed: один недоступный провайдер гасит весь анализ.
func (g *Gateway) CheckAvailability(ctx context.Context) bool {
	if !g.enabled {
		return false
	}
	providers := g.reg.RoleProviders()
	if len(providers) == 0 {
		return false
	}
	ok := true
	for _, name := range providers {
		client, found := g.reg.ClientFor(name)
		if !found {
			g.logger.Warnw("Provider has no adapter", "provider", name)
			ok = false
			continue
		}
		if !client.Check(ctx) {
			g.logger.Warnw("Provider unavailable", "provider", name)
			ok = false
			continue
		}
		g.logger.Infow("Provider available", "provider", name)
	}
	return ok
}

// Enabled включён ли анализ.
func (g *Gateway) Enabled() bool { return g.enabled }

// Disable выключает анализ до конца работы процесса. Вызывается на
// старте по результату CheckAvailability, до запуска обработчиков.
func (g *Gateway) Disable() { g.enabled = false }
