package orchestrator

import (
	"context"
	"sync"
	"time"

	"ExamAssistant/internal/capture"
	"ExamAssistant/internal/config"
	"ExamAssistant/internal/llm"
	"ExamAssistant/internal/mail"
	"ExamAssistant/internal/trigger"
	"ExamAssistant/internal/web"

	"go.uber.org/zap"
)

// Orchestrator связывает срабатывания триггеров с захватом, анализом
// и доставкой результатов. Обработчики не блокируют поток событий:
// работа уходит в горутины, число одновременных конвейеров ограничено,
// срабатывания сверх лимита отбрасываются с предупреждением.
type Orchestrator struct {
	cfg     *config.Config
	logger  *zap.SugaredLogger
	shots   *capture.Screenshotter
	gateway *llm.Gateway
	sender  *mail.Sender
	webPush *web.Client

	sem chan struct{}
	wg  sync.WaitGroup
}

func New(cfg *config.Config, logger *zap.SugaredLogger, shots *capture.Screenshotter, gateway *llm.Gateway, sender *mail.Sender, webPush *web.Client) *Orchestrator {
	limit := cfg.MaxConcurrentAnalysis
	if limit <= 0 {
		limit = 1
	}
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		shots:   shots,
		gateway: gateway,
		sender:  sender,
		webPush: webPush,
		sem:     make(chan struct{}, limit),
	}
}

// Handlers возвращает обработчики для слушателя клавиатуры.
func (o *Orchestrator) Handlers(ctx context.Context) (onCapture, onSend trigger.FireHandler) {
	onCapture = func(at time.Time) { o.dispatch(ctx, "capture", at, o.runCapture) }
	onSend = func(at time.Time) { o.dispatch(ctx, "send", at, o.runSend) }
	return onCapture, onSend
}

// Wait дожидается завершения запущенных конвейеров.
func (o *Orchestrator) Wait() { o.wg.Wait() }

// dispatch неблокирующая постановка конвейера. Занятый лимит означает
// отброс: повторный триггер во время обработки не копит очередь.
func (o *Orchestrator) dispatch(ctx context.Context, kind string, at time.Time, run func(ctx context.Context, at time.Time)) {
	select {
	case o.sem <- struct{}{}:
	default:
		o.logger.Warnw("Trigger dropped, analysis limit reached", "kind", kind, "limit", cap(o.sem))
		return
	}
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer func() { <-o.sem }()
		run(ctx, at)
	}()
}

// runCapture скриншот -> анализ -> web -> почта.
func (o *Orchestrator) runCapture(ctx context.Context, at time.Time) {
	path, err := o.shots.Capture()
	if err != nil {
		o.logger.Errorw("Screenshot capture failed", "error", err)
		return
	}
	o.logger.Infow("Screenshot captured", "path", path)

	analysis, ok := o.gateway.AnalyzeImage(ctx, path)
	if ok {
		o.logger.Infow("Screenshot analyzed", "chars", len(analysis))
	}

	if o.cfg.Web.Enabled {
		o.webPush.PushScreenshot(path, analysis, at)
	}
	if o.sender.Enabled() {
		if err := o.sender.SendScreenshot(path, analysis, at); err != nil {
			o.logger.Errorw("Failed to send screenshot email", "error", err)
		}
	}
}

// runSend буфер обмена -> анализ -> web -> почта.
func (o *Orchestrator) runSend(ctx context.Context, at time.Time) {
	text, ok := capture.ReadClipboard()
	if !ok {
		o.logger.Warnw("Clipboard is empty, nothing to send")
		return
	}
	o.logger.Infow("Clipboard captured", "chars", len(text))

	analysis, ok := o.gateway.AnalyzeText(ctx, text)
	if ok {
		o.logger.Infow("Clipboard analyzed", "chars", len(analysis))
	}

	if o.cfg.Web.Enabled {
		o.webPush.PushClipboard(text, analysis, at)
	}
	if o.sender.Enabled() {
		if err := o.sender.SendClipboard(text, analysis, at); err != nil {
			o.logger.Errorw("Failed to send clipboard email", "error", err)
		}
	}
}
