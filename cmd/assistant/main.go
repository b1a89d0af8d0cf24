package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"ExamAssistant/internal/capture"
	"ExamAssistant/internal/config"
	"ExamAssistant/internal/llm"
	"ExamAssistant/internal/mail"
	"ExamAssistant/internal/orchestrator"
	"ExamAssistant/internal/trigger"
	"ExamAssistant/internal/web"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	sugar.Infow(
		"Starting assistant",
		"DebugMode", cfg.DebugMode,
		"TriggerCount", cfg.TriggerCount,
		"TriggerWindow", cfg.TriggerWindow.String(),
		"LLMEnabled", cfg.LLMEnabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway := llm.NewGateway(cfg, sugar)
	if gateway.Enabled() {
		if gateway.CheckAvailability(ctx) {
			sugar.Infow("All analysis providers available")
		} else {
			// Fail-closed: без полной доступности анализ выключается,
			// захваты доставляются без него
			sugar.Warnw("Analysis providers unavailable, analysis disabled for this run")
			gateway.Disable()
		}
	}

	sender := mail.NewSender(cfg.Email, sugar)
	if sender.Enabled() {
		if err := sender.ValidateConfig(); err != nil {
			sugar.Errorw("Email config invalid", "error", err)
		} else if err := sender.SendTest(); err != nil {
			sugar.Errorw("Test email failed", "error", err)
		} else {
			sugar.Infow("Test email sent")
		}
	}

	// Встроенный web-сервис результатов
	if cfg.Web.Enabled {
		store, err := web.NewStore(cfg.Web.DataDir)
		if err != nil {
			sugar.Fatalw("Failed to init web store", "error", err)
		}
		srv := web.NewServer(cfg.Web, store, sugar)
		go func() {
			if err := srv.Run(ctx); err != nil {
				sugar.Errorw("Web server stopped", "error", err)
			}
		}()
	}

	shots := capture.NewScreenshotter(cfg.ScreenshotDir, cfg.ScreenshotKeep, sugar)
	webPush := web.NewClient(cfg.Web, sugar)
	orch := orchestrator.New(cfg, sugar, shots, gateway, sender, webPush)
	onCapture, onSend := orch.Handlers(ctx)

	engine := trigger.NewEngine(cfg.TriggerCount, cfg.TriggerWindow)
	listener := trigger.NewListener(engine, sugar, onCapture, onSend)

	sugar.Infow("Keyboard listener starting", "captureKey", "Enter", "sendKey", "Shift")
	for {
		err := listener.Run(ctx)
		if ctx.Err() != nil {
			break
		}
		// Слушатель упал не из-за остановки процесса — перезапускаем
		sugar.Errorw("Keyboard listener stopped, restarting", "error", err)
		select {
		case <-ctx.Done():
		case <-time.After(3 * time.Second):
			continue
		}
		break
	}

	orch.Wait()
	sugar.Infow("Assistant stopped")
}
