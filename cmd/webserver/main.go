package main

import (
	"context"
	"os/signal"
	"syscall"

	"ExamAssistant/internal/config"
	"ExamAssistant/internal/web"

	"go.uber.org/zap"
)

// Отдельный запуск web-сервиса результатов, без слушателя клавиатуры.
func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := web.NewStore(cfg.Web.DataDir)
	if err != nil {
		sugar.Fatalw("Failed to init web store", "error", err)
	}

	srv := web.NewServer(cfg.Web, store, sugar)
	if err := srv.Run(ctx); err != nil {
		sugar.Errorw("Web server stopped", "error", err)
	}
	sugar.Infow("Web server shut down")
}
