package web

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ExamAssistant/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server HTTP-сервис результатов: принимает захваченное содержимое
// от ассистента и отдаёт его для просмотра.
type Server struct {
	cfg    config.WebConfig
	store  *Store
	logger *zap.SugaredLogger
}

func NewServer(cfg config.WebConfig, store *Store, logger *zap.SugaredLogger) *Server {
	return &Server{cfg: cfg, store: store, logger: logger}
}

// Router собирает маршруты API.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/screenshot", s.handleScreenshot)
	api.POST("/clipboard", s.handleClipboard)
	api.GET("/results", s.handleResults)
	api.GET("/results/latest", s.handleLatest)
	api.GET("/results/:id/image", s.handleImage)
	api.DELETE("/results/:id", s.handleDelete)

	return r
}

// Run блокирующий запуск с корректной остановкой по контексту.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("Web server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type screenshotRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
	Analysis    string `json:"analysis"`
	Timestamp   string `json:"timestamp"`
}

func (s *Server) handleScreenshot(c *gin.Context) {
	var req screenshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Timestamp == "" {
		req.Timestamp = time.Now().Format(time.RFC3339)
	}
	// Кривой base64 — вина клиента, ошибка записи — наша
	img, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decode image: " + err.Error()})
		return
	}
	result, err := s.store.AddScreenshot(img, req.Analysis, req.Timestamp)
	if err != nil {
		s.logger.Errorw("Failed to store screenshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": result.ID})
}

type clipboardRequest struct {
	Text      string `json:"text" binding:"required"`
	Analysis  string `json:"analysis"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleClipboard(c *gin.Context) {
	var req clipboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Timestamp == "" {
		req.Timestamp = time.Now().Format(time.RFC3339)
	}
	result, err := s.store.AddClipboard(req.Text, req.Analysis, req.Timestamp)
	if err != nil {
		s.logger.Errorw("Failed to store clipboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": result.ID})
}

func (s *Server) handleResults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": s.store.List()})
}

func (s *Server) handleLatest(c *gin.Context) {
	result, ok := s.store.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleImage(c *gin.Context) {
	id := c.Param("id")
	for _, r := range s.store.List() {
		if r.ID == id && r.ImageFile != "" {
			c.File(s.store.ImagePath(r.ImageFile))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func (s *Server) handleDelete(c *gin.Context) {
	removed, err := s.store.Delete(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
