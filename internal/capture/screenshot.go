package capture

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// Screenshotter снимает все мониторы одним кадром по запросу.
// Старые файлы подчищаются, хранится только keep последних.
type Screenshotter struct {
	dir    string
	keep   int
	logger *zap.SugaredLogger
}

func NewScreenshotter(dir string, keep int, logger *zap.SugaredLogger) *Screenshotter {
	return &Screenshotter{dir: dir, keep: keep, logger: logger}
}

// Capture делает снимок всех дисплеев и сохраняет PNG с таймстампом в имени.
// Возвращает путь к сохранённому файлу.
func (s *Screenshotter) Capture() (string, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return "", fmt.Errorf("no active displays detected")
	}

	// Объединённые границы всех мониторов
	union := image.Rect(0, 0, 0, 0)
	for i := range n {
		b := screenshot.GetDisplayBounds(i)
		if i == 0 {
			union = b
			continue
		}
		union = union.Union(b)
	}

	canvas := image.NewRGBA(union)
	for i := range n {
		b := screenshot.GetDisplayBounds(i)
		img, err := screenshot.CaptureRect(b)
		if err != nil {
			s.logger.Errorw("Failed to capture display", "index", i, "error", err)
			continue
		}
		// Копируем в холст со смещением
		dstPoint := image.Pt(b.Min.X-union.Min.X, b.Min.Y-union.Min.Y)
		dstRect := image.Rectangle{Min: dstPoint, Max: dstPoint.Add(b.Size())}
		draw.Draw(canvas, dstRect, img, image.Point{}, draw.Src)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}

	filename := "screenshot_" + time.Now().Format("20060102_150405") + ".png"
	fullPath := filepath.Join(s.dir, filename)
	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create screenshot file: %w", err)
	}

	if err := png.Encode(file, canvas); err != nil {
		_ = file.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("encode screenshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close screenshot file: %w", err)
	}

	s.cleanup()
	return fullPath, nil
}

// cleanup удаляет старые снимки, оставляя keep самых свежих.
func (s *Screenshotter) cleanup() {
	if s.keep <= 0 {
		return
	}
	entries, err := filepath.Glob(filepath.Join(s.dir, "screenshot_*.png"))
	if err != nil || len(entries) <= s.keep {
		return
	}
	// Таймстамп в имени сортируется лексикографически
	sort.Strings(entries)
	for _, path := range entries[:len(entries)-s.keep] {
		if err := os.Remove(path); err != nil {
			s.logger.Warnw("Failed to remove old screenshot", "path", path, "error", err)
		}
	}
}
