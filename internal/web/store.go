package web

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Типы результатов захвата.
const (
	ResultScreenshot = "screenshot"
	ResultClipboard  = "clipboard"
)

// Храним не больше maxResults записей, старые вытесняются.
const maxResults = 100

// Result одна запись захвата с результатом анализа.
type Result struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Analysis  string `json:"analysis,omitempty"`
	Text      string `json:"text,omitempty"`
	ImageFile string `json:"image_file,omitempty"` // Имя файла в каталоге images
}

// Store файловое хранилище результатов: results.json плюс каталог
// картинок. Переживает перезапуск сервиса.
type Store struct {
	mu      sync.Mutex
	dataDir string
	results []Result
}

func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, "images"), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dataDir: dataDir}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) resultsPath() string { return filepath.Join(s.dataDir, "results.json") }

// ImagePath абсолютный путь к сохранённой картинке результата.
func (s *Store) ImagePath(imageFile string) string {
	return filepath.Join(s.dataDir, "images", imageFile)
}

func (s *Store) load() error {
	b, err := os.ReadFile(s.resultsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read results: %w", err)
	}
	if err := json.Unmarshal(b, &s.results); err != nil {
		// Повреждённый файл не валит сервис, начинаем с чистого листа
		s.results = nil
	}
	return nil
}

// persist вызывается под мьютексом.
func (s *Store) persist() error {
	b, err := json.MarshalIndent(s.results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(s.resultsPath(), b, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// AddScreenshot сохраняет картинку на диск и добавляет запись.
// Возвращает созданную запись. Декодирование входного формата —
// забота вызывающего; здесь только ошибки хранилища.
func (s *Store) AddScreenshot(img []byte, analysis, timestamp string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	imageFile := id + ".png"
	if err := os.WriteFile(s.ImagePath(imageFile), img, 0o644); err != nil {
		return Result{}, fmt.Errorf("write image: %w", err)
	}

	r := Result{
		ID:        id,
		Type:      ResultScreenshot,
		Timestamp: timestamp,
		Analysis:  analysis,
		ImageFile: imageFile,
	}
	s.append(r)
	return r, s.persist()
}

// AddClipboard добавляет запись с текстом буфера обмена.
func (s *Store) AddClipboard(text, analysis, timestamp string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Result{
		ID:        uuid.NewString(),
		Type:      ResultClipboard,
		Timestamp: timestamp,
		Analysis:  analysis,
		Text:      text,
	}
	s.append(r)
	return r, s.persist()
}

// append вызывается под мьютексом. Новые записи в начале списка.
func (s *Store) append(r Result) {
	s.results = append([]Result{r}, s.results...)
	if len(s.results) > maxResults {
		for _, old := range s.results[maxResults:] {
			if old.ImageFile != "" {
				_ = os.Remove(s.ImagePath(old.ImageFile))
			}
		}
		s.results = s.results[:maxResults]
	}
}

// List все записи, новые первыми.
func (s *Store) List() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Latest самая свежая запись.
func (s *Store) Latest() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		return Result{}, false
	}
	return s.results[0], true
}

// Delete удаляет запись и её картинку.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.results {
		if r.ID != id {
			continue
		}
		if r.ImageFile != "" {
			_ = os.Remove(s.ImagePath(r.ImageFile))
		}
		s.results = append(s.results[:i], s.results[i+1:]...)
		return true, s.persist()
	}
	return false, nil
}
