package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Роли анализа. Текстовая и визуальная модели настраиваются независимо.
const (
	RoleText   = "text"
	RoleVision = "vision"
)

// Известные идентификаторы провайдеров. Всё остальное уходит
// в generic OpenAI-совместимый адаптер.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderDoubao = "doubao"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` // Режим дебага

	// Триггеры
	TriggerCount  int           `env:"TRIGGER_COUNT"`  // Сколько нажатий нужно для срабатывания
	TriggerWindow time.Duration `env:"TRIGGER_WINDOW"` // Окно времени, в котором считаются нажатия

	// LLM
	LLMEnabled bool          `env:"LLM_ENABLED"` // Главный переключатель AI-анализа
	LLMTimeout time.Duration `env:"LLM_TIMEOUT"` // Таймаут одного запроса к модели

	TextModel   RoleConfig // Конфигурация текстовой роли
	VisionModel RoleConfig // Конфигурация визуальной роли

	Ollama OllamaConfig
	OpenAI OpenAIConfig
	Claude ClaudeConfig
	Doubao DoubaoConfig

	// Пользовательские OpenAI-совместимые провайдеры: "name|url|key;name|url|key"
	CustomProviders []string `env:"CUSTOM_PROVIDERS" envSeparator:";"`

	// Скриншоты
	ScreenshotDir  string `env:"SCREENSHOT_DIR"`  // Папка для сохранения скриншотов
	ScreenshotKeep int    `env:"SCREENSHOT_KEEP"` // Сколько последних скриншотов хранить

	// Почта
	Email EmailConfig

	// Web-сервис результатов
	Web WebConfig

	// Ограничение одновременных анализов после срабатывания триггеров
	MaxConcurrentAnalysis int `env:"MAX_CONCURRENT_ANALYSIS"`
}

// RoleConfig привязка роли к провайдеру и модели.
type RoleConfig struct {
	Provider string // Идентификатор провайдера
	Model    string // Имя модели у провайдера
	Prompt   string // Шаблон промпта; для text подставляется {content}
}

// OllamaConfig локальный inference-сервер, без авторизации.
type OllamaConfig struct {
	BaseURL string `env:"OLLAMA_BASE_URL"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"` // Пусто — дефолтный эндпоинт SDK
}

type ClaudeConfig struct {
	APIKey  string `env:"CLAUDE_API_KEY"`
	BaseURL string `env:"CLAUDE_BASE_URL"` // Пусто — дефолтный эндпоинт SDK
}

// DoubaoConfig региональный Ark-эндпоинт (OpenAI-совместимый).
type DoubaoConfig struct {
	APIKey  string `env:"DOUBAO_API_KEY"` // Пусто — берём ARK_API_KEY из окружения
	BaseURL string `env:"DOUBAO_BASE_URL"`
	// Дополнительные заголовки "Name:Value". Семантика на стороне вендора,
	// передаём как есть.
	ExtraHeaders []string `env:"DOUBAO_EXTRA_HEADERS" envSeparator:";"`
}

type EmailConfig struct {
	Enabled        bool   `env:"EMAIL_ENABLED"`
	SMTPServer     string `env:"SMTP_SERVER"`
	SMTPPort       int    `env:"SMTP_PORT"`
	SenderEmail    string `env:"SENDER_EMAIL"`
	SenderPassword string `env:"SENDER_PASSWORD"`
	ReceiverEmail  string `env:"RECEIVER_EMAIL"`
}

type WebConfig struct {
	Enabled bool   `env:"WEB_ENABLED"`
	Host    string `env:"WEB_HOST"`
	Port    int    `env:"WEB_PORT"`
	DataDir string `env:"WEB_DATA_DIR"` // Папка с results.json и сохранёнными картинками
}

// CustomProvider разобранная запись из CUSTOM_PROVIDERS.
type CustomProvider struct {
	Name   string
	APIURL string
	APIKey string
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:     false,
		TriggerCount:  3,
		TriggerWindow: 2 * time.Second,
		LLMEnabled:    false,
		LLMTimeout:    60 * time.Second,
		TextModel: RoleConfig{
			Prompt: "Проанализируй следующий текст: {content}",
		},
		VisionModel: RoleConfig{
			Prompt: "Проанализируй содержимое изображения. Если это задача — дай подробное решение.",
		},
		Ollama: OllamaConfig{BaseURL: "http://localhost:11434"},
		Doubao: DoubaoConfig{
			BaseURL:      "https://ark.cn-beijing.volces.com/api/v3",
			ExtraHeaders: []string{"x-is-encrypted:true"},
		},
		ScreenshotDir:         "screenshots",
		ScreenshotKeep:        10,
		Email:                 EmailConfig{Enabled: false, SMTPPort: 465},
		Web:                   WebConfig{Enabled: true, Host: "0.0.0.0", Port: 8000, DataDir: "web_data"},
		MaxConcurrentAnalysis: 4,
	}
}

// NewConfig загружает конфигурацию приложения.
func NewConfig() *Config {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	_ = env.Parse(cfg)

	// Роли задаются плоскими переменными окружения
	if v := os.Getenv("TEXT_PROVIDER"); v != "" {
		cfg.TextModel.Provider = v
	}
	if v := os.Getenv("TEXT_MODEL"); v != "" {
		cfg.TextModel.Model = v
	}
	if v := os.Getenv("TEXT_PROMPT"); v != "" {
		cfg.TextModel.Prompt = v
	}
	if v := os.Getenv("VISION_PROVIDER"); v != "" {
		cfg.VisionModel.Provider = v
	}
	if v := os.Getenv("VISION_MODEL"); v != "" {
		cfg.VisionModel.Model = v
	}
	if v := os.Getenv("VISION_PROMPT"); v != "" {
		cfg.VisionModel.Prompt = v
	}
	// ARK_API_KEY как запасной источник ключа Doubao
	if cfg.Doubao.APIKey == "" {
		cfg.Doubao.APIKey = os.Getenv("ARK_API_KEY")
	}

	flag.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	flag.IntVar(&cfg.TriggerCount, "trigger-count", cfg.TriggerCount, "сколько нажатий нужно для срабатывания триггера")
	flag.DurationVar(&cfg.TriggerWindow, "trigger-window", cfg.TriggerWindow, "окно времени для подсчёта нажатий, напр. 2s")
	flag.BoolVar(&cfg.LLMEnabled, "llm-enabled", cfg.LLMEnabled, "включить AI-анализ захваченного содержимого")
	flag.DurationVar(&cfg.LLMTimeout, "llm-timeout", cfg.LLMTimeout, "таймаут одного запроса к модели")
	flag.StringVar(&cfg.TextModel.Provider, "text-provider", cfg.TextModel.Provider, "провайдер текстовой роли (ollama|openai|claude|doubao|<custom>)")
	flag.StringVar(&cfg.TextModel.Model, "text-model", cfg.TextModel.Model, "модель текстовой роли")
	flag.StringVar(&cfg.VisionModel.Provider, "vision-provider", cfg.VisionModel.Provider, "провайдер визуальной роли")
	flag.StringVar(&cfg.VisionModel.Model, "vision-model", cfg.VisionModel.Model, "модель визуальной роли")
	flag.StringVar(&cfg.Ollama.BaseURL, "ollama-base-url", cfg.Ollama.BaseURL, "базовый URL Ollama")
	flag.StringVar(&cfg.ScreenshotDir, "screenshot-dir", cfg.ScreenshotDir, "папка для сохранения скриншотов")
	flag.IntVar(&cfg.ScreenshotKeep, "screenshot-keep", cfg.ScreenshotKeep, "сколько последних скриншотов хранить")
	flag.BoolVar(&cfg.Email.Enabled, "email-enabled", cfg.Email.Enabled, "включить отправку почты")
	flag.BoolVar(&cfg.Web.Enabled, "web-enabled", cfg.Web.Enabled, "включить web-сервис результатов")
	flag.StringVar(&cfg.Web.Host, "web-host", cfg.Web.Host, "адрес web-сервиса")
	flag.IntVar(&cfg.Web.Port, "web-port", cfg.Web.Port, "порт web-сервиса")
	flag.IntVar(&cfg.MaxConcurrentAnalysis, "max-concurrent-analysis", cfg.MaxConcurrentAnalysis, "максимум одновременных анализов")
	flag.Parse()

	return cfg
}

// ParseCustomProviders разбирает записи "name|url|key". Повреждённые
// записи молча пропускаются.
func (c *Config) ParseCustomProviders() map[string]CustomProvider {
	out := make(map[string]CustomProvider, len(c.CustomProviders))
	for _, raw := range c.CustomProviders {
		parts := strings.SplitN(strings.TrimSpace(raw), "|", 3)
		if len(parts) != 3 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(parts[0]))
		if name == "" {
			continue
		}
		out[name] = CustomProvider{
			Name:   name,
			APIURL: strings.TrimSpace(parts[1]),
			APIKey: strings.TrimSpace(parts[2]),
		}
	}
	return out
}
