package llm

import (
	"strings"

	"ExamAssistant/internal/config"
)

// Registry сопоставляет идентификатор провайдера с адаптером, а роль —
// с провайдером и моделью. Строится один раз на старте и дальше
// не мутирует, поэтому безопасен для конкурентных вызовов.
type Registry struct {
	clients map[string]Client
	roles   map[string]config.RoleConfig
}

func NewRegistry(cfg *config.Config) *Registry {
	clients := map[string]Client{
		config.ProviderOllama: NewOllama(cfg.Ollama, cfg.LLMTimeout),
		config.ProviderOpenAI: NewOpenAI(cfg.OpenAI),
		config.ProviderClaude: NewClaude(cfg.Claude),
		config.ProviderDoubao: NewDoubao(cfg.Doubao),
	}
	for name, cp := range cfg.ParseCustomProviders() {
		clients[name] = NewCustom(cp.Name, cp.APIURL, cp.APIKey, cfg.LLMTimeout)
	}

	roles := map[string]config.RoleConfig{
		config.RoleText:   cfg.TextModel,
		config.RoleVision: cfg.VisionModel,
	}

	// Неизвестные провайдеры из ролей заранее получают generic-адаптер:
	// это самый частый способ подключить пользовательский бэкенд.
	for _, rc := range roles {
		name := strings.ToLower(strings.TrimSpace(rc.Provider))
		if name == "" {
			continue
		}
		if _, ok := clients[name]; !ok {
			clients[name] = NewCustom(name, "", "", cfg.LLMTimeout)
		}
	}

	return &Registry{clients: clients, roles: roles}
}

// Resolve возвращает адаптер и конфигурацию роли.
func (r *Registry) Resolve(role string) (Client, config.RoleConfig, error) {
	rc, ok := r.roles[role]
	if !ok {
		return nil, config.RoleConfig{}, &ConfigError{Reason: "unknown role " + role}
	}
	if rc.Provider == "" || rc.Model == "" {
		return nil, config.RoleConfig{}, &ConfigError{Reason: role + ": provider or model not configured"}
	}
	client, ok := r.clients[strings.ToLower(strings.TrimSpace(rc.Provider))]
	if !ok {
		// Не должно случаться: роли покрываются при построении
		return nil, config.RoleConfig{}, &ConfigError{Reason: "no adapter for provider " + rc.Provider}
	}
	return client, rc, nil
}

// RoleProviders уникальные провайдеры, на которые ссылаются настроенные роли.
func (r *Registry) RoleProviders() []string {
	seen := make(map[string]struct{}, len(r.roles))
	out := make([]string, 0, len(r.roles))
	for _, rc := range r.roles {
		name := strings.ToLower(strings.TrimSpace(rc.Provider))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ClientFor адаптер по идентификатору провайдера.
func (r *Registry) ClientFor(provider string) (Client, bool) {
	c, ok := r.clients[strings.ToLower(strings.TrimSpace(provider))]
	return c, ok
}
