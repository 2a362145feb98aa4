package agent

import (
	"finanalyst/pkg/core/llm"
)

// Config selects the completion backend. Provider and model are fixed
// configuration, not a user-facing surface.
type Config struct {
	ActiveProvider string            `yaml:"active_provider"`
	Models         map[string]string `yaml:"models"`
}

// Manager owns the configured providers and hands out the active one.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{Model: config.Models["gemini"]},
			"deepseek": &llm.DeepSeekProvider{Model: config.Models["deepseek"]},
		},
	}
}

// Active returns the configured provider, falling back to Gemini.
func (m *Manager) Active() llm.Provider {
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

func (m *Manager) ActiveProviderName() string {
	if _, ok := m.providers[m.config.ActiveProvider]; ok {
		return m.config.ActiveProvider
	}
	return "gemini"
}
