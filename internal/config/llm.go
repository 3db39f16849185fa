package config

import (
	"os"
	"sync"
)

// LLMConfig selects which completion provider the pipelines call.
type LLMConfig struct {
	Provider string // "anthropic" (default) or "gemini"
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "anthropic"
		}
		llmConfig = &LLMConfig{Provider: provider}
	})
	return llmConfig
}
