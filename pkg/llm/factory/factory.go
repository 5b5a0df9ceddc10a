package factory

import (
	"fmt"

	"travelorbit-be/pkg/llm"
	"travelorbit-be/pkg/llm/ollama"
	"travelorbit-be/pkg/llm/openrouter"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openrouter":
		return openrouter.NewOpenRouterProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
