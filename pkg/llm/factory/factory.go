package factory

import (
	"fmt"

	"ai-vocabcoach-be/pkg/llm"
	"ai-vocabcoach-be/pkg/llm/ollama"
	"ai-vocabcoach-be/pkg/llm/openaicompat"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "deepseek":
		if baseURL == "" {
			baseURL = "https://api.deepseek.com/v1"
		}
		return openaicompat.NewProvider(baseURL, apiKey, modelName), nil
	case "openai-compatible":
		if baseURL == "" {
			return nil, fmt.Errorf("openai-compatible provider requires a base URL")
		}
		return openaicompat.NewProvider(baseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
