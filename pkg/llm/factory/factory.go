package factory

import (
	"fmt"

	"ai-voiceshop-be/pkg/llm"
	"ai-voiceshop-be/pkg/llm/ollama"
	"ai-voiceshop-be/pkg/llm/openaiprovider"
)

// NewLLMProvider selects the text-generation backend at construction time.
func NewLLMProvider(providerType, modelName, baseURL, openAIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openaiprovider.NewOpenAIProvider(openAIKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
