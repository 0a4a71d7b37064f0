package services

import (
	"context"
	"log"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

type LLMService struct {
	// Hold the client so we don't recreate it on every request.
	Client llms.Model
	Model  string
}

// NewLLMService initializes the completion client against a pinned model.
func NewLLMService(apiKey, model string) *LLMService {
	if apiKey == "" {
		log.Fatal("CRITICAL ERROR: ANTHROPIC_API_KEY is empty. Did you load the .env file?")
	}

	llm, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		log.Fatal("Failed to create completion client:", err)
	}

	return &LLMService{
		Client: llm,
		Model:  model,
	}
}

// Complete sends one user-role prompt and returns the raw text response.
// The token budget is per call: callers expecting long echoes (extraction)
// need more headroom than the small analysis objects. No retries: transport
// failures go straight back to the caller.
func (s *LLMService) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s.Client, prompt,
		llms.WithModel(s.Model),
		llms.WithMaxTokens(maxTokens),
	)
}
