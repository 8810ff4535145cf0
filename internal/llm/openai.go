package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/pkravets/claimlens/internal/model"
)

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// ExtractClaim asks the model for the claim fields as a JSON object
func (p *OpenAIProvider) ExtractClaim(ctx context.Context, claimText string) (model.ClaimRecord, error) {
	claimModel := p.config.Model
	if claimModel == "" {
		claimModel = openai.GPT4oMini
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       claimModel,
		MaxTokens:   p.config.MaxTokens,
		Temperature: 0, // Extraction must be as deterministic as the API allows
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You extract structured fields from medical insurance claims. Respond with JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(claimText),
			},
		},
	})
	if err != nil {
		return model.ClaimRecord{}, fmt.Errorf("openai extraction: %w", err)
	}

	if len(resp.Choices) == 0 {
		return model.ClaimRecord{}, fmt.Errorf("openai extraction: empty response")
	}

	return parseRecord(resp.Choices[0].Message.Content)
}
