package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const countryNormalizerPrompt = "I am gonna send you a word related to a country. " +
	"It could be a typo, a city, a country code or anything. You tell the correct " +
	"country (api compatible) name so i could use in close crm lead api. Just mention name"

// CountryNormalizer turns free-text country input ("Grmany", "NYC", "uk")
// into a canonical country name via a chat completion. The model's answer is
// trusted as-is; there is no local country table to check it against.
type CountryNormalizer struct {
	client *openai.Client
	model  string
}

func NewCountryNormalizer(apiKey, model string) *CountryNormalizer {
	return &CountryNormalizer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (n *CountryNormalizer) Normalize(ctx context.Context, country string) (string, error) {
	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: countryNormalizerPrompt},
			{Role: openai.ChatMessageRoleUser, Content: country},
		},
	})
	if err != nil {
		return "", fmt.Errorf("country normalizer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("country normalizer: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
