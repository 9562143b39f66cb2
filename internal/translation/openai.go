package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_vocab_sets/internal/config"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranslator asks a chat model for a short dictionary meaning.
type OpenAITranslator struct {
	client *openai.Client
	model  string
	source string
	target string
}

func NewOpenAITranslator(cfg config.TranslationConfig) *OpenAITranslator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		source: cfg.SourceLang,
		target: cfg.TargetLang,
	}
}

func (o *OpenAITranslator) Translate(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the %s word '%s' to %s. Respond with only the translation, nothing else.",
					o.source, text, o.target),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", classifyStatus(apiErr.HTTPStatusCode, apiErr.Message)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", classifyStatus(reqErr.HTTPStatusCode, reqErr.Error())
		}
		return "", classify(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no translation returned", ErrUnavailable)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
