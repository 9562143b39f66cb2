// Package translation turns a source-language word into its target-language meaning
// by calling an external translation service.
package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/model"
)

// Translator は外部翻訳サービスのアダプターです。
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// 失敗の分類。いずれも model.ErrTranslationUnavailable をラップします。
var (
	ErrUnavailable = fmt.Errorf("%w: provider unavailable", model.ErrTranslationUnavailable)
	ErrRateLimited = fmt.Errorf("%w: rate limited", model.ErrTranslationUnavailable)
	ErrTimeout     = fmt.Errorf("%w: timed out", model.ErrTranslationUnavailable)
)

const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// New builds the configured provider wrapped in a circuit breaker.
func New(cfg config.TranslationConfig, logger *slog.Logger) (Translator, error) {
	var provider Translator
	switch strings.ToLower(cfg.Provider) {
	case ProviderGoogle:
		if cfg.APIKey == "" {
			return nil, errors.New("translation.api_key is required for the google provider")
		}
		provider = NewGoogleTranslator(cfg)
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("translation.api_key is required for the openai provider")
		}
		provider = NewOpenAITranslator(cfg)
	case ProviderNone, "":
		provider = NoneTranslator{}
	default:
		return nil, fmt.Errorf("unknown translation provider %q", cfg.Provider)
	}
	return NewBreakerTranslator(provider, cfg.Breaker.MaxFailures, cfg.Breaker.OpenTimeout, logger), nil
}

// classify maps transport failures onto the adapter error kinds.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func classifyStatus(status int, body string) error {
	switch {
	case status == 429:
		return fmt.Errorf("%w: status %d", ErrRateLimited, status)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, body)
	}
}
