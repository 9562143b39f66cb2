package translation

import (
	"context"
	"html"
	"net/http"
	"strings"

	"go_vocab_sets/internal/config"

	"github.com/go-resty/resty/v2"
)

// GoogleTranslator calls the Cloud Translation v2 REST API.
type GoogleTranslator struct {
	client *resty.Client
	apiKey string
	source string
	target string
}

type googleRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func NewGoogleTranslator(cfg config.TranslationConfig) *GoogleTranslator {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.GoogleTranslateBaseURL
	}
	return &GoogleTranslator{
		client: resty.New().SetBaseURL(baseURL),
		apiKey: cfg.APIKey,
		source: cfg.SourceLang,
		target: cfg.TargetLang,
	}
}

func (g *GoogleTranslator) Translate(ctx context.Context, text string) (string, error) {
	var result googleResponse
	res, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(googleRequest{Q: []string{text}, Source: g.source, Target: g.target, Format: "text"}).
		SetResult(&result).
		Post("/language/translate/v2")
	if err != nil {
		return "", classify(ctx, err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", classifyStatus(res.StatusCode(), string(res.Body()))
	}
	if len(result.Data.Translations) == 0 {
		return "", classifyStatus(res.StatusCode(), "no translation returned")
	}
	return strings.TrimSpace(html.UnescapeString(result.Data.Translations[0].TranslatedText)), nil
}
