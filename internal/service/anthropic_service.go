package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dhealy/applytrack/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const anthropicVersion = "2023-06-01"

// AnthropicService calls the Anthropic messages API. It is the default
// completion provider.
type AnthropicService struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewAnthropicService() *AnthropicService {
	cfg := config.LoadAnthropicConfig()
	return &AnthropicService{
		client: resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(90 * time.Second),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (s *AnthropicService) Complete(ctx context.Context, prompt string, maxTokens int) (*Completion, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", s.apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":      s.model,
			"max_tokens": maxTokens,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post("/v1/messages")
	if err != nil {
		return nil, &CompletionError{Cause: err}
	}
	body := resp.String()
	if resp.IsError() {
		apiMsg := gjson.Get(body, "error.message").String()
		return nil, &CompletionError{Cause: fmt.Errorf("anthropic: HTTP %d: %s", resp.StatusCode(), apiMsg)}
	}

	text := gjson.Get(body, "content.0.text").String()
	if text == "" {
		return nil, &CompletionError{Cause: fmt.Errorf("empty response from model")}
	}

	return &Completion{
		Text:         text,
		InputTokens:  int(gjson.Get(body, "usage.input_tokens").Int()),
		OutputTokens: int(gjson.Get(body, "usage.output_tokens").Int()),
		Model:        s.model,
	}, nil
}
