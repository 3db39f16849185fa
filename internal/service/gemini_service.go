package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/dhealy/applytrack/internal/config"
	"google.golang.org/genai"
)

// GeminiService is the alternate completion provider, selected with
// LLM_PROVIDER=gemini. Transient API failures are retried with exponential
// backoff; the pipelines above still treat any returned error as one failed
// call.
type GeminiService struct {
	client         *genai.Client
	model          string
	maxRetries     int
	baseDelay      time.Duration
	maxDelay       time.Duration
	requestTimeout time.Duration
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	cfg := config.LoadGeminiConfig()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiService{
		client:         client,
		model:          cfg.Model,
		maxRetries:     3,
		baseDelay:      time.Second,
		maxDelay:       90 * time.Second,
		requestTimeout: 90 * time.Second,
	}, nil
}

func (s *GeminiService) Complete(ctx context.Context, prompt string, maxTokens int) (*Completion, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &CompletionError{Cause: fmt.Errorf("prompt cannot be empty")}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0.1)),
		MaxOutputTokens: int32(maxTokens),
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d for Complete after %v", attempt, s.maxRetries, delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, &CompletionError{Cause: timeoutCtx.Err()}
			}
		}

		result, err := s.client.Models.GenerateContent(
			timeoutCtx,
			s.model,
			genai.Text(prompt),
			genConfig,
		)

		if err == nil {
			text := result.Text()
			if text == "" {
				return nil, &CompletionError{Cause: fmt.Errorf("empty response from model")}
			}
			completion := &Completion{Text: text, Model: s.model}
			if result.UsageMetadata != nil {
				completion.InputTokens = int(result.UsageMetadata.PromptTokenCount)
				completion.OutputTokens = int(result.UsageMetadata.CandidatesTokenCount)
			}
			return completion, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			log.Printf("Non-retryable error: %v", err)
			return nil, &CompletionError{Cause: err}
		}

		log.Printf("Retryable error on attempt %d: %v", attempt+1, err)
	}

	return nil, &CompletionError{Cause: fmt.Errorf("max retries (%d) exceeded: %w", s.maxRetries, lastErr)}
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.maxDelay {
		delay = s.maxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429: // Rate limit
			return true
		case 500, 502, 503, 504: // Server errors
			return true
		case 400, 401, 403, 404: // Client errors
			return false
		}
	}

	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}

	return false
}
