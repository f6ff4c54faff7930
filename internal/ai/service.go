package ai

import (
	"context"
	"fmt"

	"github.com/AndreToral/MVP-PROJECT/internal/logger"
	"google.golang.org/genai"
)

const (
	// contentModel answers study searches; it carries the web-grounded
	// search tool, so the stronger model is worth the latency.
	contentModel = "gemini-2.5-pro"
	// fastModel handles translation and quiz generation.
	fastModel = "gemini-2.5-flash"

	// Low temperature keeps grounded answers close to the sources.
	contentTemperature = 0.2
)

type Service struct {
	client *genai.Client
	log    *logger.Logger
	retry  RetryConfig
}

func NewService(ctx context.Context, apiKey string, log *logger.Logger) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	log.Info("AI service initialized")
	return &Service{client: client, log: log, retry: DefaultRetryConfig}, nil
}

// GenerateAdaptedContent runs the style-adapted study prompt with Google
// Search grounding enabled, retrying transient backend failures with
// exponential backoff. On permanent failure or exhaustion the error is
// OverloadedError and carries a user-safe message.
func (s *Service) GenerateAdaptedContent(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](contentTemperature),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	return executeWithRetry(s.log, s.retry, func() (string, error) {
		result, err := s.client.Models.GenerateContent(ctx, contentModel, genai.Text(prompt), config)
		if err != nil {
			return "", mapError(err)
		}
		text := result.Text()
		if text == "" {
			return "", fmt.Errorf("empty response from generation backend")
		}
		return text, nil
	})
}

// GenerateText runs a plain prompt against the fast model, no search
// grounding and no retries. Used for translation and quiz generation.
func (s *Service) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, fastModel, genai.Text(prompt), nil)
	if err != nil {
		return "", mapError(err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from generation backend")
	}
	return text, nil
}
