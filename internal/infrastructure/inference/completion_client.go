package inference

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"support-chat-api/internal/config"
	"support-chat-api/internal/domain/chat"
	"support-chat-api/internal/infrastructure/metrics"
	"support-chat-api/internal/utils/httpclients"
	"support-chat-api/internal/utils/platformerrors"
)

// CompletionClient speaks the OpenAI-compatible chat completion protocol and
// maps upstream failures onto the platform error taxonomy. It is the single
// blocking external call in the reply pipeline; no retry is performed here.
type CompletionClient struct {
	client      *resty.Client
	baseURL     string
	model       string
	maxTokens   int
	temperature float32
}

var _ chat.CompletionClient = (*CompletionClient)(nil)

func NewCompletionClient(cfg *config.Config) *CompletionClient {
	client := httpclients.NewClient("ModelProviderClient")
	client.SetBaseURL(cfg.ModelBaseURL)
	client.SetTimeout(cfg.ModelTimeout)
	if cfg.ModelAPIKey != "" {
		client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.ModelAPIKey))
	}

	return &CompletionClient{
		client:      client,
		baseURL:     normalizeBaseURL(cfg.ModelBaseURL),
		model:       cfg.ModelName,
		maxTokens:   cfg.ModelMaxTokens,
		temperature: float32(cfg.ModelTemperature),
	}
}

// Complete implements chat.CompletionClient.
func (c *CompletionClient) Complete(ctx context.Context, prompt chat.Prompt) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.Context},
		},
	}

	var respBody openai.ChatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&respBody).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		metrics.ModelErrorsTotal.WithLabelValues(string(platformerrors.ErrorTypeExternal)).Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "model request failed", err,
			"e1f3a5b7-9c1d-4e3f-8a5b-7c9d1e3f5a7b")
	}
	if resp.IsError() {
		return "", c.errorFromResponse(ctx, resp)
	}

	if len(respBody.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(respBody.Choices[0].Message.Content), nil
}

func (c *CompletionClient) errorFromResponse(ctx context.Context, resp *resty.Response) error {
	var (
		errorType platformerrors.ErrorType
		message   string
		code      string
	)

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		errorType = platformerrors.ErrorTypeUnauthorized
		message = "AI service authentication failed. Please check API key."
		code = "b2d4f6a8-0c2e-4b4d-9f6a-8c0e2b4d6f8a"
	case http.StatusTooManyRequests:
		errorType = platformerrors.ErrorTypeRateLimited
		message = "Too many requests. Please wait a moment and try again."
		code = "d4f6a8b0-2e4c-4d6e-8a0b-0e2c4d6e8a0c"
	default:
		errorType = platformerrors.ErrorTypeExternal
		message = fmt.Sprintf("model request failed with status %d", resp.StatusCode())
		code = "f6a8b0c2-4e6d-4f8a-9b2c-2c4e6f8a0b2d"
	}

	metrics.ModelErrorsTotal.WithLabelValues(string(errorType)).Inc()
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, errorType, message, nil, code)
}

func (c *CompletionClient) endpoint(path string) string {
	return c.baseURL + path
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}
