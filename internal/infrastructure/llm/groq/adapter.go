package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
	"ops-assistant/internal/infrastructure/llm"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"

	defaultTemperature = 0.1
	defaultMaxTokens   = 2048
)

var _ output.LLMPort = (*Adapter)(nil)

// Adapter talks to Groq through its OpenAI-compatible endpoint.
type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   DefaultModel,
		BaseURL: DefaultBaseURL,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.Debug("LLM request",
		"method", req.Method,
		"url", req.URL.String(),
		"contentLength", req.ContentLength,
	)

	resp, err := t.base.RoundTrip(req)

	if resp != nil {
		t.logger.Debug("LLM response", "status", resp.Status)
	}

	return resp, err
}

func NewAdapter(cfg Config) *Adapter {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	if cfg.Logger != nil {
		config.HTTPClient = &http.Client{
			Transport: &loggingTransport{
				base:   http.DefaultTransport,
				logger: cfg.Logger,
			},
		}
	}

	return &Adapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

func (a *Adapter) Name() string {
	return "groq"
}

func (a *Adapter) GenerateStructured(ctx context.Context, req output.StructuredRequest) (json.RawMessage, error) {
	system := req.System
	if system == "" {
		system = llm.DefaultSystem
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: llm.StructuredPrompt(req)},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, wrapErr("structured completion", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content
	raw := llm.ExtractJSON(content)
	if !json.Valid([]byte(raw)) {
		return nil, &entity.OutputParsingError{
			Schema: req.SchemaName,
			Raw:    content,
			Err:    llm.ErrInvalidJSON,
		}
	}

	return json.RawMessage(raw), nil
}

func (a *Adapter) GenerateText(ctx context.Context, req output.TextRequest) (string, error) {
	system := req.System
	if system == "" {
		system = llm.DefaultSystem
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", wrapErr("text completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// wrapErr marks credential failures permanent so the retry middleware
// does not hammer an endpoint that already said no.
func wrapErr(op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return llm.NewPermanentError(wrapped)
		}
	}
	return wrapped
}
