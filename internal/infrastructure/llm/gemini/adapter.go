// Package gemini provides an LLM adapter backed by the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	genai "google.golang.org/genai"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/domain/entity"
	"ops-assistant/internal/infrastructure/llm"
)

const DefaultModel = "gemini-2.0-flash"

var _ output.LLMPort = (*Adapter)(nil)

// Adapter is a thin wrapper around the official genai client. Retries and
// rate limiting are applied by middleware, not here.
type Adapter struct {
	client *genai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey string
	Model  string
	Logger output.LoggerPort
}

func NewAdapter(ctx context.Context, cfg Config) (*Adapter, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Adapter{client: client, model: cfg.Model, logger: cfg.Logger}, nil
}

func (a *Adapter) Name() string {
	return "gemini"
}

func (a *Adapter) GenerateStructured(ctx context.Context, req output.StructuredRequest) (json.RawMessage, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if system := systemOrDefault(req.System); system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	text, err := a.generate(ctx, llm.StructuredPrompt(req), cfg)
	if err != nil {
		return nil, err
	}

	content := llm.ExtractJSON(text)
	if !json.Valid([]byte(content)) {
		return nil, &entity.OutputParsingError{Schema: req.SchemaName, Raw: text, Err: llm.ErrInvalidJSON}
	}
	return json.RawMessage(content), nil
}

func (a *Adapter) GenerateText(ctx context.Context, req output.TextRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if system := systemOrDefault(req.System); system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	return a.generate(ctx, req.Prompt, cfg)
}

func (a *Adapter) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if a.logger != nil {
		a.logger.Debug("calling gemini api", "model", a.model, "promptLength", len(prompt))
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		cfg,
	)
	if err != nil {
		return "", wrapErr(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func systemOrDefault(system string) string {
	if system == "" {
		return llm.DefaultSystem
	}
	return system
}

// wrapErr marks client-side failures as permanent so retry middleware gives
// up immediately. Gemini reports a bad API key as 400 INVALID_ARGUMENT.
func wrapErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		wrapped := fmt.Errorf("gemini api error (%d %s): %s", apiErr.Code, apiErr.Status, apiErr.Message)
		switch apiErr.Code {
		case 400, 401, 403, 404:
			return llm.NewPermanentError(wrapped)
		}
		return wrapped
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
