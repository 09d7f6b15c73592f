// Package middleware provides decorators for LLM adapters.
package middleware

import (
	"context"
	"encoding/json"
	"time"

	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/infrastructure/llm"
)

var _ output.LLMPort = (*Retry)(nil)

// Retry wraps an LLM adapter with exponential backoff. Permanent errors
// (bad API key, missing model) are returned immediately without retrying.
type Retry struct {
	next     output.LLMPort
	attempts int
	base     time.Duration
	logger   output.LoggerPort
}

func NewRetry(next output.LLMPort, attempts int, baseDelay time.Duration, logger output.LoggerPort) *Retry {
	if attempts < 1 {
		attempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &Retry{next: next, attempts: attempts, base: baseDelay, logger: logger}
}

func (r *Retry) Name() string {
	return r.next.Name()
}

func (r *Retry) GenerateStructured(ctx context.Context, req output.StructuredRequest) (json.RawMessage, error) {
	var result json.RawMessage
	err := r.do(ctx, func() error {
		var callErr error
		result, callErr = r.next.GenerateStructured(ctx, req)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Retry) GenerateText(ctx context.Context, req output.TextRequest) (string, error) {
	var result string
	err := r.do(ctx, func() error {
		var callErr error
		result, callErr = r.next.GenerateText(ctx, req)
		return callErr
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func (r *Retry) do(ctx context.Context, call func() error) error {
	var last error
	for i := 0; i < r.attempts; i++ {
		if i > 0 {
			delay := r.base * time.Duration(1<<(i-1))
			if r.logger != nil {
				r.logger.Warn("retrying llm call",
					"attempt", i+1,
					"delay", delay.String(),
					"error", last.Error(),
				)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := call()
		if err == nil {
			return nil
		}
		if llm.IsPermanent(err) {
			return err
		}
		last = err
	}
	return last
}
