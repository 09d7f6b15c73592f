package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ops-assistant/internal/adapter/tool"
	"ops-assistant/internal/application/port/input"
	"ops-assistant/internal/application/port/output"
	"ops-assistant/internal/application/service"
	"ops-assistant/internal/infrastructure/github"
	"ops-assistant/internal/infrastructure/llm/fake"
	"ops-assistant/internal/infrastructure/llm/gemini"
	"ops-assistant/internal/infrastructure/llm/groq"
	"ops-assistant/internal/infrastructure/llm/middleware"
	"ops-assistant/internal/infrastructure/logger"
	"ops-assistant/internal/infrastructure/news"
	"ops-assistant/internal/usecase/executor"
	"ops-assistant/internal/usecase/pipeline"
	"ops-assistant/internal/usecase/planner"
	"ops-assistant/internal/usecase/verifier"
)

const retryBaseDelay = 500 * time.Millisecond

type Container struct {
	LLM      output.LLMPort
	Logger   output.LoggerPort
	Tools    output.ToolRegistry
	Pipeline input.Pipeline
}

type Config struct {
	// Provider selects the LLM backend: groq (default), gemini or fake.
	Provider string

	GroqAPIKey string
	GroqModel  string

	GeminiAPIKey string
	GeminiModel  string

	GitHubToken   string
	GitHubBaseURL string

	NewsAPIKey  string
	NewsBaseURL string

	// LLMMaxAttempts above 1 wraps the provider in retry middleware.
	LLMMaxAttempts int

	LogLevel    string
	Development bool
}

func ConfigFromEnv(env output.ConfigPort) Config {
	appEnv := env.Get("APP_ENV")

	return Config{
		Provider:       env.Get("LLM_PROVIDER"),
		GroqAPIKey:     env.Get("GROQ_API_KEY"),
		GroqModel:      env.Get("GROQ_MODEL"),
		GeminiAPIKey:   env.Get("GEMINI_API_KEY"),
		GeminiModel:    env.Get("GEMINI_MODEL"),
		GitHubToken:    env.Get("GITHUB_TOKEN"),
		GitHubBaseURL:  env.Get("GITHUB_BASE_URL"),
		NewsAPIKey:     env.Get("NEWS_API_KEY"),
		NewsBaseURL:    env.Get("NEWS_BASE_URL"),
		LLMMaxAttempts: env.GetInt("LLM_MAX_ATTEMPTS", 1),
		LogLevel:       env.Get("LOG_LEVEL"),
		Development:    appEnv == "" || appEnv == "dev",
	}
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llm, err := buildLLM(ctx, cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	if cfg.LLMMaxAttempts > 1 {
		llm = middleware.NewRetry(llm, cfg.LLMMaxAttempts, retryBaseDelay, log)
	}

	tools := service.NewToolRegistry()
	registerDataTools(tools, cfg, llm, log)

	pipe := pipeline.New(
		planner.New(llm, tools, log),
		executor.New(tools, log),
		verifier.New(llm, log),
		log,
	)

	return &Container{
		LLM:      llm,
		Logger:   log,
		Tools:    tools,
		Pipeline: pipe,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func buildLLM(ctx context.Context, cfg Config, log output.LoggerPort) (output.LLMPort, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for the groq provider")
		}
		groqCfg := groq.DefaultConfig(cfg.GroqAPIKey)
		groqCfg.Logger = log
		if cfg.GroqModel != "" {
			groqCfg.Model = cfg.GroqModel
		}
		return groq.NewAdapter(groqCfg), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return gemini.NewAdapter(ctx, gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
			Logger: log,
		})
	case "fake":
		return fake.NewAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func registerDataTools(registry *service.ToolRegistryImpl, cfg Config, llm output.LLMPort, log output.LoggerPort) {
	githubClient := github.NewClient(github.Config{
		Token:   cfg.GitHubToken,
		BaseURL: cfg.GitHubBaseURL,
		Logger:  log,
	})
	newsClient := news.NewClient(news.Config{
		APIKey:  cfg.NewsAPIKey,
		BaseURL: cfg.NewsBaseURL,
		Logger:  log,
	})

	registry.Register(tool.NewGitHubTool(githubClient, log))
	registry.Register(tool.NewNewsTool(newsClient, log))
	registry.Register(tool.NewSummarizeTool(llm, log))
}
