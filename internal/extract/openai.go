package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/jackzampolin/registrar/internal/schema"
	"github.com/jackzampolin/registrar/internal/types"
)

const (
	OpenAIExtractorName = "openai"
	openAIDefaultModel  = "gpt-4o"

	// GPT-4o pricing in USD per 1M tokens.
	openAIGPT4oInputCostPer1M  = 2.50
	openAIGPT4oOutputCostPer1M = 10.00
)

// OpenAIConfig holds configuration for the OpenAI vision extractor.
type OpenAIConfig struct {
	APIKey      string
	Model       string        // "gpt-4o" (default)
	MaxTokens   int           // Completion token cap (default 4000)
	MaxRetries  int           // Attempts across call + parse + validation (default 3)
	RetryDelay  time.Duration // Base retry delay (default 2s)
	Timeout     time.Duration // HTTP timeout
	Temperature float64       // Sampling temperature (default 0.1; low for consistent extraction)
	BaseURL     string        // Optional (tests)
	HTTPClient  *http.Client  // Optional (tests)
	Logger      *slog.Logger
}

// OpenAIExtractor extracts transcript page data using the OpenAI vision API.
type OpenAIExtractor struct {
	model       string
	maxTokens   int
	maxRetries  int
	retryDelay  time.Duration
	temperature float64
	client      openai.Client
	log         *slog.Logger
}

// NewOpenAIExtractor creates a new OpenAI vision extractor.
func NewOpenAIExtractor(cfg OpenAIConfig) *OpenAIExtractor {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		// retry-go owns the retry loop here because parse and schema
		// validation failures must be retried too, not just transport errors.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIExtractor{
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		temperature: cfg.Temperature,
		client:      openai.NewClient(opts...),
		log:         cfg.Logger,
	}
}

// Name returns the extractor identifier.
func (e *OpenAIExtractor) Name() string {
	return OpenAIExtractorName
}

// ExtractPage extracts structured data from a single page image. The model
// output is parsed (with code-fence recovery), validated against the
// transcript schema, and decoded into a PageExtraction. Call, parse, and
// validation failures are all retried up to MaxRetries.
func (e *OpenAIExtractor) ExtractPage(ctx context.Context, image []byte, pageNum, totalPages int) (*types.PageExtraction, error) {
	schemaDoc, err := schema.Raw()
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(pageNum, totalPages, schemaDoc)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)

	e.log.Debug("extracting page", "page", pageNum, "total_pages", totalPages, "model", e.model)

	var (
		raw   json.RawMessage
		usage types.Usage
	)
	err = retry.Do(
		func() error {
			resp, callErr := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
				Model: openai.ChatModel(e.model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
						openai.TextContentPart(prompt),
						openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
							URL:    dataURL,
							Detail: "high",
						}),
					}),
				},
				MaxTokens:   openai.Int(int64(e.maxTokens)),
				Temperature: openai.Float(e.temperature),
			})
			if callErr != nil {
				return fmt.Errorf("chat completion failed: %w", callErr)
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("chat completion returned no choices")
			}

			usage = types.Usage{
				PromptTokens:     int(resp.Usage.PromptTokens),
				CompletionTokens: int(resp.Usage.CompletionTokens),
				TotalTokens:      int(resp.Usage.TotalTokens),
			}
			usage.CostUSD = float64(usage.PromptTokens)/1e6*openAIGPT4oInputCostPer1M +
				float64(usage.CompletionTokens)/1e6*openAIGPT4oOutputCostPer1M

			parsed, parseErr := parseExtractionJSON(resp.Choices[0].Message.Content)
			if parseErr != nil {
				return parseErr
			}
			if validateErr := schema.Validate(parsed); validateErr != nil {
				return validateErr
			}

			raw = parsed
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.maxRetries)),
		retry.Delay(e.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			e.log.Warn("extraction attempt failed", "page", pageNum, "attempt", attempt+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page %d: %w", pageNum, err)
	}

	page := &types.PageExtraction{
		PageNumber: pageNum,
		Model:      e.model,
		Usage:      &usage,
	}
	if err := json.Unmarshal(raw, page); err != nil {
		return nil, fmt.Errorf("failed to decode extraction for page %d: %w", pageNum, err)
	}

	e.log.Debug("page extracted",
		"page", pageNum,
		"courses", len(page.Courses),
		"tokens", usage.TotalTokens)

	return page, nil
}
