package suggest

import (
	"context"
	"time"

	genai "google.golang.org/genai"

	"namefix/internal/errors"
	"namefix/internal/lang"
	"namefix/internal/logging"
	"namefix/internal/symbols"
)

// GeminiProvider is a thin wrapper around the official genai client.
// It only performs the API call itself; caching, retries, and cost
// accounting live in Client.
type GeminiProvider struct {
	cli         *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGeminiProvider creates a provider for the given model. An empty API key
// is a fatal credential error so the pipeline never starts half-configured.
func NewGeminiProvider(ctx context.Context, apiKey, model string, temperature float64, maxTokens int) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.MissingCredentials, "suggestion provider credential is not set", nil)
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, errors.New(errors.ProviderUnavailable, "failed to create suggestion client", err)
	}
	return &GeminiProvider{
		cli:         cli,
		model:       model,
		temperature: float32(temperature),
		maxTokens:   int32(maxTokens),
	}, nil
}

// Model returns the configured model name.
func (g *GeminiProvider) Model() string { return g.model }

// Generate sends one prompt and returns the raw model text with token usage.
func (g *GeminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (*RawResult, error) {
	temp := g.temperature
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      &temp,
		MaxOutputTokens:  g.maxTokens,
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: userPrompt}}}},
		cfg,
	)
	if err != nil {
		return nil, errors.New(errors.ProviderUnavailable, "suggestion request failed", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New(errors.ProviderUnavailable, "suggestion response was empty", nil)
	}

	result := &RawResult{Text: resp.Candidates[0].Content.Parts[0].Text}
	if resp.UsageMetadata != nil {
		result.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return result, nil
}

// Options configures a Client.
type Options struct {
	MaxRetries   int
	CacheSize    int
	CacheTTL     time.Duration
	Logger       *logging.Logger
	SystemPrompt string   // overrides the built-in system instruction
	PromptNotes  []string // project naming rules rendered into every prompt
	// LanguageGuidance adds one extra rule line for contexts in that language.
	LanguageGuidance map[lang.Language]string
}

// Client asks a provider for naming suggestions with fingerprint caching,
// retry with exponential backoff, and cost accounting.
type Client struct {
	provider     Provider
	cache        *Cache
	costs        *CostTracker
	logger       *logging.Logger
	maxRetries   int
	systemPrompt string
	notes        []string
	guidance     map[lang.Language]string
	backoff      func(attempt int) time.Duration
}

// NewClient wraps a provider. Zero-valued options fall back to defaults.
func NewClient(provider Provider, opts Options) (*Client, error) {
	cache, err := NewCache(opts.CacheSize, opts.CacheTTL)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	system := opts.SystemPrompt
	if system == "" {
		system = defaultSystemPrompt
	}
	retries := opts.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		provider:     provider,
		cache:        cache,
		costs:        NewCostTracker(),
		logger:       logger,
		maxRetries:   retries,
		systemPrompt: system,
		notes:        opts.PromptNotes,
		guidance:     opts.LanguageGuidance,
		backoff:      defaultBackoff,
	}, nil
}

func defaultBackoff(attempt int) time.Duration {
	return time.Second * time.Duration(1<<attempt)
}

// Costs exposes the accumulated usage totals for reporting.
func (c *Client) Costs() *CostTracker { return c.costs }

// Ask returns a validated suggestion for the symbol, or nil when none could
// be produced. Provider failures and undecodable payloads are retried up to
// MaxRetries extra attempts; a decoded suggestion that fails validation is
// final and is not retried. Ask never returns an error.
func (c *Client) Ask(ctx context.Context, sc *symbols.SymbolContext) *NamingSuggestion {
	if sc == nil {
		return nil
	}

	key := Fingerprint(sc.File, sc.OldName, sc.DeclarationText)
	if s, ok := c.cache.Get(key); ok {
		c.costs.RecordCacheHit()
		return s
	}
	c.costs.RecordCacheMiss()

	notes := c.notes
	if line, ok := c.guidance[sc.Language]; ok && line != "" {
		notes = append(append([]string{}, notes...), line)
	}
	prompt := BuildPrompt(sc, notes)
	var last error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.logger.Warn("suggestion abandoned", map[string]interface{}{
					"file":   sc.File,
					"symbol": sc.OldName,
					"error":  ctx.Err().Error(),
				})
				return nil
			case <-time.After(c.backoff(attempt - 1)):
			}
		}

		raw, err := c.provider.Generate(ctx, c.systemPrompt, prompt)
		if err != nil {
			last = err
			if errors.IsTransient(err) {
				continue
			}
			break
		}
		// Tokens were billed even if the payload turns out unusable.
		c.costs.RecordCall(c.provider.Model(), raw.PromptTokens, raw.CompletionTokens)

		s, err := ParseSuggestion(raw.Text)
		if err != nil {
			last = err
			if errors.CodeOf(err) == errors.SuggestionInvalid {
				c.logger.Debug("suggestion rejected", map[string]interface{}{
					"file":   sc.File,
					"symbol": sc.OldName,
					"reason": err.Error(),
				})
				return nil
			}
			continue
		}

		c.cache.Set(key, s)
		return s
	}

	c.logger.Warn("no suggestion produced", map[string]interface{}{
		"file":     sc.File,
		"symbol":   sc.OldName,
		"attempts": c.maxRetries + 1,
		"error":    errorText(last),
	})
	return nil
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
