package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 30 * time.Second

	// MaxSummaryTokens limits the length of note summaries
	MaxSummaryTokens = 300

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"
)

// OpenAIProvider implements the Provider interface using OpenAI's API
type OpenAIProvider struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	return NewOpenAIProviderWithLogger(apiKey, DefaultOpenAIBaseURL, model, nil, false)
}

// NewOpenAIProviderWithLogger creates a new OpenAI provider with logger support
func NewOpenAIProviderWithLogger(apiKey string, baseURL string, model string, logger *zap.Logger, debugMode bool) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// defaultTemperature leaves the temperature unset so the model uses its own
// default; classification passes 0 for deterministic output.
const defaultTemperature = -1

// newCompletionParams assembles a chat completion request. jsonMode requests
// a JSON object response; maxTokens and temperature are omitted from the
// request when negative or zero (temperature only when negative).
func newCompletionParams(model string, messages []openai.ChatCompletionMessageParamUnion, jsonMode bool, maxTokens int64, temperature float64) openai.ChatCompletionNewParams {
	req := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: messages,
	}
	if jsonMode {
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	if maxTokens > 0 {
		req.MaxTokens = openai.Int(maxTokens)
	}
	if temperature >= 0 {
		req.Temperature = openai.Float(temperature)
	}
	return req
}

// complete sends a chat completion request and returns the response content.
// operation labels debug log entries.
func (p *OpenAIProvider) complete(ctx context.Context, operation string, messages []openai.ChatCompletionMessageParamUnion, jsonMode bool, maxTokens int64, temperature float64) (string, error) {
	req := newCompletionParams(p.model, messages, jsonMode, maxTokens, temperature)

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("message_count", len(messages)),
		)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)

	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", operation),
				zap.String("model", p.model),
				zap.Error(err),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		if apiErr := ExtractAPIError(err); apiErr != nil {
			return "", fmt.Errorf("%s: %w", operation, apiErr)
		}
		return "", fmt.Errorf("%s: %w", operation, err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(ErrNoChoicesInResponse)
	}

	content := resp.Choices[0].Message.Content

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", operation),
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", SanitizeResponse(content, true)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return content, nil
}

// Classify maps free text to a structured intent
func (p *OpenAIProvider) Classify(ctx context.Context, input string) (*Classification, error) {
	prompt := buildClassifyPrompt(input)
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}

	// Temperature 0 keeps the structured classification deterministic
	content, err := p.complete(ctx, "classify_input", messages, true, 0, 0)
	if err != nil {
		return nil, err
	}

	return ParseClassification(content)
}

// Suggest produces productivity advice for a user question
func (p *OpenAIProvider) Suggest(ctx context.Context, query string) (string, error) {
	prompt := buildSuggestPrompt(query)
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}

	return p.complete(ctx, "suggest", messages, false, 0, defaultTemperature)
}

// Summarize produces a short bullet-point summary of note content
func (p *OpenAIProvider) Summarize(ctx context.Context, content string) (string, error) {
	prompt := buildSummarizePrompt(content)
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You are a helpful assistant."),
		openai.UserMessage(prompt),
	}

	return p.complete(ctx, "summarize_note", messages, false, MaxSummaryTokens, defaultTemperature)
}

// ParseClassification parses provider output as a strict classification.
// If the content is not bare JSON it tries the outermost brace-delimited
// slice before giving up. Unrecognized type or frequency values are
// normalized rather than rejected: an invalid frequency becomes empty, but
// an invalid type is a schema failure (the caller falls back to unknown).
func ParseClassification(content string) (*Classification, error) {
	var parsed struct {
		Type      string  `json:"type"`
		Text      string  `json:"text"`
		Frequency *string `json:"frequency"`
	}

	raw := content
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if len(raw) > 0 && raw[0] != '{' {
			start := bytes.Index([]byte(raw), []byte("{"))
			end := bytes.LastIndex([]byte(raw), []byte("}"))
			if start != -1 && end != -1 && end > start {
				raw = raw[start : end+1]
			}
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse classification response: %w", err)
		}
	}

	c := &Classification{Text: parsed.Text}

	switch Intent(parsed.Type) {
	case IntentHabit, IntentTodo, IntentNote, IntentUnknown:
		c.Type = Intent(parsed.Type)
	default:
		return nil, fmt.Errorf("classification has invalid type %q", parsed.Type)
	}

	if parsed.Frequency != nil {
		switch *parsed.Frequency {
		case "daily", "weekly":
			c.Frequency = *parsed.Frequency
		}
	}

	return c, nil
}

func buildClassifyPrompt(input string) string {
	return fmt.Sprintf(`Classify the input.

Rules:
- Repeating action → habit
- One-time task → todo
- Thought / reflection / question → note
- Keep text EXACTLY same as input

Return STRICT JSON only:
{
  "type": "habit" | "todo" | "note" | "unknown",
  "text": string,
  "frequency": "daily" | "weekly" | null
}

Input: "%s"`, input)
}

func buildSuggestPrompt(query string) string {
	return fmt.Sprintf(`You are a professional productivity advisor.

Respond in EXACTLY this format:

Answer:
(one short paragraph directly answering the user's question)

Action Points:
- practical step 1
- practical step 2
- practical step 3

Conclusion:
(one short motivating but realistic closing sentence)

Rules:
- Be specific to the user's question
- Use generic motivational language
- Use emojis
- No headings other than the three specified

User Question:
"%s"`, query)
}

func buildSummarizePrompt(content string) string {
	return fmt.Sprintf(`Summarize the note STRICTLY based on what is written.

Rules:
- Use ONLY simple factual bullet points
- Do NOT add explanations, advice, or extra context
- Do NOT use headings
- Do NOT generalize
- Do NOT assume intent beyond the text
- Maximum 3 bullets
- Each bullet must be one clear sentence

NOTE:
"%s"`, content)
}

// RegisterOpenAI registers the OpenAI provider with the registry
func RegisterOpenAI(registry *ProviderRegistry) {
	registry.Register("openai", func(config map[string]string) (Provider, error) {
		apiKey, ok := config["api_key"]
		if !ok || apiKey == "" {
			return nil, fmt.Errorf("openai api_key is required")
		}

		model := config["model"]
		baseURL := config["base_url"]
		if baseURL == "" {
			baseURL = DefaultOpenAIBaseURL
		}

		return NewOpenAIProviderWithLogger(apiKey, baseURL, model, nil, false), nil
	})
}
