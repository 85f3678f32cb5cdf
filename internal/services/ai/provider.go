package ai

import (
	"context"
)

// Intent is the classified kind of a free-text input.
type Intent string

const (
	IntentHabit   Intent = "habit"
	IntentTodo    Intent = "todo"
	IntentNote    Intent = "note"
	IntentUnknown Intent = "unknown"
)

// Classification is the structured result of classifying free text.
// Frequency is only meaningful for habits and is empty when the provider
// returned null or an unrecognized value.
type Classification struct {
	Type      Intent `json:"type"`
	Text      string `json:"text"`
	Frequency string `json:"frequency,omitempty"`
}

// Unknown is the safe fallback classification used whenever the provider
// fails or returns output that does not satisfy the schema.
func Unknown() *Classification {
	return &Classification{Type: IntentUnknown}
}

// Provider is the interface to the language-model backend.
type Provider interface {
	// Classify maps free text to a habit/todo/note/unknown intent with
	// extracted fields. Implementations return an error on provider or
	// schema failure; callers degrade to Unknown().
	Classify(ctx context.Context, input string) (*Classification, error)

	// Suggest produces productivity advice for a user question.
	Suggest(ctx context.Context, query string) (string, error)

	// Summarize produces a short bullet-point summary of note content.
	Summarize(ctx context.Context, content string) (string, error)
}

// ProviderFactory creates a provider from configuration values.
type ProviderFactory func(config map[string]string) (Provider, error)

// ProviderRegistry stores available provider factories by name.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{providers: make(map[string]ProviderFactory)}
}

// Register registers a provider factory under a name.
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// GetProvider builds the named provider.
func (r *ProviderRegistry) GetProvider(name string, config map[string]string) (Provider, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}
	return factory(config)
}

// ErrProviderNotFound is returned when a provider name is not registered.
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return "AI provider not found: " + e.Name
}
