// Package llm is the language-model caller used by every synthesis step.
// It hides the provider behind a two-method Client: free-text completion
// and completion constrained to a JSON schema.
//
// Failures are returned wrapped and never retried here; callers decide
// whether a failed model call is fatal.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// DefaultMaxTokens caps the length of each completion.
const DefaultMaxTokens = 4096

var (
	// ErrNoContent is returned when a response carries no usable content.
	ErrNoContent = errors.New("llm: no content in response")

	// ErrUnknownProvider is returned by New for an unsupported provider.
	ErrUnknownProvider = errors.New("llm: unknown provider")
)

// Client is the interface for interacting with a language model.
type Client interface {
	// Complete sends a prompt and returns the response text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// CompleteStructured sends a prompt and returns a JSON document that
	// conforms to schema.
	CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, schema Schema) (json.RawMessage, error)
}

// Schema names the JSON schema a structured completion must satisfy.
type Schema struct {
	Name        string
	Description string
	JSON        *jsonschema.Schema
}

// SchemaFor infers a Schema from the Go type T.
func SchemaFor[T any](name, description string) (Schema, error) {
	js, err := jsonschema.For[T](nil)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to create %s schema: %w", name, err)
	}
	return Schema{Name: name, Description: description, JSON: js}, nil
}

// raw returns the schema document.
func (s Schema) raw() (json.RawMessage, error) {
	if s.JSON == nil {
		return json.RawMessage(`{"type":"object"}`), nil
	}
	b, err := json.Marshal(s.JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s schema: %w", s.Name, err)
	}
	return b, nil
}

// object splits an object schema into its properties and required list.
func (s Schema) object() (map[string]any, []string, error) {
	b, err := s.raw()
	if err != nil {
		return nil, nil, err
	}
	var doc struct {
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s schema: %w", s.Name, err)
	}
	return doc.Properties, doc.Required, nil
}

// Structured runs a structured completion for T and decodes the result.
func Structured[T any](ctx context.Context, c Client, systemPrompt, userPrompt, name, description string) (T, error) {
	var out T
	schema, err := SchemaFor[T](name, description)
	if err != nil {
		return out, err
	}
	raw, err := c.CompleteStructured(ctx, systemPrompt, userPrompt, schema)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return out, nil
}

// Config selects and configures a provider.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int64
	Logger    *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// New returns the client for cfg.Provider.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "", ProviderAnthropic:
		return NewAnthropicClient(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}
