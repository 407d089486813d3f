package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when Config.Model is empty.
const DefaultAnthropicModel = "claude-sonnet-4-5"

// AnthropicClient implements Client using the Anthropic Messages API.
type AnthropicClient struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	log       *slog.Logger
}

// NewAnthropicClient creates a new Anthropic-based client. Without an
// APIKey the SDK reads ANTHROPIC_API_KEY from the environment.
func NewAnthropicClient(cfg Config, opts ...option.RequestOption) *AnthropicClient {
	cfg.applyDefaults()
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}
	var reqOpts []option.RequestOption
	if cfg.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)
	return &AnthropicClient{
		client:    anthropic.NewClient(reqOpts...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
		log:       cfg.Logger,
	}
}

// Complete sends a prompt to Claude and returns the response text.
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	msg, err := c.send(ctx, c.params(systemPrompt, userPrompt))
	if err != nil {
		return "", err
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", ErrNoContent
}

// CompleteStructured forces a single tool whose input schema is schema
// and returns the tool input.
func (c *AnthropicClient) CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, schema Schema) (json.RawMessage, error) {
	props, required, err := schema.object()
	if err != nil {
		return nil, err
	}
	tool := anthropic.ToolParam{
		Name:        schema.Name,
		Description: anthropic.Opt(schema.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
	params := c.params(systemPrompt, userPrompt)
	params.Tools = []anthropic.ToolUnionParam{{OfTool: &tool}}
	params.ToolChoice = anthropic.ToolChoiceUnionParam{
		OfTool: &anthropic.ToolChoiceToolParam{Name: schema.Name},
	}

	msg, err := c.send(ctx, params)
	if err != nil {
		return nil, err
	}
	for _, block := range msg.Content {
		if block.Type != "tool_use" {
			continue
		}
		tu := block.AsToolUse()
		if tu.Name == schema.Name {
			return json.RawMessage(tu.Input), nil
		}
	}
	return nil, fmt.Errorf("%w: no %s tool call", ErrNoContent, schema.Name)
}

func (c *AnthropicClient) params(systemPrompt, userPrompt string) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
}

func (c *AnthropicClient) send(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	start := time.Now()
	c.log.Debug("llm: anthropic call starting", "model", c.model, "maxTokens", c.maxTokens)

	msg, err := c.client.Messages.New(ctx, params)
	duration := time.Since(start)
	if err != nil {
		c.log.Error("llm: anthropic call failed", "duration", duration, "error", err)
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}
	c.log.Debug("llm: anthropic call completed", "duration", duration, "stopReason", msg.StopReason)
	return msg, nil
}
