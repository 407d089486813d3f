package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when Config.Model is empty.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient implements Client using the OpenAI chat completions API.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	log       *slog.Logger
}

// NewOpenAIClient creates a new OpenAI-based client.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	cfg.applyDefaults()
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(oc),
		model:     cfg.Model,
		maxTokens: int(cfg.MaxTokens),
		log:       cfg.Logger,
	}
}

// Complete sends a prompt and returns the response text.
func (o *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return o.send(ctx, o.request(systemPrompt, userPrompt))
}

// CompleteStructured requests a strict json_schema response format.
func (o *OpenAIClient) CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, schema Schema) (json.RawMessage, error) {
	raw, err := schema.raw()
	if err != nil {
		return nil, err
	}
	req := o.request(systemPrompt, userPrompt)
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        schema.Name,
			Description: schema.Description,
			Schema:      raw,
			Strict:      true,
		},
	}
	content, err := o.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrNoContent, schema.Name)
	}
	return json.RawMessage(content), nil
}

func (o *OpenAIClient) request(systemPrompt, userPrompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens: o.maxTokens,
	}
}

func (o *OpenAIClient) send(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	start := time.Now()
	o.log.Debug("llm: openai call starting", "model", o.model)

	resp, err := o.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)
	if err != nil {
		o.log.Error("llm: openai call failed", "duration", duration, "error", err)
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoContent
	}
	o.log.Debug("llm: openai call completed", "duration", duration, "finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
