// Package gemini is the text-generation provider: a thin wrapper around the
// Google GenAI SDK that turns a prompt into the model's text reply.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the text model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// Client generates text with a Gemini model.
type Client struct {
	client *genai.Client
	model  string
}

// Config configures a Client. BaseURL is for pointing the SDK at a proxy
// or test server and is normally empty.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// New creates a Client. It makes no network calls.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends prompt as a single user turn and returns the reply text.
// There is no retry and no streaming.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
