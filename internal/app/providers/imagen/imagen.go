// Package imagen is the image-generation provider. It posts a prompt to the
// Imagen REST endpoint and classifies the reply by which of the known
// payload shapes it matches.
package imagen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Defaults for the Generative Language API.
const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel       = "imagen-3.0-generate-001"
	DefaultAspectRatio = "16:9"
)

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 64 << 10

// Client calls the image-generation endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Config configures a Client. A nil HTTPClient uses http.DefaultClient,
// so no timeout is imposed beyond the caller's context.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("imagen: API key is required")
	}
	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	return c, nil
}

type generateRequest struct {
	Prompt         string `json:"prompt"`
	NumberOfImages int    `json:"numberOfImages"`
	AspectRatio    string `json:"aspectRatio"`
}

// Generate requests one image. A transport failure is returned as an error;
// any HTTP response, successful or not, is returned as a Result for the
// caller to classify.
func (c *Client) Generate(ctx context.Context, prompt, aspectRatio string) (*Result, error) {
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}
	payload, err := json.Marshal(generateRequest{
		Prompt:         prompt,
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("imagen: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateImages?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("imagen: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagen: request failed: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Result{Shape: ShapeHTTPError, Status: resp.StatusCode, Raw: string(body)}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("imagen: read response: %w", err)
	}
	res := Decode(body)
	res.Status = resp.StatusCode
	return &res, nil
}

// redactKey keeps the API key out of error strings, since url.Error embeds
// the full request URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
