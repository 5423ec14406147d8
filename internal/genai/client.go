// internal/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Generator is the external text/JSON completion collaborator.
type Generator interface {
	// GenerateJSON returns the raw model text for a prompt constrained to schema.
	GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error)
	// SearchNearby returns location-grounded chunks for a prompt around a point.
	SearchNearby(ctx context.Context, prompt string, latitude, longitude float64) ([]GroundingChunk, error)
}

type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type GroundingChunk struct {
	Maps *GroundingSource `json:"maps,omitempty"`
	Web  *GroundingSource `json:"web,omitempty"`
}

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 60 * time.Second
)

type ClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeminiClient calls the generateContent REST endpoint.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewGeminiClient(cfg ClientConfig) *GeminiClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &GeminiClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *GeminiClient) WithHTTPClient(httpClient *http.Client) *GeminiClient {
	c.httpClient = httpClient
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type retrievalConfig struct {
	LatLng latLng `json:"latLng"`
}

type toolConfig struct {
	RetrievalConfig retrievalConfig `json:"retrievalConfig"`
}

type tool struct {
	GoogleMaps *struct{} `json:"googleMaps,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	Tools            []tool            `json:"tools,omitempty"`
	ToolConfig       *toolConfig       `json:"toolConfig,omitempty"`
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	body, err := c.call(ctx, req)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, t := range gjson.GetBytes(body, "candidates.0.content.parts.#.text").Array() {
		text.WriteString(t.String())
	}
	return text.String(), nil
}

func (c *GeminiClient) SearchNearby(ctx context.Context, prompt string, latitude, longitude float64) ([]GroundingChunk, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		Tools:    []tool{{GoogleMaps: &struct{}{}}},
		ToolConfig: &toolConfig{
			RetrievalConfig: retrievalConfig{
				LatLng: latLng{Latitude: latitude, Longitude: longitude},
			},
		},
	}

	body, err := c.call(ctx, req)
	if err != nil {
		return nil, err
	}

	raw := gjson.GetBytes(body, "candidates.0.groundingMetadata.groundingChunks")
	if !raw.Exists() {
		return nil, nil
	}

	var chunks []GroundingChunk
	if err := json.Unmarshal([]byte(raw.Raw), &chunks); err != nil {
		return nil, fmt.Errorf("failed to decode grounding chunks: %w", err)
	}
	return chunks, nil
}

func (c *GeminiClient) call(ctx context.Context, payload generateRequest) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(body, "error.message").String(); msg != "" {
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if !gjson.GetBytes(body, "candidates.0").Exists() {
		return nil, fmt.Errorf("no candidates in response")
	}

	return body, nil
}
