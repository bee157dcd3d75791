/*-------------------------------------------------------------------------
 *
 * client.go
 *    HTTP client for the managed inference service
 *
 * Talks to an OpenAI-compatible inference API for embeddings and chat
 * completions. Configuration is injected at construction; every call is
 * bounded by the configured timeout and honors context cancellation.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/inference/client.go
 *
 *-------------------------------------------------------------------------
 */

package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/neurondb/ApprovalHub/internal/approval"
	"github.com/neurondb/ApprovalHub/internal/metrics"
)

const (
	DefaultEmbeddingModel  = "cohere/embed-english-v3.0"
	DefaultCompletionModel = "anthropic/claude-3-5-sonnet"
	DefaultTimeout         = 30 * time.Second
	DefaultMaxTokens       = 200
	DefaultTemperature     = 0.7
)

/* summarizeSystemPrompt asks the model for a strict JSON contract */
const summarizeSystemPrompt = `You are an assistant that analyzes approval requests. Generate a 1-sentence summary and a risk score from 0-10 (0=low risk, 10=high risk). Return only JSON: {"summary": "...", "risk_score": N}`

/* ErrNotConfigured marks a client built without an endpoint or API key */
var ErrNotConfigured = errors.New("inference service not configured")

/* Config holds the inference service connection settings */
type Config struct {
	BaseURL         string
	APIKey          string
	EmbeddingModel  string
	CompletionModel string
	Timeout         time.Duration
	MaxTokens       int
	Temperature     float64
}

/* Client is an HTTP client for the inference service */
type Client struct {
	config     Config
	httpClient *http.Client
}

/* Enrichment is the structured result of summarization */
type Enrichment struct {
	Summary   string  `json:"summary"`
	RiskScore float64 `json:"risk_score"`
}

/* NewClient creates an inference client, applying defaults for unset fields */
func NewClient(config Config) *Client {
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = DefaultEmbeddingModel
	}
	if config.CompletionModel == "" {
		config.CompletionModel = DefaultCompletionModel
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.Temperature <= 0 {
		config.Temperature = DefaultTemperature
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

/* Configured reports whether the client can reach an inference service */
func (c *Client) Configured() bool {
	return c.config.BaseURL != "" && c.config.APIKey != ""
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

/* Embed generates an embedding vector for the given text */
func (c *Client) Embed(ctx context.Context, text string) (approval.Vector, error) {
	start := time.Now()
	embedding, err := c.embed(ctx, text)
	if err != nil {
		metrics.RecordInferenceCall("embed", "error", time.Since(start))
		return nil, err
	}
	metrics.RecordInferenceCall("embed", "success", time.Since(start))
	return embedding, nil
}

func (c *Client) embed(ctx context.Context, text string) (approval.Vector, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("embedding input is empty")
	}

	var resp embeddingResponse
	err := c.post(ctx, "/v1/embeddings", embeddingRequest{
		Model: c.config.EmbeddingModel,
		Input: []string{text},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: model='%s', error=%w", c.config.EmbeddingModel, err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedding response contained no embedding: model='%s'", c.config.EmbeddingModel)
	}
	return approval.Vector(resp.Data[0].Embedding), nil
}

/* Complete sends a single-message chat completion and returns the content */
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, []chatMessage{{Role: "user", Content: prompt}})
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	start := time.Now()
	var resp chatCompletionResponse
	err := c.post(ctx, "/v1/chat/completions", chatCompletionRequest{
		Model:       c.config.CompletionModel,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}, &resp)
	if err != nil {
		metrics.RecordInferenceCall("complete", "error", time.Since(start))
		return "", fmt.Errorf("chat completion request failed: model='%s', error=%w", c.config.CompletionModel, err)
	}
	metrics.RecordInferenceCall("complete", "success", time.Since(start))

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion response contained no content: model='%s'", c.config.CompletionModel)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

/* Summarize generates a one-sentence summary and a bounded risk score
 * for the given justification text */
func (c *Client) Summarize(ctx context.Context, text string) (*Enrichment, error) {
	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: summarizeSystemPrompt},
		{Role: "user", Content: "Analyze this approval request: " + text},
	})
	if err != nil {
		return nil, err
	}

	enrichment, err := parseEnrichment(content)
	if err != nil {
		return nil, fmt.Errorf("summarization response parsing failed: model='%s', error=%w", c.config.CompletionModel, err)
	}
	return enrichment, nil
}

/* parseEnrichment parses the JSON contract, stripping markdown fences
 * the model sometimes wraps around it, and clamps the risk score */
func parseEnrichment(content string) (*Enrichment, error) {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	}
	content = strings.TrimSpace(content)

	var enrichment Enrichment
	if err := json.Unmarshal([]byte(content), &enrichment); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if enrichment.RiskScore < 0 {
		enrichment.RiskScore = 0
	}
	if enrichment.RiskScore > 10 {
		enrichment.RiskScore = 10
	}
	return &enrichment, nil
}

/* post sends an authenticated JSON request and decodes the response */
func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("request serialization failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request creation failed: url='%s', error=%w", c.config.BaseURL+path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: url='%s', error=%w", c.config.BaseURL+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("request failed: url='%s', status_code=%d, body='%s'",
			c.config.BaseURL+path, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("response decoding failed: url='%s', error=%w", c.config.BaseURL+path, err)
	}
	return nil
}
