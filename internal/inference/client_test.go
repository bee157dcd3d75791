/*-------------------------------------------------------------------------
 *
 * client_test.go
 *    Tests for the inference service client
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/inference/client_test.go
 *
 *-------------------------------------------------------------------------
 */

package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(serverURL string) *Client {
	return NewClient(Config{
		BaseURL: serverURL,
		APIKey:  "test-key",
	})
}

/* TestEmbed tests the embedding request and response handling */
func TestEmbed(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float64{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	embedding, err := client.Embed(context.Background(), "Requesting PTO for June")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if gotPath != "/v1/embeddings" {
		t.Errorf("path = %q, want /v1/embeddings", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotBody["model"] != DefaultEmbeddingModel {
		t.Errorf("model = %v, want %s", gotBody["model"], DefaultEmbeddingModel)
	}
	inputs, ok := gotBody["input"].([]interface{})
	if !ok || len(inputs) != 1 || inputs[0] != "Requesting PTO for June" {
		t.Errorf("input = %v", gotBody["input"])
	}
	if len(embedding) != 3 {
		t.Errorf("embedding length = %d, want 3", len(embedding))
	}
}

/* TestEmbedNotConfigured tests the unconfigured client guard */
func TestEmbedNotConfigured(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.Embed(context.Background(), "text"); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

/* TestEmbedServerError tests non-2xx handling */
func TestEmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Embed(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error on 503")
	}
	if !strings.Contains(err.Error(), "status_code=503") {
		t.Errorf("error %v does not carry the status code", err)
	}
}

/* TestSummarize tests the chat completion request and JSON contract */
func TestSummarize(t *testing.T) {
	var gotBody chatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{
					"content": `{"summary": "PTO request for a wedding", "risk_score": 2}`,
				}},
			},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)
	enrichment, err := client.Summarize(context.Background(), "Requesting 5 days PTO")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if gotBody.Model != DefaultCompletionModel {
		t.Errorf("model = %q, want %s", gotBody.Model, DefaultCompletionModel)
	}
	if gotBody.MaxTokens != DefaultMaxTokens {
		t.Errorf("max_tokens = %d, want %d", gotBody.MaxTokens, DefaultMaxTokens)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("messages = %+v, want system+user pair", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "Requesting 5 days PTO") {
		t.Errorf("user message %q does not carry the text", gotBody.Messages[1].Content)
	}

	if enrichment.Summary != "PTO request for a wedding" {
		t.Errorf("summary = %q", enrichment.Summary)
	}
	if enrichment.RiskScore != 2 {
		t.Errorf("risk score = %v, want 2", enrichment.RiskScore)
	}
}

/* TestParseEnrichment tests fence stripping and risk clamping */
func TestParseEnrichment(t *testing.T) {
	cases := []struct {
		name        string
		content     string
		wantSummary string
		wantRisk    float64
		wantErr     bool
	}{
		{
			name:        "plain json",
			content:     `{"summary": "s", "risk_score": 5}`,
			wantSummary: "s",
			wantRisk:    5,
		},
		{
			name:        "json fence",
			content:     "```json\n{\"summary\": \"s\", \"risk_score\": 3}\n```",
			wantSummary: "s",
			wantRisk:    3,
		},
		{
			name:        "bare fence",
			content:     "```\n{\"summary\": \"s\", \"risk_score\": 7}\n```",
			wantSummary: "s",
			wantRisk:    7,
		},
		{
			name:        "clamp high",
			content:     `{"summary": "s", "risk_score": 42}`,
			wantSummary: "s",
			wantRisk:    10,
		},
		{
			name:        "clamp low",
			content:     `{"summary": "s", "risk_score": -3}`,
			wantSummary: "s",
			wantRisk:    0,
		},
		{
			name:    "not json",
			content: "I think this request looks fine.",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		enrichment, err := parseEnrichment(tc.content)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if enrichment.Summary != tc.wantSummary {
			t.Errorf("%s: summary = %q, want %q", tc.name, enrichment.Summary, tc.wantSummary)
		}
		if enrichment.RiskScore != tc.wantRisk {
			t.Errorf("%s: risk = %v, want %v", tc.name, enrichment.RiskScore, tc.wantRisk)
		}
	}
}

/* TestDefaults tests default configuration values */
func TestDefaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://example.com/"})

	if client.config.EmbeddingModel != DefaultEmbeddingModel {
		t.Errorf("embedding model = %q", client.config.EmbeddingModel)
	}
	if client.config.CompletionModel != DefaultCompletionModel {
		t.Errorf("completion model = %q", client.config.CompletionModel)
	}
	if client.config.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v", client.config.Timeout)
	}
	if client.config.BaseURL != "http://example.com" {
		t.Errorf("base url %q was not normalized", client.config.BaseURL)
	}
}
