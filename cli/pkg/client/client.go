/*-------------------------------------------------------------------------
 *
 * client.go
 *    HTTP client for ApprovalHub API
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/cli/pkg/client/client.go
 *
 *-------------------------------------------------------------------------
 */

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Request struct {
	ID                string                 `json:"id"`
	Source            string                 `json:"request_source"`
	RequesterName     string                 `json:"requester_name"`
	ApproverID        string                 `json:"approver_id"`
	Status            string                 `json:"status"`
	JustificationText string                 `json:"justification_text,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	AISummary         string                 `json:"ai_summary,omitempty"`
	RiskScore         *float64               `json:"risk_score,omitempty"`
	HasEmbedding      bool                   `json:"has_embedding"`
	DecidedBy         string                 `json:"decided_by,omitempty"`
	DecidedAt         string                 `json:"decided_at,omitempty"`
	CreatedAt         string                 `json:"created_at,omitempty"`
	UpdatedAt         string                 `json:"updated_at,omitempty"`
}

type ListResponse struct {
	Requests []Request `json:"requests"`
	Count    int       `json:"count"`
}

type Match struct {
	Request
	Similarity float64 `json:"similarity"`
}

type SearchResponse struct {
	Matches []Match `json:"matches"`
	Count   int     `json:"count"`
}

type CreateInput struct {
	Source            string                 `json:"request_source"`
	RequesterName     string                 `json:"requester_name"`
	ApproverID        string                 `json:"approver_id"`
	JustificationText string                 `json:"justification_text,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

type ListOptions struct {
	Source        string
	ApproverID    string
	Status        string
	RequesterName string
	Limit         int
	Offset        int
}

type SearchOptions struct {
	Source        string
	ApproverID    string
	Status        string
	MinSimilarity *float64
	Limit         int
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateRequest(input *CreateInput) (*Request, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", "/api/v1/approval-requests", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var req Request
	if err := json.NewDecoder(resp.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &req, nil
}

func (c *Client) GetRequest(requestID string) (*Request, error) {
	resp, err := c.makeRequest("GET", fmt.Sprintf("/api/v1/approval-requests/%s", requestID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var req Request
	if err := json.NewDecoder(resp.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &req, nil
}

func (c *Client) ListRequests(opts ListOptions) ([]Request, error) {
	query := url.Values{}
	if opts.Source != "" {
		query.Set("request_source", opts.Source)
	}
	if opts.ApproverID != "" {
		query.Set("approver_id", opts.ApproverID)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.RequesterName != "" {
		query.Set("requester_name", opts.RequesterName)
	}
	if opts.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", opts.Offset))
	}

	path := "/api/v1/approval-requests"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.makeRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var listResp ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return listResp.Requests, nil
}

func (c *Client) Decide(requestID, deciderID, decision string) (*Request, error) {
	reqBody := map[string]interface{}{
		"decider_id": deciderID,
		"decision":   decision,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", fmt.Sprintf("/api/v1/approval-requests/%s/decide", requestID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var req Request
	if err := json.NewDecoder(resp.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &req, nil
}

func (c *Client) Search(queryText string, opts SearchOptions) ([]Match, error) {
	reqBody := map[string]interface{}{
		"query": queryText,
	}
	if opts.Source != "" {
		reqBody["request_source"] = opts.Source
	}
	if opts.ApproverID != "" {
		reqBody["approver_id"] = opts.ApproverID
	}
	if opts.Status != "" {
		reqBody["status"] = opts.Status
	}
	if opts.MinSimilarity != nil {
		reqBody["min_similarity"] = *opts.MinSimilarity
	}
	if opts.Limit > 0 {
		reqBody["limit"] = opts.Limit
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", "/api/v1/approval-requests/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return searchResp.Matches, nil
}

func (c *Client) makeRequest(method, path string, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
