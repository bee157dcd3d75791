/*-------------------------------------------------------------------------
 *
 * webhook.go
 *    Webhook notifier for approval lifecycle events
 *
 * Posts a JSON event envelope to a configured URL. Delivery is
 * fire-and-forget with a single timeout-bounded attempt; failures are
 * logged and counted, never propagated.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/notify/webhook.go
 *
 *-------------------------------------------------------------------------
 */

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/neurondb/ApprovalHub/internal/approval"
	"github.com/neurondb/ApprovalHub/internal/metrics"
)

const (
	EventRequestCreated  = "approval_request.created"
	EventRequestApproved = "approval_request.approved"
	EventRequestRejected = "approval_request.rejected"
)

/* Event is the webhook payload envelope */
type Event struct {
	Event     string                    `json:"event"`
	Timestamp time.Time                 `json:"timestamp"`
	Request   *approval.ApprovalRequest `json:"request"`
}

/* WebhookNotifier delivers lifecycle events over HTTP */
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

/* NewWebhookNotifier creates a webhook notifier for the given URL */
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

/* OnCreated delivers a created event */
func (w *WebhookNotifier) OnCreated(ctx context.Context, req *approval.ApprovalRequest) {
	w.deliver(ctx, EventRequestCreated, req)
}

/* OnDecided delivers an approved or rejected event */
func (w *WebhookNotifier) OnDecided(ctx context.Context, req *approval.ApprovalRequest, decision approval.Decision) {
	event := EventRequestApproved
	if decision == approval.DecisionReject {
		event = EventRequestRejected
	}
	w.deliver(ctx, event, req)
}

/* deliver posts one event; failure is contained here */
func (w *WebhookNotifier) deliver(ctx context.Context, event string, req *approval.ApprovalRequest) {
	if err := w.send(ctx, event, req); err != nil {
		metrics.RecordNotification(event, "failed")
		metrics.WarnWithContext(ctx, "Lifecycle notification delivery failed", map[string]interface{}{
			"event":       event,
			"approval_id": req.ID.String(),
			"error":       err.Error(),
		})
		return
	}
	metrics.RecordNotification(event, "delivered")
}

func (w *WebhookNotifier) send(ctx context.Context, event string, req *approval.ApprovalRequest) error {
	if w.url == "" {
		return fmt.Errorf("webhook URL is required")
	}

	payload, err := json.Marshal(Event{
		Event:     event,
		Timestamp: time.Now().UTC(),
		Request:   req,
	})
	if err != nil {
		return fmt.Errorf("webhook payload serialization failed: error=%w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhook request creation failed: url='%s', error=%w", w.url, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", "ApprovalHub/1.0")

	resp, err := w.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("webhook request failed: url='%s', error=%w", w.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook request failed: url='%s', status_code=%d", w.url, resp.StatusCode)
	}
	return nil
}
