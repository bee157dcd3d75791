/*-------------------------------------------------------------------------
 *
 * notifier.go
 *    Lifecycle notification port
 *
 * Collaborating surfaces (chat integration, dashboard) receive
 * lifecycle events through this narrow interface. Calls are
 * fire-and-forget: a failing notifier never rolls back or retries the
 * state change that triggered it.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/notify/notifier.go
 *
 *-------------------------------------------------------------------------
 */

package notify

import (
	"context"

	"github.com/neurondb/ApprovalHub/internal/approval"
)

/* Notifier receives approval lifecycle events */
type Notifier interface {
	OnCreated(ctx context.Context, req *approval.ApprovalRequest)
	OnDecided(ctx context.Context, req *approval.ApprovalRequest, decision approval.Decision)
}

/* NopNotifier discards all events; the default when nothing is configured */
type NopNotifier struct{}

func (NopNotifier) OnCreated(ctx context.Context, req *approval.ApprovalRequest) {}

func (NopNotifier) OnDecided(ctx context.Context, req *approval.ApprovalRequest, decision approval.Decision) {
}

/* Multi fans events out to several notifiers */
type Multi []Notifier

func (m Multi) OnCreated(ctx context.Context, req *approval.ApprovalRequest) {
	for _, n := range m {
		n.OnCreated(ctx, req)
	}
}

func (m Multi) OnDecided(ctx context.Context, req *approval.ApprovalRequest, decision approval.Decision) {
	for _, n := range m {
		n.OnDecided(ctx, req, decision)
	}
}
