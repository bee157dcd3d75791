/*-------------------------------------------------------------------------
 *
 * coordinator_test.go
 *    Tests for the approval lifecycle coordinator
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/approval/coordinator_test.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

/* memStore is an in-memory Store with the same atomicity guarantees as
 * the SQL implementation */
type memStore struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*ApprovalRequest
}

func newMemStore() *memStore {
	return &memStore{requests: make(map[uuid.UUID]*ApprovalRequest)}
}

func (s *memStore) Create(ctx context.Context, req *ApprovalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	clone := *req
	s.requests[req.ID] = &clone
	return nil
}

func (s *memStore) Get(ctx context.Context, id uuid.UUID) (*ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (s *memStore) List(ctx context.Context, filter ListFilter) ([]ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ApprovalRequest
	for _, req := range s.requests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if filter.Source != nil && req.Source != *filter.Source {
			continue
		}
		if filter.ApproverID != nil && req.ApproverID != *filter.ApproverID {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (s *memStore) Decide(ctx context.Context, id uuid.UUID, deciderID string, decision Decision) (*ApprovalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	/* Authorization is checked before status so a wrong approver never
	 * learns the outcome of a decided request */
	if req.ApproverID != deciderID {
		return nil, ErrUnauthorized
	}
	if req.Status != StatusPending {
		return nil, &ConflictError{CurrentStatus: req.Status}
	}
	now := time.Now()
	req.Status = decision.Status()
	req.DecidedBy = &deciderID
	req.DecidedAt = &now
	req.UpdatedAt = now
	clone := *req
	return &clone, nil
}

type recordingScheduler struct {
	mu     sync.Mutex
	tasks  map[uuid.UUID]string
	accept bool
}

func newRecordingScheduler(accept bool) *recordingScheduler {
	return &recordingScheduler{tasks: make(map[uuid.UUID]string), accept: accept}
}

func (s *recordingScheduler) Schedule(id uuid.UUID, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accept {
		return false
	}
	s.tasks[id] = text
	return true
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []uuid.UUID
	decided []uuid.UUID
}

func (n *recordingNotifier) OnCreated(ctx context.Context, req *ApprovalRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, req.ID)
}

func (n *recordingNotifier) OnDecided(ctx context.Context, req *ApprovalRequest, decision Decision) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.decided = append(n.decided, req.ID)
}

func newTestCoordinator() (*Coordinator, *memStore, *recordingScheduler, *recordingNotifier) {
	store := newMemStore()
	scheduler := newRecordingScheduler(true)
	notifier := &recordingNotifier{}
	return NewCoordinator(store, scheduler, notifier), store, scheduler, notifier
}

/* TestCreateRequest tests the happy path of request creation */
func TestCreateRequest(t *testing.T) {
	coordinator, _, scheduler, notifier := newTestCoordinator()
	ctx := context.Background()

	req, err := coordinator.CreateRequest(ctx, CreateInput{
		Source:            "workday",
		RequesterName:     "Jane Smith",
		ApproverID:        "mgr-100",
		JustificationText: "Requesting PTO for a family wedding",
		Metadata:          Metadata{"days": 5},
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	if req.ID == uuid.Nil {
		t.Error("request was not assigned an ID")
	}
	if req.Status != StatusPending {
		t.Errorf("status = %q, want pending", req.Status)
	}
	if req.Source != SourceWorkday {
		t.Errorf("source = %q, want workday", req.Source)
	}

	scheduler.mu.Lock()
	text, scheduled := scheduler.tasks[req.ID]
	scheduler.mu.Unlock()
	if !scheduled {
		t.Fatal("enrichment was not scheduled for an enrichable request")
	}
	if text != "Requesting PTO for a family wedding" {
		t.Errorf("scheduled text = %q", text)
	}

	notifier.mu.Lock()
	createdCount := len(notifier.created)
	notifier.mu.Unlock()
	if createdCount != 1 {
		t.Errorf("OnCreated fired %d times, want 1", createdCount)
	}
}

/* TestCreateRequestValidation tests that invalid inputs never persist */
func TestCreateRequestValidation(t *testing.T) {
	coordinator, store, _, _ := newTestCoordinator()
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"unknown source", CreateInput{Source: "jira", RequesterName: "a", ApproverID: "b"}},
		{"empty requester", CreateInput{Source: "workday", RequesterName: "  ", ApproverID: "b"}},
		{"empty approver", CreateInput{Source: "workday", RequesterName: "a", ApproverID: ""}},
		{"requester too long", CreateInput{Source: "workday", RequesterName: strings.Repeat("x", 101), ApproverID: "b"}},
		{"approver too long", CreateInput{Source: "workday", RequesterName: "a", ApproverID: strings.Repeat("x", 51)}},
		{"reserved metadata key", CreateInput{Source: "workday", RequesterName: "a", ApproverID: "b", Metadata: Metadata{"ai_summary": "spoofed"}}},
	}

	for _, tc := range cases {
		_, err := coordinator.CreateRequest(ctx, tc.input)
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !IsValidation(err) {
			t.Errorf("%s: error %v is not a validation error", tc.name, err)
		}
	}

	store.mu.Lock()
	stored := len(store.requests)
	store.mu.Unlock()
	if stored != 0 {
		t.Errorf("%d requests persisted despite validation failures", stored)
	}
}

/* TestCreateRequestWithoutJustification tests the never-enriched path */
func TestCreateRequestWithoutJustification(t *testing.T) {
	coordinator, _, scheduler, _ := newTestCoordinator()
	ctx := context.Background()

	req, err := coordinator.CreateRequest(ctx, CreateInput{
		Source:        "concur",
		RequesterName: "Bob Lee",
		ApproverID:    "fin-7",
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	if req.JustificationText != nil {
		t.Errorf("justification = %v, want nil", *req.JustificationText)
	}

	scheduler.mu.Lock()
	scheduled := len(scheduler.tasks)
	scheduler.mu.Unlock()
	if scheduled != 0 {
		t.Error("enrichment scheduled for a request with no justification")
	}
}

/* TestCreateRequestQueueFull tests that a full queue does not fail creation */
func TestCreateRequestQueueFull(t *testing.T) {
	store := newMemStore()
	coordinator := NewCoordinator(store, newRecordingScheduler(false), &recordingNotifier{})

	req, err := coordinator.CreateRequest(context.Background(), CreateInput{
		Source:            "salesforce",
		RequesterName:     "Dana Kim",
		ApproverID:        "vp-sales-2",
		JustificationText: "25% discount for Acme renewal",
	})
	if err != nil {
		t.Fatalf("CreateRequest failed despite full queue: %v", err)
	}
	if req.Status != StatusPending {
		t.Errorf("status = %q, want pending", req.Status)
	}
}

/* TestDecide tests the approve transition */
func TestDecide(t *testing.T) {
	coordinator, _, _, notifier := newTestCoordinator()
	ctx := context.Background()

	req, err := coordinator.CreateRequest(ctx, CreateInput{
		Source:        "workday",
		RequesterName: "Jane Smith",
		ApproverID:    "mgr-100",
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	decided, err := coordinator.Decide(ctx, req.ID, "mgr-100", DecisionApprove)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Errorf("status = %q, want approved", decided.Status)
	}
	if decided.DecidedBy == nil || *decided.DecidedBy != "mgr-100" {
		t.Errorf("decided_by = %v, want mgr-100", decided.DecidedBy)
	}
	if decided.DecidedAt == nil {
		t.Error("decided_at not set")
	}

	notifier.mu.Lock()
	decidedCount := len(notifier.decided)
	notifier.mu.Unlock()
	if decidedCount != 1 {
		t.Errorf("OnDecided fired %d times, want 1", decidedCount)
	}
}

/* TestDecideUnauthorized tests that a non-assigned approver is refused */
func TestDecideUnauthorized(t *testing.T) {
	coordinator, _, _, notifier := newTestCoordinator()
	ctx := context.Background()

	req, _ := coordinator.CreateRequest(ctx, CreateInput{
		Source:        "workday",
		RequesterName: "Jane Smith",
		ApproverID:    "mgr-100",
	})

	_, err := coordinator.Decide(ctx, req.ID, "intruder-1", DecisionApprove)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	/* The request must remain pending */
	after, _ := coordinator.Get(ctx, req.ID)
	if after.Status != StatusPending {
		t.Errorf("status = %q after unauthorized attempt, want pending", after.Status)
	}

	notifier.mu.Lock()
	decidedCount := len(notifier.decided)
	notifier.mu.Unlock()
	if decidedCount != 0 {
		t.Error("OnDecided fired for a refused decision")
	}
}

/* TestDecideUnauthorizedOnDecided tests that authorization is checked
 * before the conflict: a wrong approver gets unauthorized even when the
 * request is already terminal */
func TestDecideUnauthorizedOnDecided(t *testing.T) {
	coordinator, _, _, _ := newTestCoordinator()
	ctx := context.Background()

	req, _ := coordinator.CreateRequest(ctx, CreateInput{
		Source:        "concur",
		RequesterName: "Bob Lee",
		ApproverID:    "fin-7",
	})
	if _, err := coordinator.Decide(ctx, req.ID, "fin-7", DecisionReject); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	_, err := coordinator.Decide(ctx, req.ID, "intruder-1", DecisionApprove)
	if !IsUnauthorized(err) {
		t.Errorf("expected unauthorized on decided request, got %v", err)
	}
}

/* TestDecideConflict tests the repeated decision path */
func TestDecideConflict(t *testing.T) {
	coordinator, _, _, _ := newTestCoordinator()
	ctx := context.Background()

	req, _ := coordinator.CreateRequest(ctx, CreateInput{
		Source:        "workday",
		RequesterName: "Jane Smith",
		ApproverID:    "mgr-100",
	})
	if _, err := coordinator.Decide(ctx, req.ID, "mgr-100", DecisionApprove); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}

	_, err := coordinator.Decide(ctx, req.ID, "mgr-100", DecisionReject)
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	after, _ := coordinator.Get(ctx, req.ID)
	if after.Status != StatusApproved {
		t.Errorf("status = %q, first decision must stand", after.Status)
	}
}

/* TestDecideNotFound tests the unknown request path */
func TestDecideNotFound(t *testing.T) {
	coordinator, _, _, _ := newTestCoordinator()

	_, err := coordinator.Decide(context.Background(), uuid.New(), "mgr-100", DecisionApprove)
	if !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

/* TestDecideConcurrent tests that exactly one of many racing decisions wins */
func TestDecideConcurrent(t *testing.T) {
	coordinator, _, _, _ := newTestCoordinator()
	ctx := context.Background()

	req, _ := coordinator.CreateRequest(ctx, CreateInput{
		Source:        "salesforce",
		RequesterName: "Dana Kim",
		ApproverID:    "vp-sales-2",
	})

	const racers = 16
	var wg sync.WaitGroup
	var successes, conflicts int64
	var mu sync.Mutex

	for i := 0; i < racers; i++ {
		decision := DecisionApprove
		if i%2 == 1 {
			decision = DecisionReject
		}
		wg.Add(1)
		go func(d Decision) {
			defer wg.Done()
			_, err := coordinator.Decide(ctx, req.ID, "vp-sales-2", d)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case IsConflict(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(decision)
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("%d decisions succeeded, want exactly 1", successes)
	}
	if conflicts != racers-1 {
		t.Errorf("%d conflicts, want %d", conflicts, racers-1)
	}

	after, _ := coordinator.Get(ctx, req.ID)
	if !after.Status.Terminal() {
		t.Errorf("status = %q, want terminal", after.Status)
	}
}

/* TestDecideValidation tests decider input validation */
func TestDecideValidation(t *testing.T) {
	coordinator, _, _, _ := newTestCoordinator()
	ctx := context.Background()

	req, _ := coordinator.CreateRequest(ctx, CreateInput{
		Source:        "workday",
		RequesterName: "Jane Smith",
		ApproverID:    "mgr-100",
	})

	if _, err := coordinator.Decide(ctx, req.ID, "", DecisionApprove); !IsValidation(err) {
		t.Errorf("empty decider: expected validation error, got %v", err)
	}
	if _, err := coordinator.Decide(ctx, req.ID, "mgr-100", Decision("maybe")); !IsValidation(err) {
		t.Errorf("bad decision: expected validation error, got %v", err)
	}
}
