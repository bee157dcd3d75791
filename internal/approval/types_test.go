/*-------------------------------------------------------------------------
 *
 * types_test.go
 *    Tests for approval request domain types
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/approval/types_test.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"strings"
	"testing"
)

/* TestParseSource tests source parsing and normalization */
func TestParseSource(t *testing.T) {
	cases := []struct {
		input   string
		want    Source
		wantErr bool
	}{
		{"workday", SourceWorkday, false},
		{"Workday", SourceWorkday, false},
		{"CONCUR", SourceConcur, false},
		{"salesforce", SourceSalesforce, false},
		{"  workday  ", SourceWorkday, false},
		{"jira", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseSource(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseSource(%q): expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSource(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSource(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

/* TestParseDecision tests decision parsing including past-tense aliases */
func TestParseDecision(t *testing.T) {
	cases := []struct {
		input   string
		want    Decision
		wantErr bool
	}{
		{"approve", DecisionApprove, false},
		{"approved", DecisionApprove, false},
		{"reject", DecisionReject, false},
		{"rejected", DecisionReject, false},
		{"Approve", DecisionApprove, false},
		{"maybe", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseDecision(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDecision(%q): expected error, got %q", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDecision(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDecision(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

/* TestDecisionStatus tests mapping decisions to terminal statuses */
func TestDecisionStatus(t *testing.T) {
	if got := DecisionApprove.Status(); got != StatusApproved {
		t.Errorf("DecisionApprove.Status() = %q, want %q", got, StatusApproved)
	}
	if got := DecisionReject.Status(); got != StatusRejected {
		t.Errorf("DecisionReject.Status() = %q, want %q", got, StatusRejected)
	}
}

/* TestStatusTerminal tests that only decided statuses are terminal */
func TestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	if !StatusApproved.Terminal() {
		t.Error("approved must be terminal")
	}
	if !StatusRejected.Terminal() {
		t.Error("rejected must be terminal")
	}
}

/* TestEnrichmentText tests the canonical enrichment input derivation */
func TestEnrichmentText(t *testing.T) {
	var req ApprovalRequest
	if got := req.EnrichmentText(); got != "" {
		t.Errorf("nil justification: got %q, want empty", got)
	}

	text := "   "
	req.JustificationText = &text
	if got := req.EnrichmentText(); got != "" {
		t.Errorf("whitespace justification: got %q, want empty", got)
	}

	text = "  Requesting PTO for June  "
	if got := req.EnrichmentText(); got != "Requesting PTO for June" {
		t.Errorf("EnrichmentText() = %q, want trimmed text", got)
	}
}

/* TestMetadataReservedKeys tests reserved key detection */
func TestMetadataReservedKeys(t *testing.T) {
	m := Metadata{"amount": 100.0}
	if found := m.ReservedKeys(); len(found) != 0 {
		t.Errorf("expected no reserved keys, got %v", found)
	}

	m[MetaKeySummary] = "a summary"
	m[MetaKeyRiskScore] = 3.0
	found := m.ReservedKeys()
	if len(found) != 2 {
		t.Fatalf("expected 2 reserved keys, got %v", found)
	}
}

/* TestMetadataEnrichment tests pipeline-written fields */
func TestMetadataEnrichment(t *testing.T) {
	m := Metadata{"days": 5.0}

	if _, ok := m.Summary(); ok {
		t.Error("Summary present before enrichment")
	}
	if _, ok := m.RiskScore(); ok {
		t.Error("RiskScore present before enrichment")
	}

	m.SetEnrichment("PTO request for a family event", 2.5)

	summary, ok := m.Summary()
	if !ok || summary != "PTO request for a family event" {
		t.Errorf("Summary() = %q, %v", summary, ok)
	}
	score, ok := m.RiskScore()
	if !ok || score != 2.5 {
		t.Errorf("RiskScore() = %v, %v", score, ok)
	}

	/* Source fields must survive enrichment */
	if m["days"] != 5.0 {
		t.Errorf("source field clobbered: %v", m["days"])
	}
}

/* TestMetadataScan tests JSONB round-trip behavior */
func TestMetadataScan(t *testing.T) {
	var m Metadata
	if err := m.Scan([]byte(`{"amount": 42.5, "ai_summary": "s"}`)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if m["amount"] != 42.5 {
		t.Errorf("amount = %v, want 42.5", m["amount"])
	}

	var empty Metadata
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if empty == nil {
		t.Error("Scan(nil) must produce an empty map, not nil")
	}
}

/* TestVectorValue tests pgvector literal formatting */
func TestVectorValue(t *testing.T) {
	v := Vector{0.5, -1, 0.25}
	value, err := v.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	literal, ok := value.(string)
	if !ok {
		t.Fatalf("Value type = %T, want string", value)
	}
	if !strings.HasPrefix(literal, "[") || !strings.HasSuffix(literal, "]") {
		t.Errorf("literal %q is not bracketed", literal)
	}
	if strings.Count(literal, ",") != 2 {
		t.Errorf("literal %q has wrong element count", literal)
	}
}

/* TestVectorRoundTrip tests parse and format round-trip */
func TestVectorRoundTrip(t *testing.T) {
	v := Vector{1, 2.5, -0.125}
	parsed, err := ParseVector(v.String())
	if err != nil {
		t.Fatalf("ParseVector failed: %v", err)
	}
	if len(parsed) != len(v) {
		t.Fatalf("length = %d, want %d", len(parsed), len(v))
	}
	for i := range v {
		if parsed[i] != v[i] {
			t.Errorf("element %d = %v, want %v", i, parsed[i], v[i])
		}
	}
}

/* TestVectorScan tests scanning database values */
func TestVectorScan(t *testing.T) {
	var v Vector
	if err := v.Scan([]byte("[0.1,0.2,0.3]")); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(v) != 3 {
		t.Errorf("length = %d, want 3", len(v))
	}

	var empty Vector
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if empty != nil {
		t.Error("Scan(nil) must leave the vector nil")
	}
}
