/*-------------------------------------------------------------------------
 *
 * metadata.go
 *    Source-specific metadata for approval requests
 *
 * Metadata is stored as JSONB. Each source carries its own fields
 * (date ranges, amounts, deal values); the enrichment pipeline writes
 * the reserved keys ai_summary and risk_score, which ingestion may
 * never set.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/approval/metadata.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

/* Reserved metadata keys, written only by the enrichment pipeline */
const (
	MetaKeySummary   = "ai_summary"
	MetaKeyRiskScore = "risk_score"
)

var reservedMetadataKeys = []string{MetaKeySummary, MetaKeyRiskScore}

/* Metadata is the open, source-specific mapping stored as JSONB */
type Metadata map[string]interface{}

/* Value implements driver.Valuer for JSONB storage */
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

/* Scan implements sql.Scanner for JSONB retrieval */
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = make(Metadata)
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("metadata scan failed: unsupported type %T", value)
	}

	if len(data) == 0 {
		*m = make(Metadata)
		return nil
	}
	return json.Unmarshal(data, m)
}

/* ReservedKeys returns any reserved pipeline keys present in the map */
func (m Metadata) ReservedKeys() []string {
	var found []string
	for _, key := range reservedMetadataKeys {
		if _, ok := m[key]; ok {
			found = append(found, key)
		}
	}
	return found
}

/* Summary returns the pipeline-written summary, if enrichment ran */
func (m Metadata) Summary() (string, bool) {
	s, ok := m[MetaKeySummary].(string)
	return s, ok
}

/* RiskScore returns the pipeline-written risk score, if enrichment ran.
 * JSON numbers decode as float64. */
func (m Metadata) RiskScore() (float64, bool) {
	switch v := m[MetaKeyRiskScore].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

/* SetEnrichment writes the reserved keys without disturbing source fields */
func (m Metadata) SetEnrichment(summary string, riskScore float64) {
	m[MetaKeySummary] = summary
	m[MetaKeyRiskScore] = riskScore
}

/* Clone returns a shallow copy so callers can mutate safely */
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
