/*-------------------------------------------------------------------------
 *
 * vector.go
 *    pgvector value type for embeddings
 *
 * Marshals []float32 embeddings to the pgvector text literal
 * '[f1,f2,...]' and parses it back on scan. A NULL column scans to a
 * nil pointer at the struct level, so an absent embedding is always
 * distinguishable from a zero vector.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/approval/vector.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

/* EmbeddingDimension is the fixed dimensionality of all stored embeddings */
const EmbeddingDimension = 1024

/* Vector is a fixed-dimension embedding stored in a vector(1024) column */
type Vector []float32

/* Value implements driver.Valuer, producing a pgvector literal */
func (v Vector) Value() (driver.Value, error) {
	return v.String(), nil
}

/* String formats the vector as a pgvector literal */
func (v Vector) String() string {
	if len(v) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', 6, 32))
	}
	b.WriteByte(']')
	return b.String()
}

/* Scan implements sql.Scanner, parsing the pgvector text representation */
func (v *Vector) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}

	var s string
	switch raw := value.(type) {
	case []byte:
		s = string(raw)
	case string:
		s = raw
	default:
		return fmt.Errorf("vector scan failed: unsupported type %T", value)
	}

	parsed, err := ParseVector(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

/* ParseVector parses a pgvector literal like '[0.1,0.2,0.3]' */
func ParseVector(s string) (Vector, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("vector parse failed: value '%s' is not bracketed", truncateForError(s))
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return Vector{}, nil
	}

	parts := strings.Split(inner, ",")
	vec := make(Vector, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("vector parse failed: element %d ('%s') is not a number: %w", i, strings.TrimSpace(part), err)
		}
		vec[i] = float32(f)
	}
	return vec, nil
}

func truncateForError(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
