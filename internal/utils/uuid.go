/*-------------------------------------------------------------------------
 *
 * uuid.go
 *    UUID utility functions for ApprovalHub
 *
 * Provides UUID generation and parsing utilities for creating unique
 * identifiers throughout the application.
 *
 * Copyright (c) 2024-2025, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/utils/uuid.go
 *
 *-------------------------------------------------------------------------
 */

package utils

import (
	"github.com/google/uuid"
)

/* GenerateUUID generates a new UUID */
func GenerateUUID() uuid.UUID {
	return uuid.New()
}
