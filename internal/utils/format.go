/*-------------------------------------------------------------------------
 *
 * format.go
 *    Formatting helpers for error context
 *
 * Copyright (c) 2024-2025, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/utils/format.go
 *
 *-------------------------------------------------------------------------
 */

package utils

import (
	"fmt"
	"strings"
)

/* FormatConnectionInfo formats database connection details for error messages */
func FormatConnectionInfo(host string, port int, database, user string) string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s", host, port, database, user)
}

/* FormatQueryContext formats query details for error messages */
func FormatQueryContext(query string, paramCount int, operation, table string) string {
	return fmt.Sprintf("operation=%s, table='%s', query='%s', params_count=%d",
		operation, table, CompactQuery(query), paramCount)
}

/* CompactQuery collapses query whitespace to a single line */
func CompactQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
