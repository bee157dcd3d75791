/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for approvalhub-cli
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/cli/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"github.com/neurondb/ApprovalHub/cli/cmd"
)

func main() {
	cmd.Execute()
}
