// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

// exitStatus maps a signal death to 128+signal, matching what a shell
// reports for the same child.
func exitStatus(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}

	return err.ExitCode()
}
