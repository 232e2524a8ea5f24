// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package shell

import "os/exec"

func exitStatus(err *exec.ExitError) int {
	return err.ExitCode()
}
