// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/scrollrun/internal/ctxlog"
)

// Signaler is the subset of child process control needed by Watch.
type Signaler interface {
	// Signal forwards sig to the child process.
	Signal(sig os.Signal) error
	// Kill forcefully terminates the child process.
	Kill() error
}

// Watch monitors the signal channel and forwards each signal to the child,
// giving it the chance to exit cleanly. The second signal of a given type
// kills the child outright. Watch returns when the child has been killed,
// the channel is closed, or the context is cancelled.
func Watch(ctx context.Context, sigCh chan os.Signal, child Signaler) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Info(ctx, "watchdog", "detail", "received second signal of type, killing child", "signal", sig.String())

				if err := child.Kill(); err != nil {
					ctxlog.Error(ctx, "watchdog", "detail", "failed to kill child", "error", err)
				}

				return
			}

			seen[sig] = struct{}{}

			ctxlog.Info(ctx, "watchdog", "detail", "forwarding signal to child", "signal", sig.String())

			if err := child.Signal(sig); err != nil {
				ctxlog.Debug(ctx, "watchdog", "detail", "failed to forward signal", "signal", sig.String(), "error", err)
			}

		case <-ctx.Done():
			return
		}
	}
}
