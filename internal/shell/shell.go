// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell spawns the child command through the user's shell and
// exposes its combined stdout and stderr as a stream of line events.
package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/matt-FFFFFF/scrollrun/internal/ctxlog"
	"github.com/matt-FFFFFF/scrollrun/internal/linereader"
)

const (
	goosWindows          = "windows"
	commandSwitchWindows = "/C"      // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"      // Command switch for Unix-like shells
	cmdExe               = "cmd.exe" // Command interpreter executable on Windows.
	winSystem32          = "System32"
	binSh                = "/bin/sh" // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot"
)

var (
	// ErrEmptyCommand is returned when there is no command to run.
	ErrEmptyCommand = errors.New("no command to run")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
)

// Process is a running child command. Its stdout and stderr are consumed by
// two reader goroutines feeding the single ordered channel returned by
// Events; the channel is closed once both streams have ended.
type Process struct {
	cmd    *exec.Cmd
	events chan linereader.Event
}

// Start launches command through the user's shell, with stdin inherited and
// stdout and stderr captured. The write ends of the capture pipes are
// closed in the parent once the child holds them, so the readers observe
// EOF when the child and any descendants sharing the pipes exit.
func Start(ctx context.Context, command string) (*Process, error) {
	if command == "" {
		return nil, ErrEmptyCommand
	}

	logger := ctxlog.Logger(ctx)

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeFiles(rOut, wOut)

		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	sh, commandSwitch := shellFor(ctx, runtime.GOOS)

	cmd := exec.Command(sh, commandSwitch, command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = wOut
	cmd.Stderr = wErr
	cmd.Env = os.Environ()

	logger.Debug("starting process", "shell", sh, "command", command)

	if err := cmd.Start(); err != nil {
		closeFiles(rOut, wOut, rErr, wErr)

		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	// The child owns its copies of the write ends now.
	closeFiles(wOut, wErr)

	logger.Debug("process started", "pid", cmd.Process.Pid)

	p := &Process{
		cmd:    cmd,
		events: make(chan linereader.Event, linereader.DefaultBufferSize),
	}

	var wg sync.WaitGroup

	for _, r := range []*os.File{rOut, rErr} {
		wg.Add(1)

		go func() {
			defer wg.Done()
			defer r.Close() //nolint:errcheck

			linereader.Stream(r, p.events)
		}()
	}

	go func() {
		wg.Wait()
		close(p.events)
	}()

	return p, nil
}

// Events returns the ordered stream of line events from the child's
// combined stdout and stderr. The channel is closed when both streams end.
func (p *Process) Events() <-chan linereader.Event {
	return p.events
}

// Pid returns the child's process ID.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Signal forwards sig to the child process.
func (p *Process) Signal(sig os.Signal) error {
	return p.cmd.Process.Signal(sig) //nolint:wrapcheck
}

// Kill forcefully terminates the child process. Killing a child that has
// already exited is not an error.
func (p *Process) Kill() error {
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err //nolint:wrapcheck
	}

	return nil
}

// Wait blocks until the child exits and returns the exit status to forward
// as our own: the child's exit code, or 128 plus the signal number when the
// child died to a signal, following shell convention. The returned error is
// non-nil only when waiting itself failed.
func (p *Process) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr), nil
	}

	return 1, err //nolint:wrapcheck
}

// shellFor returns the shell executable and its command switch: cmd.exe /C
// on Windows, otherwise $SHELL -c falling back to /bin/sh.
func shellFor(ctx context.Context, goos string) (string, string) {
	if goos == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return filepath.Join(systemRoot, winSystem32, cmdExe), commandSwitchWindows
	}

	if sh := os.Getenv("SHELL"); sh != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", sh)

		return sh, commandSwitchUnix
	}

	return binSh, commandSwitchUnix
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
