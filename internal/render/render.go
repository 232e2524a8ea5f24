// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render implements the live redraw engine: the tick and event loop
// that owns the child process, the rolling window and the terminal.
//
// The loop is the sole writer to the terminal. It paints a fixed-height
// frame at an anchor captured on the first paint and rewrites that same
// region on every redraw, so the terminal never scrolls while the child is
// running. Output lines arrive over a single ordered channel and a 100ms
// ticker drives repaints while the child is quiet.
package render

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/scrollrun/internal/ctxlog"
	"github.com/matt-FFFFFF/scrollrun/internal/frame"
	"github.com/matt-FFFFFF/scrollrun/internal/linereader"
	"github.com/matt-FFFFFF/scrollrun/internal/shell"
	"github.com/matt-FFFFFF/scrollrun/internal/signalbroker"
	"github.com/matt-FFFFFF/scrollrun/internal/window"
	"golang.org/x/term"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	defaultNumLines = 10

	// frameChrome is the number of non-content rows in a frame: the header
	// and the two borders.
	frameChrome = 3
)

// Options configures a render loop.
type Options struct {
	// NumLines is the number of content rows in the window. Zero derives a
	// value from the terminal height, falling back to 10 when the height is
	// unknown.
	NumLines int
	// Output is the terminal to paint on. Defaults to os.Stdout.
	Output io.Writer
}

// RunCommand spawns command through the user's shell and renders its output
// until it exits, returning the exit status to forward as our own. A
// non-nil error means nothing ran and no frame was drawn.
func RunCommand(ctx context.Context, command string, opts Options) (int, error) {
	l, err := newLoop(ctx, opts)
	if err != nil {
		return 0, err
	}

	proc, err := shell.Start(ctx, command)
	if err != nil {
		return 0, err
	}

	l.events = proc.Events()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()

	go signalbroker.Watch(watchCtx, sigCh, proc)

	exitCh := make(chan int, 1)

	go func() {
		code, err := proc.Wait()
		if err != nil {
			ctxlog.Warn(ctx, "wait for child failed", "error", err)
		}

		exitCh <- code
	}()

	return l.run(ctx, exitCh), nil
}

// RunReader renders lines read from r, for use when output is piped in
// instead of spawned. It returns once the stream ends.
func RunReader(ctx context.Context, r io.Reader, opts Options) error {
	l, err := newLoop(ctx, opts)
	if err != nil {
		return err
	}

	events := make(chan linereader.Event, linereader.DefaultBufferSize)

	go func() {
		defer close(events)

		linereader.Stream(r, events)
	}()

	l.events = events
	l.run(ctx, nil)

	return nil
}

func newLoop(ctx context.Context, opts Options) (*loop, error) {
	dest := opts.Output
	if dest == nil {
		dest = os.Stdout
	}

	width, height, sized := dimensions(ctx, dest)

	rows := opts.NumLines
	if rows == 0 {
		rows = defaultNumLines
		if sized {
			rows = numLinesFor(height)
		}
	}

	// The frame needs three rows of chrome around the content; cap the
	// window so the whole frame fits when the terminal height is known.
	if sized && rows > height-frameChrome {
		rows = max(height-frameChrome, 1)
	}

	win, err := window.New(rows)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &loop{
		dest:   dest,
		styles: frame.DefaultStyles(lipgloss.NewRenderer(dest)),
		win:    win,
		rows:   rows,
		width:  width,
		state:  stateStarting,
		now:    time.Now,
	}, nil
}

// dimensions returns the size of the terminal behind w, or sane defaults
// when w is not a terminal or the query fails.
func dimensions(ctx context.Context, w io.Writer) (int, int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth, defaultHeight, false
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		ctxlog.Info(ctx, "terminal size query failed, using defaults", "error", err)

		return defaultWidth, defaultHeight, false
	}

	return width, height, true
}

// numLinesFor derives the window height from the terminal row count. Small
// terminals keep at least one content row; larger ones reserve a third of
// the screen, and at least five rows, above the window.
func numLinesFor(rows int) int {
	if rows < 11 {
		return max(rows-4, 1)
	}

	return rows - max(rows/3, 5)
}
