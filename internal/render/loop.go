// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/matt-FFFFFF/scrollrun/internal/ctxlog"
	"github.com/matt-FFFFFF/scrollrun/internal/frame"
	"github.com/matt-FFFFFF/scrollrun/internal/linereader"
	"github.com/matt-FFFFFF/scrollrun/internal/window"
	"github.com/muesli/termenv"
)

// tickInterval is the repaint cadence while the child is quiet.
const tickInterval = 100 * time.Millisecond

type state int

const (
	stateStarting state = iota
	stateRunning
	stateDraining
	stateTerminated
)

func (s state) String() string {
	switch s {
	case stateStarting:
		return "starting"
	case stateRunning:
		return "running"
	case stateDraining:
		return "draining"
	case stateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// loop is the render loop. It exclusively owns the window, the clock start
// and the terminal writer for its entire lifetime; no other goroutine
// touches them.
type loop struct {
	dest     io.Writer
	styles   frame.Styles
	win      *window.Window
	events   <-chan linereader.Event
	rows     int
	width    int
	state    state
	started  time.Time
	anchored bool

	now func() time.Time // clock hook for tests
}

// run drives the loop until the stream has ended and, when a child exists,
// its exit status has arrived on exitCh, in either order. A nil exitCh
// means there is no child and the stream alone decides termination. The
// final frame is painted and the cursor released on every path out.
func (l *loop) run(ctx context.Context, exitCh <-chan int) int {
	l.started = l.now()
	l.state = stateRunning

	ctxlog.Debug(ctx, "render loop started", "rows", l.rows, "width", l.width)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var exitCode int

	events := l.events
	exited := exitCh == nil

	for {
		// Coalesce a burst of output into a single frame.
	drain:
		for events != nil {
			select {
			case ev, ok := <-events:
				if !ok {
					events = nil

					break drain
				}

				l.consume(ctx, ev)
			default:
				break drain
			}
		}

		if events == nil || exited {
			l.state = stateDraining
		}

		if events == nil && exited {
			break
		}

		l.repaint()

		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}

			l.consume(ctx, ev)
		case code := <-exitCh:
			exited = true
			exitCode = code
			exitCh = nil
		case <-ticker.C:
		}
	}

	// One last frame with the final elapsed time, then the cursor moves
	// below the window so the frame stays visible.
	l.repaint()
	l.release()
	l.state = stateTerminated

	ctxlog.Debug(ctx, "render loop finished", "exitCode", exitCode)

	return exitCode
}

func (l *loop) consume(ctx context.Context, ev linereader.Event) {
	if ev.Err != nil {
		// A read failure ends the stream; everything shown so far stays.
		ctxlog.Warn(ctx, "output stream read failed", "error", ev.Err)

		return
	}

	l.win.Push(ev.Line)
}

// repaint writes one complete frame as a single atomic write. After the
// first paint the cursor returns to the anchor and every row is rewritten
// in place, erased to end of line first, so remnants of a longer previous
// row never show through. No trailing newline is written after the bottom
// border, which is what keeps the terminal from scrolling.
func (l *loop) repaint() {
	rows := l.frame().Render()

	var buf bytes.Buffer

	out := termenv.NewOutput(&buf)

	if l.anchored {
		out.CursorUp(len(rows) - 1)
	}

	for i, row := range rows {
		buf.WriteString("\r")
		out.ClearLineRight()
		buf.WriteString(row)

		if i < len(rows)-1 {
			buf.WriteString("\n")
		}
	}

	l.anchored = true

	_, _ = l.dest.Write(buf.Bytes())
}

// release moves the cursor below the frame and prints the footer. The
// frame region is no longer ours after this.
func (l *loop) release() {
	_, _ = io.WriteString(l.dest, "\n"+l.frame().Footer()+"\n")
}

func (l *loop) frame() frame.Frame {
	return frame.Frame{
		Elapsed: l.now().Sub(l.started),
		Lines:   l.win.Snapshot(),
		Rows:    l.rows,
		Width:   l.width,
		Styles:  l.styles,
	}
}
