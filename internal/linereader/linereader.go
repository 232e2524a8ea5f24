// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package linereader splits a raw byte stream into discrete line events.
//
// It is the producer half of the render pipeline: one goroutine per stream
// calls Stream, which emits one event per completed line on an ordered,
// non-lossy channel. The package never touches the terminal.
package linereader

import (
	"bufio"
	"io"
)

const (
	// MaxLineSize is the maximum length of a single line, in bytes. Longer
	// lines end the stream with a read failure event.
	MaxLineSize = 1024 * 1024

	// DefaultBufferSize is the recommended capacity for event channels.
	// A full channel backpressures the producer rather than dropping lines.
	DefaultBufferSize = 64

	initialScanBuffer = 64 * 1024
)

// Event is a single occurrence on a subprocess output stream: one completed
// line, or a read failure. A failure ends the stream and is emitted at most
// once.
type Event struct {
	Line string
	Err  error
}

// Stream reads r until EOF or error, sending one Event per completed line
// on ch. Lines are emitted as soon as their terminator is observed,
// regardless of how the underlying reads are chunked. Both "\n" and "\r\n"
// terminators are recognised and stripped, and a final unterminated line is
// emitted before returning. On a read failure a single Event carrying the
// error is sent and the stream ends.
//
// Stream blocks on channel sends, so a slow consumer slows the producer
// instead of losing output. The caller owns ch and decides when to close
// it; Stream only ever sends.
func Stream(r io.Reader, ch chan<- Event) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, initialScanBuffer), MaxLineSize)

	for sc.Scan() {
		ch <- Event{Line: sc.Text()}
	}

	if err := sc.Err(); err != nil {
		ch <- Event{Err: err}
	}
}
