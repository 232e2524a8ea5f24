// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package window implements the bounded rolling store of recent output lines.
package window

import (
	"errors"
	"slices"
)

// ErrInvalidCapacity is returned when a window is constructed with a
// capacity below one. A zero-row window cannot display anything between its
// borders, so construction rejects it outright.
var ErrInvalidCapacity = errors.New("window capacity must be at least 1")

// Window holds at most the last `capacity` lines pushed into it, in arrival
// order, evicting the oldest once full. It allocates its backing storage
// once and never grows past capacity.
//
// Window is not safe for concurrent use. The render loop is its single
// owner and sole mutator, which is what makes lock-free snapshots sound.
type Window struct {
	capacity int
	lines    []string
}

// New creates an empty window holding up to capacity lines.
func New(capacity int) (*Window, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Window{
		capacity: capacity,
		lines:    make([]string, 0, capacity),
	}, nil
}

// Push appends line, evicting the oldest entry if the window is full.
func (w *Window) Push(line string) {
	if len(w.lines) == w.capacity {
		copy(w.lines, w.lines[1:])
		w.lines[len(w.lines)-1] = line

		return
	}

	w.lines = append(w.lines, line)
}

// Snapshot returns a copy of the current contents in arrival order.
func (w *Window) Snapshot() []string {
	return slices.Clone(w.lines)
}

// Len returns the number of lines currently held.
func (w *Window) Len() int {
	return len(w.lines)
}

// Cap returns the fixed capacity.
func (w *Window) Cap() int {
	return w.capacity
}
