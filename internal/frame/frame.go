// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package frame materialises one complete redraw unit: the elapsed-time
// header, the window borders and the content rows. Frames are pure data;
// writing them to the terminal is the render loop's job.
package frame

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	topBorder    = "╭─"
	bottomBorder = "╰─"
	linePrefix   = "│ "
	ellipsis     = "…"

	headerPrefix = "· Elapsed time: "
	footerPrefix = "· Finished in: "

	// prefixWidth is the number of cells linePrefix occupies before content.
	prefixWidth = 2
)

// Styles bundles the lipgloss styles applied to frame rows.
type Styles struct {
	Header lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns the styles for frames written to r's output. The
// renderer decides the color profile, so frames written to a pipe degrade
// to plain text.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().Bold(true),
		Border: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Frame describes one redraw of the scrolling window.
type Frame struct {
	Elapsed time.Duration
	Lines   []string // most recent lines, oldest first; len(Lines) <= Rows
	Rows    int      // content rows in the window
	Width   int      // terminal width in cells; 0 disables truncation
	Styles  Styles
}

// Render materialises the frame, one row per element, in paint order:
// header, top border, Rows content rows, bottom border. Rows with no line
// yet are blank. Lines wider than the terminal are hard-cut with an
// ellipsis so a single line never wraps onto a second row.
func (f Frame) Render() []string {
	rows := make([]string, 0, f.Rows+3)
	rows = append(rows, f.Styles.Header.Render(headerPrefix+FormatDuration(f.Elapsed)))
	rows = append(rows, f.Styles.Border.Render(topBorder))

	for i := range f.Rows {
		if i >= len(f.Lines) {
			rows = append(rows, "")
			continue
		}

		rows = append(rows, f.Styles.Border.Render(linePrefix)+f.truncated(f.Lines[i]))
	}

	return append(rows, f.Styles.Border.Render(bottomBorder))
}

// Footer renders the line printed below the window once the run has ended.
func (f Frame) Footer() string {
	return f.Styles.Header.Render(footerPrefix + FormatDuration(f.Elapsed))
}

func (f Frame) truncated(line string) string {
	if f.Width <= prefixWidth {
		return line
	}

	return truncate.StringWithTail(line, uint(f.Width-prefixWidth), ellipsis)
}

// FormatDuration formats d as HH:MM:SS. Durations of a day or more roll
// over into the hour count rather than wrapping, so the hour field grows
// past two digits instead of resetting.
func FormatDuration(d time.Duration) string {
	t := int64(d / time.Second)
	seconds := t % 60
	t /= 60
	minutes := t % 60
	hours := t / 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
