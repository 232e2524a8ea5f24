// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package frame

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asciiStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	return DefaultStyles(r)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "00:00:00"},
		{seconds: 8, want: "00:00:08"},
		{seconds: 45, want: "00:00:45"},
		{seconds: 125, want: "00:02:05"},
		{seconds: 3661, want: "01:01:01"},
		{seconds: 86400, want: "24:00:00"},
		{seconds: 360000, want: "100:00:00"},
		{seconds: 360000 + 3661, want: "101:01:01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(time.Duration(tt.seconds)*time.Second))
		})
	}
}

func TestRenderRowCountAndPadding(t *testing.T) {
	f := Frame{
		Elapsed: 8 * time.Second,
		Lines:   []string{"one", "two", "three"},
		Rows:    10,
		Width:   80,
		Styles:  asciiStyles(),
	}

	rows := f.Render()
	require.Len(t, rows, 13) // header + top border + 10 content rows + bottom border

	assert.Equal(t, "· Elapsed time: 00:00:08", rows[0])
	assert.Equal(t, "╭─", rows[1])
	assert.Equal(t, "│ one", rows[2])
	assert.Equal(t, "│ two", rows[3])
	assert.Equal(t, "│ three", rows[4])
	assert.Equal(t, "╰─", rows[12])

	// Rows without content are blank, not placeholder text.
	for i := 5; i < 12; i++ {
		assert.Empty(t, rows[i])
	}
}

func TestRenderFullWindow(t *testing.T) {
	f := Frame{
		Lines:  []string{"a", "b", "c"},
		Rows:   3,
		Width:  80,
		Styles: asciiStyles(),
	}

	rows := f.Render()
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"│ a", "│ b", "│ c"}, rows[2:5])
}

func TestRenderTruncatesWideLines(t *testing.T) {
	long := strings.Repeat("x", 200)
	f := Frame{
		Lines:  []string{long, "short"},
		Rows:   2,
		Width:  20,
		Styles: asciiStyles(),
	}

	rows := f.Render()
	content := rows[2]

	// Prefix (2 cells) plus 18 cells of content: 17 x's and the ellipsis.
	assert.Equal(t, "│ "+strings.Repeat("x", 17)+"…", content)
	assert.Equal(t, "│ short", rows[3])
}

func TestRenderZeroWidthDisablesTruncation(t *testing.T) {
	long := strings.Repeat("y", 300)
	f := Frame{
		Lines:  []string{long},
		Rows:   1,
		Styles: asciiStyles(),
	}

	rows := f.Render()
	assert.Equal(t, "│ "+long, rows[2])
}

func TestRenderDeterministic(t *testing.T) {
	f := Frame{
		Elapsed: 90 * time.Second,
		Lines:   []string{"alpha", "beta"},
		Rows:    4,
		Width:   40,
		Styles:  asciiStyles(),
	}

	assert.Equal(t, f.Render(), f.Render())
}

func TestFooter(t *testing.T) {
	f := Frame{
		Elapsed: 3661 * time.Second,
		Styles:  asciiStyles(),
	}

	assert.Equal(t, "· Finished in: 01:01:01", f.Footer())
}
