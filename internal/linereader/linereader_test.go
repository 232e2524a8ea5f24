// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package linereader

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader returns its chunks one per Read call, exercising arbitrary
// chunk boundaries including splits mid-line and mid-CRLF.
type chunkReader struct {
	chunks []string
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}

	n := copy(p, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}

	return n, nil
}

// failingReader yields its data, then a read error.
type failingReader struct {
	data string
	err  error
	read bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.read {
		f.read = true
		return copy(p, f.data), nil
	}

	return 0, f.err
}

func collect(t *testing.T, r io.Reader) []Event {
	t.Helper()

	ch := make(chan Event, DefaultBufferSize)
	done := make(chan struct{})

	var events []Event

	go func() {
		defer close(done)

		for ev := range ch {
			events = append(events, ev)
		}
	}()

	Stream(r, ch)
	close(ch)
	<-done

	return events
}

func lines(events []Event) []string {
	var out []string

	for _, ev := range events {
		if ev.Err == nil {
			out = append(out, ev.Line)
		}
	}

	return out
}

func TestStreamLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single line",
			input: "This is a single line",
			want:  []string{"This is a single line"},
		},
		{
			name:  "multiple lines",
			input: "Line 1\nLine 2\nLine 3\n",
			want:  []string{"Line 1", "Line 2", "Line 3"},
		},
		{
			name:  "mixed newlines",
			input: "Line 1\r\nLine 2\nLine 3\r\n",
			want:  []string{"Line 1", "Line 2", "Line 3"},
		},
		{
			name:  "final unterminated line",
			input: "Line 1\npartial",
			want:  []string{"Line 1", "partial"},
		},
		{
			name:  "empty lines preserved",
			input: "a\n\nb\n",
			want:  []string{"a", "", "b"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := collect(t, strings.NewReader(tt.input))

			for _, ev := range events {
				require.NoError(t, ev.Err)
			}

			assert.Equal(t, tt.want, lines(events))
		})
	}
}

func TestStreamChunkBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{
			name:   "split mid-line",
			chunks: []string{"hello ", "world\n"},
			want:   []string{"hello world"},
		},
		{
			name:   "split mid-crlf",
			chunks: []string{"one\r", "\ntwo\n"},
			want:   []string{"one", "two"},
		},
		{
			name:   "newline alone in chunk",
			chunks: []string{"abc", "\n", "def", "\n"},
			want:   []string{"abc", "def"},
		},
		{
			name:   "several lines in one chunk",
			chunks: []string{"a\nb\nc\n"},
			want:   []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := collect(t, &chunkReader{chunks: tt.chunks})
			assert.Equal(t, tt.want, lines(events))
		})
	}
}

func TestStreamReadErrorIsReportedOnce(t *testing.T) {
	readErr := errors.New("broken pipe")
	events := collect(t, &failingReader{data: "before\n", err: readErr})

	require.Len(t, events, 2)
	assert.Equal(t, "before", events[0].Line)
	require.Error(t, events[1].Err)
	assert.ErrorIs(t, events[1].Err, readErr)
}

func TestStreamOrderPreserved(t *testing.T) {
	var sb strings.Builder
	want := make([]string, 0, 500)

	for i := range 500 {
		line := strings.Repeat("x", i%80) + "|" + string(rune('a'+i%26))
		want = append(want, line)
		sb.WriteString(line + "\n")
	}

	events := collect(t, strings.NewReader(sb.String()))
	assert.Equal(t, want, lines(events))
}
