// Package sink provides domain.Sink implementations for terminals, buffers and tests.
package sink

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/muesli/termenv"
)

// EchoPrefix marks lines that repeat user input.
const EchoPrefix = "> "

// Writer writes every line to an io.Writer, followed by a newline.
// Safe for concurrent use.
type Writer struct {
	mu   sync.Mutex
	w    io.Writer
	term *termenv.Output
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithStyledEcho renders echoed input lines in bold when w is a terminal.
func WithStyledEcho() WriterOption {
	return func(s *Writer) {
		s.term = termenv.NewOutput(s.w)
	}
}

// NewWriter creates a sink writing to w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	s := &Writer{w: w}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write prints line.
func (s *Writer) Write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.term != nil && strings.HasPrefix(line, EchoPrefix) {
		line = s.term.String(line).Bold().String()
	}
	fmt.Fprintln(s.w, line)
}

// DefaultBufferLimit is the number of characters a Buffer keeps by default.
const DefaultBufferLimit = 10000

// Buffer keeps the most recent output in memory, bounded by a character count.
// When the limit is exceeded, whole lines are dropped from the front.
// Safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	limit int
	lines []string
	size  int
}

// NewBuffer creates a buffer keeping at most limit characters.
// A non-positive limit uses DefaultBufferLimit.
func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = DefaultBufferLimit
	}
	return &Buffer{limit: limit}
}

// Write appends line, evicting the oldest lines past the limit.
func (b *Buffer) Write(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	b.size += len(line) + 1
	drop := 0
	for b.size > b.limit && drop < len(b.lines)-1 {
		b.size -= len(b.lines[drop]) + 1
		drop++
	}
	if drop > 0 {
		b.lines = append([]string(nil), b.lines[drop:]...)
	}
}

// Lines returns a copy of the buffered lines.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// String returns the buffered lines joined by newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.lines = nil
	b.size = 0
	b.mu.Unlock()
}

// Tee writes every line to all of its sinks.
type Tee []domain.Sink

// Write forwards line to every sink.
func (t Tee) Write(line string) {
	for _, s := range t {
		s.Write(line)
	}
}
