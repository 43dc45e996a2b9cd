// Package history keeps a bounded, browsable log of submitted lines.
//
// The log holds at most Max entries; adding past the bound evicts the oldest.
// A single cursor moves over the entries with Previous (older) and Next
// (newer). Moving past either end parks the cursor just outside the log and
// returns nothing, so the following move in the opposite direction returns
// the entry at that end again.
package history

import (
	"errors"
	"fmt"
)

// DefaultSize is the bound used when New receives a non-positive size.
const DefaultSize = 50

// ErrAlreadyLinked is the panic value (wrapped) raised when an entry that is
// already part of a log is inserted again.
var ErrAlreadyLinked = errors.New("history entry already linked")

// Entry is a line recorded in a Log.
type Entry struct {
	Value string
	owner *Log
}

// NewEntry creates an unlinked entry.
func NewEntry(value string) *Entry {
	return &Entry{Value: value}
}

// Linked reports whether the entry currently belongs to a log.
func (e *Entry) Linked() bool {
	return e.owner != nil
}

// Log is a fixed-capacity ring of entries, newest first.
// It is not safe for concurrent use.
type Log struct {
	ring []*Entry
	head int // ring index of the newest entry
	size int

	// cursor is a logical position: 0 is the newest entry, size-1 the oldest.
	// -1 and size are the rest positions past the newest and the oldest entry.
	cursor int
}

// New creates an empty log holding at most max entries.
func New(max int) *Log {
	if max < 1 {
		max = DefaultSize
	}
	return &Log{
		ring:   make([]*Entry, max),
		head:   max - 1,
		cursor: -1,
	}
}

// Max returns the bound of the log.
func (l *Log) Max() int {
	return len(l.ring)
}

// Len returns the number of entries in the log.
func (l *Log) Len() int {
	return l.size
}

// Add records line as the newest entry and returns it.
func (l *Log) Add(line string) *Entry {
	e := NewEntry(line)
	l.Insert(e)
	return e
}

// Insert links e as the newest entry, moves the cursor to it and evicts the
// oldest entry if the log is over its bound.
// It panics if e already belongs to a log.
func (l *Log) Insert(e *Entry) {
	if e == nil {
		panic(fmt.Errorf("history: insert nil entry"))
	}
	if e.owner != nil {
		panic(fmt.Errorf("history: %w: %q", ErrAlreadyLinked, e.Value))
	}

	l.head = (l.head + 1) % len(l.ring)
	if evicted := l.ring[l.head]; evicted != nil {
		evicted.owner = nil
	}
	l.ring[l.head] = e
	e.owner = l
	if l.size < len(l.ring) {
		l.size++
	}
	l.cursor = 0
}

// Previous moves the cursor one entry toward older entries and returns it.
// It returns false when the log is empty or the cursor was already on the oldest entry.
func (l *Log) Previous() (string, bool) {
	if l.size == 0 {
		return "", false
	}
	if l.cursor >= l.size-1 {
		l.cursor = l.size
		return "", false
	}
	l.cursor++
	return l.at(l.cursor).Value, true
}

// Next moves the cursor one entry toward newer entries and returns it.
// It returns false when the log is empty or the cursor was already on the newest entry.
func (l *Log) Next() (string, bool) {
	if l.size == 0 {
		return "", false
	}
	if l.cursor <= 0 {
		l.cursor = -1
		return "", false
	}
	l.cursor--
	return l.at(l.cursor).Value, true
}

// Current returns the entry under the cursor, if the cursor is on one.
func (l *Log) Current() (string, bool) {
	if l.cursor < 0 || l.cursor >= l.size {
		return "", false
	}
	return l.at(l.cursor).Value, true
}

// Entries returns the values of the log, newest first.
func (l *Log) Entries() []string {
	out := make([]string, 0, l.size)
	for i := 0; i < l.size; i++ {
		out = append(out, l.at(i).Value)
	}
	return out
}

// Reset removes every entry.
func (l *Log) Reset() {
	for i := range l.ring {
		if l.ring[i] != nil {
			l.ring[i].owner = nil
			l.ring[i] = nil
		}
	}
	l.head = len(l.ring) - 1
	l.size = 0
	l.cursor = -1
}

func (l *Log) at(pos int) *Entry {
	n := len(l.ring)
	return l.ring[((l.head-pos)%n+n)%n]
}
