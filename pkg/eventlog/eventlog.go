// Package eventlog keeps a short fixed-capacity history of cycle events.
package eventlog

import "time"

// Capacity is the number of entries the log retains. The renderer pads its
// log section to exactly this many lines.
const Capacity = 6

// Entry is one logged event. Elapsed is the time since process start at the
// moment the entry was appended. Marker entries are banners rendered without
// a timestamp.
type Entry struct {
	Message string
	Elapsed time.Duration
	Marker  bool
}

// Log is an append-only ring of up to Capacity entries with FIFO eviction.
// It is owned by a single goroutine and is not safe for concurrent use.
type Log struct {
	clock   func() time.Duration
	entries []Entry
}

// New returns an empty log. clock reports elapsed time since start and is
// called once per append.
func New(clock func() time.Duration) *Log {
	return &Log{
		clock:   clock,
		entries: make([]Entry, 0, Capacity),
	}
}

// Clear empties the log. Called at the start of every acquisition cycle.
func (l *Log) Clear() {
	l.entries = l.entries[:0]
}

// Append adds a timestamped entry, evicting the oldest entry when full.
func (l *Log) Append(message string) {
	l.add(Entry{Message: message, Elapsed: l.clock()})
}

// AppendMarker adds a banner entry, evicting the oldest entry when full.
func (l *Log) AppendMarker(message string) {
	l.add(Entry{Message: message, Elapsed: l.clock(), Marker: true})
}

func (l *Log) add(e Entry) {
	if len(l.entries) == Capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:Capacity-1]
	}
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the current entries in insertion order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of entries currently held.
func (l *Log) Len() int {
	return len(l.entries)
}
