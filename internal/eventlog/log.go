// Package eventlog keeps the ordered record of every event received over
// the current connection, and hands out per-consumer cursors into it.
//
// The log is append-only and single-writer (the Channel read loop); each
// consumer drains new entries through its own Cursor, so two consumers can
// lag independently without ever disagreeing about what sits at an index.
package eventlog

import (
	"sync"

	"github.com/gutocz/CartonildosFRONT/internal/protocol"
)

// Log is an append-only sequence of received envelopes. Entries are never
// rewritten or evicted; a session is short-lived enough that growth is
// bounded by connection lifetime.
type Log struct {
	mu      sync.Mutex
	entries []protocol.Envelope
	gen     uint64
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Append adds an envelope at the end of the log.
func (l *Log) Append(env protocol.Envelope) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, env)
}

// Len reports how many envelopes have been appended since the last reset.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Reset discards all entries and bumps the log generation, which rewinds
// every cursor to the start on its next drain. Used when a connection is
// torn down so a fresh session never replays stale events.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.gen++
}

// NewCursor returns a cursor positioned at the start of the log.
func (l *Log) NewCursor() *Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Cursor{log: l, gen: l.gen}
}

// Cursor is one consumer's private read position. Each call to Drain
// returns every entry appended since the previous call, in append order,
// so a consumer sees each event exactly once even when several arrive
// between two processing opportunities.
type Cursor struct {
	log  *Log
	next int
	gen  uint64
}

// Drain returns all unseen entries and advances past them. After a log
// reset the cursor rewinds to the start before draining, keeping cursor
// and log in lockstep. Returns nil when nothing new arrived.
func (c *Cursor) Drain() []protocol.Envelope {
	c.log.mu.Lock()
	defer c.log.mu.Unlock()

	if c.gen != c.log.gen {
		c.gen = c.log.gen
		c.next = 0
	}
	if c.next >= len(c.log.entries) {
		return nil
	}
	batch := c.log.entries[c.next:len(c.log.entries):len(c.log.entries)]
	c.next = len(c.log.entries)
	return batch
}
