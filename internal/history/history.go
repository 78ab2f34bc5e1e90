// Package history keeps the linear undo/redo log of committed figures.
//
// A Log is a value. Every operation returns a new Log and leaves the receiver
// untouched, so a Log held by an older state stays valid after later commits.
package history

import "github.com/inamate/ellipse/internal/figure"

// Outcome describes what a commit did to the log.
type Outcome int

const (
	// Appended means a new entry was added at the tail in live mode.
	Appended Outcome = iota
	// Branched means the redo tail after the cursor was discarded before appending.
	Branched
	// Duplicate means the figure matched the current entry and nothing changed.
	Duplicate
	// Truncated means the redo tail was discarded and the figure matched the
	// entry under the cursor, so nothing was appended.
	Truncated
)

func (o Outcome) String() string {
	switch o {
	case Appended:
		return "appended"
	case Branched:
		return "branched"
	case Duplicate:
		return "duplicate"
	case Truncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// Log is an ordered list of committed figures, oldest first, plus an
// optional cursor. With no cursor the log is in live mode and the current
// figure is the last entry. A cursor is set by the first undo and cleared by
// the next commit.
type Log struct {
	entries []figure.Figure
	cursor  int
	undoing bool
}

// New returns a log seeded with the initial figure.
func New(initial figure.Figure) Log {
	return Log{entries: []figure.Figure{initial}}
}

// Len returns the number of entries.
func (l Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries.
func (l Log) Entries() []figure.Figure {
	out := make([]figure.Figure, len(l.entries))
	copy(out, l.entries)
	return out
}

// At returns the entry at index i.
func (l Log) At(i int) (figure.Figure, bool) {
	if i < 0 || i >= len(l.entries) {
		return figure.Figure{}, false
	}
	return l.entries[i], true
}

// Cursor returns the undo position and whether one is set.
func (l Log) Cursor() (int, bool) {
	return l.cursor, l.undoing
}

// position is the index the editor is currently looking at.
func (l Log) position() int {
	if l.undoing {
		return l.cursor
	}
	return len(l.entries) - 1
}

// CanUndo reports whether Undo would move. False with a single entry or when
// the cursor already sits on the oldest entry.
func (l Log) CanUndo() bool {
	return l.position() > 0
}

// CanRedo reports whether Redo would move. Redo is only available after an
// undo and until the cursor reaches the last entry.
func (l Log) CanRedo() bool {
	return l.undoing && l.cursor+1 < len(l.entries)
}

// Commit records f.
//
// In live mode f is appended unless it equals the last entry. With a cursor
// set, entries after the cursor are always dropped and the log returns to
// live mode; f is appended unless it equals the entry under the cursor.
func (l Log) Commit(f figure.Figure) (Log, Outcome) {
	n := len(l.entries)
	if n == 0 {
		return Log{entries: []figure.Figure{f}}, Appended
	}

	if !l.undoing {
		if l.entries[n-1].Equal(f) {
			return l, Duplicate
		}
		return Log{entries: append(l.entries[:n:n], f)}, Appended
	}

	keep := l.cursor + 1
	if l.entries[l.cursor].Equal(f) {
		return Log{entries: l.entries[:keep:keep]}, Truncated
	}
	return Log{entries: append(l.entries[:keep:keep], f)}, Branched
}

// Undo steps back one entry and returns the figure found there. At the
// oldest entry it returns ok=false and the log unchanged.
func (l Log) Undo() (figure.Figure, Log, bool) {
	i := l.position() - 1
	if i < 0 {
		return figure.Figure{}, l, false
	}
	return l.entries[i], Log{entries: l.entries, cursor: i, undoing: true}, true
}

// Redo steps forward one entry after an undo. Without a prior undo, or at
// the newest entry, it returns ok=false and the log unchanged.
func (l Log) Redo() (figure.Figure, Log, bool) {
	if !l.undoing {
		return figure.Figure{}, l, false
	}
	i := l.cursor + 1
	if i >= len(l.entries) {
		return figure.Figure{}, l, false
	}
	return l.entries[i], Log{entries: l.entries, cursor: i, undoing: true}, true
}
