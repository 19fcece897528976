// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package meta

import "strings"

// List is a bounded list of fixed-width text entries, such as the dependency
// list of a Metadata record.
//
// Adding to a full List drops the entry silently; Dropped reports how many
// entries were lost that way. Entries longer than the entry width are
// truncated to width-1 bytes.
type List struct {
	capacity int
	width    int

	items   []string
	dropped int
}

// NewList returns an empty List holding at most capacity entries of width
// bytes each (terminating NUL included).
func NewList(capacity, width int) List {
	return List{capacity: capacity, width: width}
}

// Cap returns the maximum number of entries.
func (l *List) Cap() int { return l.capacity }

// Width returns the encoded width of a single entry.
func (l *List) Width() int { return l.width }

// Len returns the number of populated entries.
func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the populated entries.
func (l *List) Items() []string {
	if len(l.items) == 0 {
		return nil
	}
	return append([]string(nil), l.items...)
}

// Dropped returns the number of entries which were discarded because the
// list was full.
func (l *List) Dropped() int { return l.dropped }

// Truncated returns true iff any entry was dropped.
func (l *List) Truncated() bool { return l.dropped > 0 }

// Add appends s, truncated to the entry width. It returns false and counts
// the entry as dropped if the list is full.
func (l *List) Add(s string) bool {
	if len(l.items) >= l.capacity {
		l.dropped++
		return false
	}
	l.items = append(l.items, truncate(s, l.width))
	return true
}

// AddAll adds every entry in order and returns the number dropped.
func (l *List) AddAll(entries ...string) int {
	before := l.dropped
	for _, e := range entries {
		l.Add(e)
	}
	return l.dropped - before
}

// Reset empties the list and clears the dropped counter.
func (l *List) Reset() {
	l.items = nil
	l.dropped = 0
}

func (l List) clone() List {
	l.items = l.Items()
	return l
}

// SplitList splits a comma separated list. Empty entries are skipped, so
// "a,,b," yields [a b]. Entries are not trimmed.
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' })
}
