package chat

import "encoding/json"

// History is a bounded FIFO of the most recent message payloads. It is
// not safe for concurrent use on its own; the hub serializes access.
type History struct {
	entries []json.RawMessage
	head    int
	size    int
}

// NewHistory returns an empty history bounded to limit entries.
func NewHistory(limit int) *History {
	return &History{
		entries: make([]json.RawMessage, limit),
	}
}

// Append adds a payload, evicting the oldest entry when full.
func (h *History) Append(payload json.RawMessage) {
	if h.size == len(h.entries) {
		// buffer full: overwrite the oldest entry
		h.entries[h.head] = payload
		h.head = (h.head + 1) % len(h.entries)
		return
	}

	h.entries[(h.head+h.size)%len(h.entries)] = payload
	h.size++
}

// Len returns the number of retained payloads.
func (h *History) Len() int {
	return h.size
}

// Snapshot returns the retained payloads in insertion order. The
// returned slice is a copy: later appends never mutate it.
func (h *History) Snapshot() []json.RawMessage {
	out := make([]json.RawMessage, h.size)

	for i := range h.size {
		out[i] = h.entries[(h.head+i)%len(h.entries)]
	}

	return out
}
