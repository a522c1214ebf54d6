package scicalc

// HistoryCapacity is the number of entries a History keeps.
const HistoryCapacity = 50

// HistoryEntry is one recorded evaluation.
type HistoryEntry struct {
	// Expr is the expression text as entered.
	Expr string
	// Result is the value the expression produced.
	Result float64
	// Index is the sequence number of the entry, starting from 0 and counting
	// evicted entries.
	Index int
}

// History is a bounded log of evaluations. Once it holds HistoryCapacity
// entries, each push evicts the oldest one. The zero value is an empty log.
type History struct {
	// ring holds entries in push order starting at head once full.
	ring []HistoryEntry
	head int
	seq  int
}

// Push records an evaluation.
func (h *History) Push(expr string, result float64) {
	e := HistoryEntry{Expr: expr, Result: result, Index: h.seq}
	h.seq++
	if len(h.ring) < HistoryCapacity {
		h.ring = append(h.ring, e)
		return
	}
	h.ring[h.head] = e
	h.head = (h.head + 1) % len(h.ring)
}

// Entries returns the recorded evaluations from oldest to newest.
func (h *History) Entries() []HistoryEntry {
	r := make([]HistoryEntry, 0, len(h.ring))
	r = append(r, h.ring[h.head:]...)
	return append(r, h.ring[:h.head]...)
}

// Len returns the number of entries in the log.
func (h *History) Len() int {
	return len(h.ring)
}

// Last returns the newest entry. The second result is false if the log is
// empty.
func (h *History) Last() (HistoryEntry, bool) {
	if len(h.ring) == 0 {
		return HistoryEntry{}, false
	}
	k := h.head - 1
	if k < 0 {
		k = len(h.ring) - 1
	}
	return h.ring[k], true
}

// Clear removes every entry. Sequence numbers keep counting.
func (h *History) Clear() {
	h.ring = h.ring[:0]
	h.head = 0
}
