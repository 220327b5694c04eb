package editor

import "github.com/diewo77/doc-designer/internal/layout"

// DefaultHistoryCapacity bounds the number of snapshots kept.
const DefaultHistoryCapacity = 50

// History is a bounded list of template snapshots with a cursor.
// Entries before the cursor are undo states, entries after it redo states.
type History struct {
	entries  []layout.Template
	index    int
	capacity int
}

// NewHistory starts a history holding only initial. Capacities below 1
// are raised to 1.
func NewHistory(initial layout.Template, capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		entries:  []layout.Template{initial.Clone()},
		capacity: capacity,
	}
}

// Push records t as the newest state. Redo states are discarded and the
// oldest entries are evicted beyond capacity.
func (h *History) Push(t layout.Template) {
	h.entries = append(h.entries[:h.index+1], t.Clone())
	if over := len(h.entries) - h.capacity; over > 0 {
		// copy so the evicted snapshots can be collected
		h.entries = append([]layout.Template(nil), h.entries[over:]...)
	}
	h.index = len(h.entries) - 1
}

// Undo moves the cursor back and returns that snapshot.
func (h *History) Undo() (layout.Template, bool) {
	if !h.CanUndo() {
		return layout.Template{}, false
	}
	h.index--
	return h.entries[h.index].Clone(), true
}

// Redo moves the cursor forward and returns that snapshot.
func (h *History) Redo() (layout.Template, bool) {
	if !h.CanRedo() {
		return layout.Template{}, false
	}
	h.index++
	return h.entries[h.index].Clone(), true
}

// Reset drops every entry and starts over from t.
func (h *History) Reset(t layout.Template) {
	h.entries = []layout.Template{t.Clone()}
	h.index = 0
}

func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }
func (h *History) Len() int      { return len(h.entries) }
func (h *History) Index() int    { return h.index }
func (h *History) Capacity() int { return h.capacity }

// Current returns a copy of the snapshot under the cursor.
func (h *History) Current() layout.Template {
	return h.entries[h.index].Clone()
}
