package conversions

import "sync"

// LineItems is an ordered, appendable sequence of pending line items.
type LineItems struct {
	mu    sync.Mutex
	items []LineItem
}

// NewLineItems creates and returns an empty sequence.
func NewLineItems() *LineItems {
	return &LineItems{}
}

// Append adds an item to the end of the sequence.
func (l *LineItems) Append(item LineItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item)
}

// Len returns the number of pending items.
func (l *LineItems) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// ToSlice returns a copy of the pending items, preserving order.
func (l *LineItems) ToSlice() []LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyLocked()
}

// Drain returns the pending items and leaves the sequence empty.
// Items appended afterwards never show up in the returned slice.
func (l *LineItems) Drain() []LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := l.copyLocked()
	l.items = nil
	return items
}

// Clear removes all pending items.
func (l *LineItems) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

func (l *LineItems) copyLocked() []LineItem {
	if len(l.items) == 0 {
		return nil
	}
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}
