package route

import "sync"

// History is the source of the current path and the sink for navigations.
type History interface {
	// Current returns the current path.
	Current() string
	// Push records path as the newest entry without reloading the page.
	Push(path string)
	// Listen registers fn to be called when the path changes outside of
	// Push.
	Listen(fn func(path string))
}

// MemoryHistory is a History kept in memory. It backs native builds and
// tests.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners []func(string)
}

// NewMemoryHistory returns a history positioned at start.
func NewMemoryHistory(start string) *MemoryHistory {
	return &MemoryHistory{entries: []string{Clean(start)}}
}

func (h *MemoryHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push drops any forward entries and appends path.
func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
}

func (h *MemoryHistory) Listen(fn func(path string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Back moves one entry back and notifies listeners. It reports whether
// there was an entry to go back to.
func (h *MemoryHistory) Back() bool {
	return h.move(-1)
}

// Forward moves one entry forward and notifies listeners.
func (h *MemoryHistory) Forward() bool {
	return h.move(1)
}

func (h *MemoryHistory) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	path := h.entries[next]
	listeners := append([]func(string){}, h.listeners...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
	return true
}
