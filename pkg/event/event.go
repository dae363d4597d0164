// Package event provides a simple in-process event dispatcher. The order
// service fires events on state changes; listeners (websocket feed, cache
// invalidation) are wired up at boot.
package event

import "sync"

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the given event name.
func Listen(name string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[name] = append(handlers[name], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(name string, payload interface{}) {
	mu.RLock()
	hs := make([]Handler, len(handlers[name]))
	copy(hs, handlers[name])
	mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
}

// Flush removes all listeners. Used by tests.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
