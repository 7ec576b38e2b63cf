package shuttle

import (
	"fmt"
	"sync"
)

// ResponderFunc maps an incoming request to a scripted response. Queue a
// ResponderFunc when a mock needs to inspect the request it answers.
type ResponderFunc func(*Request) (*Response, error)

// mockEntry is one queued script entry: a literal response or a
// responder, never both.
type mockEntry struct {
	res *Response
	fn  ResponderFunc
}

// MockHandler is a deterministic, network-free transport for tests. It
// replays a FIFO queue of pre-loaded entries; executing against an empty
// queue fails with [ErrQueueExhausted].
type MockHandler struct {
	mu    sync.Mutex
	queue []mockEntry
	debug bool
}

// NewMockHandler builds a handler pre-loaded with literal responses,
// returned in the order given.
func NewMockHandler(responses ...*Response) *MockHandler {
	h := &MockHandler{}
	for _, res := range responses {
		h.Append(res)
	}
	return h
}

// Append queues a literal response.
func (h *MockHandler) Append(res *Response) *MockHandler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, mockEntry{res: res})
	return h
}

// AppendFunc queues a responder invoked with the incoming request.
func (h *MockHandler) AppendFunc(fn ResponderFunc) *MockHandler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, mockEntry{fn: fn})
	return h
}

// Remaining returns the number of unconsumed entries.
func (h *MockHandler) Remaining() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queue)
}

// Execute pops the head entry. A literal response is returned directly;
// a responder is invoked with req and its result returned. The request
// body is never inspected.
func (h *MockHandler) Execute(req *Request) (*Response, error) {
	h.mu.Lock()
	if len(h.queue) == 0 {
		h.mu.Unlock()
		return nil, fmt.Errorf("executing %s %s: %w", req.Method(), req.Target(), ErrQueueExhausted)
	}
	entry := h.queue[0]
	h.queue = h.queue[1:]
	h.mu.Unlock()

	if entry.fn != nil {
		return entry.fn(req)
	}
	return entry.res, nil
}

// SetDebug records the flag; a mock has no diagnostics to emit.
func (h *MockHandler) SetDebug(enabled bool) Handler {
	h.debug = enabled
	return h
}

// Debug reports the recorded debug flag.
func (h *MockHandler) Debug() bool {
	return h.debug
}
