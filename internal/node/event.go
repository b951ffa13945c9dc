// Package node implements the shared event-loop core: an input reader, a
// ticker, and a single handler goroutine that owns stdout, wired together
// over a multi-producer single-consumer event queue.
package node

import "github.com/mcastellin/maelstrom-nodes/internal/protocol"

// EventKind tags the three kinds of event feeding the handler loop.
type EventKind int

const (
	// EventInput carries one decoded envelope from stdin.
	EventInput EventKind = iota
	// EventTick fires periodically or on a force-tick signal.
	EventTick
	// EventClose is emitted once, on stdin EOF (Err is nil) or on a fatal
	// decode error (Err is non-nil), and terminates the handler loop.
	EventClose
)

// Event is the single type flowing through the event queue from both
// producers: the input reader (EventInput, EventClose) and the ticker
// (EventTick).
type Event struct {
	Kind     EventKind
	Envelope protocol.Envelope
	Err      error
}

// Workload is implemented by each of the four node cores (echo, unique-id,
// broadcast, counter). Run hosts any Workload without workload-specific
// branches.
type Workload interface {
	// HandleRequest reacts to one inbound envelope, returning any outbound
	// envelopes to write and whether the ticker should be force-fired.
	HandleRequest(env protocol.Envelope) (outbound []protocol.Envelope, forceTick bool, err error)
	// Tick reacts to a periodic or forced tick, returning any outbound
	// envelopes to write.
	Tick() []protocol.Envelope
}
