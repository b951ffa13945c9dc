// Package echo implements the trivial echo workload: byte-identical
// echo_ok replies.
package echo

import "github.com/mcastellin/maelstrom-nodes/internal/protocol"

// Engine implements node.Workload for the echo workload. Its only state is
// the monotonic outbound msg_id counter every node maintains.
type Engine struct {
	idCounter int
}

// New creates an echo Engine.
func New() *Engine { return &Engine{} }

func (e *Engine) nextID() int {
	id := e.idCounter
	e.idCounter++
	return id
}

// HandleRequest replies echo_ok with the same Echo string, unconditionally.
func (e *Engine) HandleRequest(env protocol.Envelope) (outbound []protocol.Envelope, forceTick bool, err error) {
	reply := protocol.Reply(env, protocol.Body{
		Type: protocol.TypeEchoOk,
		Id:   protocol.IntPtr(e.nextID()),
		Echo: env.Body.Echo,
	})
	return []protocol.Envelope{reply}, false, nil
}

// Tick is a no-op: echo never gossips.
func (e *Engine) Tick() []protocol.Envelope { return nil }
