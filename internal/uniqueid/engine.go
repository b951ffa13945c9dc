// Package uniqueid implements the trivial unique-id workload: ids are
// "<node_id>/<counter>", unique across the cluster because node ids are
// unique.
package uniqueid

import (
	"fmt"

	"github.com/mcastellin/maelstrom-nodes/internal/protocol"
)

// Engine implements node.Workload for the unique-id workload.
type Engine struct {
	nodeID    string
	idCounter int
}

// New creates a unique-id Engine seeded with the node's own id.
func New(nodeID string) *Engine {
	return &Engine{nodeID: nodeID}
}

func (e *Engine) nextID() int {
	id := e.idCounter
	e.idCounter++
	return id
}

// HandleRequest replies generate_ok with "<node_id>/<counter>", incrementing
// the node-local counter on every reply.
func (e *Engine) HandleRequest(env protocol.Envelope) (outbound []protocol.Envelope, forceTick bool, err error) {
	id := e.nextID()
	reply := protocol.Reply(env, protocol.Body{
		Type:        protocol.TypeGenerateOk,
		Id:          protocol.IntPtr(id),
		GeneratedId: fmt.Sprintf("%s/%d", e.nodeID, id),
	})
	return []protocol.Envelope{reply}, false, nil
}

// Tick is a no-op: unique-id generation never gossips.
func (e *Engine) Tick() []protocol.Envelope { return nil }
