// Package broadcast implements the anti-entropy gossip engine at the core
// of this repository. It owns the local seen-set, per-peer
// known/last-received bookkeeping, handles client broadcast/read/topology
// and peer consensus messages, and emits gossip on ticks.
package broadcast

import (
	"sort"

	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/protocol"
)

// Engine implements node.Workload for the broadcast workload.
type Engine struct {
	nodeID string

	messages map[int]struct{}
	peers    map[string]struct{}
	state    map[string]*peerState

	idCounter int

	logger *zap.Logger
}

// New creates a broadcast Engine for nodeID. peers defaults to the roster
// minus self; a later `topology` message may replace it.
func New(nodeID string, roster []string, logger *zap.Logger) *Engine {
	e := &Engine{
		nodeID:   nodeID,
		messages: map[int]struct{}{},
		peers:    map[string]struct{}{},
		state:    map[string]*peerState{},
		logger:   logger,
	}
	for _, p := range roster {
		if p != nodeID {
			e.peers[p] = struct{}{}
		}
	}
	return e
}

func (e *Engine) nextID() int {
	id := e.idCounter
	e.idCounter++
	return id
}

func (e *Engine) peerState(id string) *peerState {
	ps, ok := e.state[id]
	if !ok {
		ps = newPeerState()
		e.state[id] = ps
	}
	return ps
}

// HandleRequest dispatches a client broadcast/read/topology request or a
// peer consensus message.
func (e *Engine) HandleRequest(env protocol.Envelope) (outbound []protocol.Envelope, forceTick bool, err error) {
	switch env.Body.Type {
	case protocol.TypeBroadcast:
		return e.handleBroadcast(env)
	case protocol.TypeRead:
		return e.handleRead(env)
	case protocol.TypeTopology:
		return e.handleTopology(env)
	case protocol.TypeConsensus:
		return e.handleConsensus(env)
	default:
		e.logger.Warn("broadcast engine received unrecognized message type", zap.String("type", env.Body.Type))
		return nil, false, nil
	}
}

func (e *Engine) handleBroadcast(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	value := 0
	if env.Body.Message != nil {
		value = *env.Body.Message
	}

	_, alreadySeen := e.messages[value]
	e.messages[value] = struct{}{}

	reply := protocol.Reply(env, protocol.Body{
		Type: protocol.TypeBroadcastOk,
		Id:   protocol.IntPtr(e.nextID()),
	})
	return []protocol.Envelope{reply}, !alreadySeen, nil
}

func (e *Engine) handleRead(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	reply := protocol.Reply(env, protocol.Body{
		Type:     protocol.TypeReadOk,
		Id:       protocol.IntPtr(e.nextID()),
		Messages: e.snapshot(),
	})
	return []protocol.Envelope{reply}, false, nil
}

func (e *Engine) handleTopology(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	if mine, ok := env.Body.Topology[e.nodeID]; ok {
		peers := make(map[string]struct{}, len(mine))
		for _, p := range mine {
			peers[p] = struct{}{}
		}
		e.peers = peers
	}
	// If topology omits this node, peers stay as the default already
	// applied at construction time.

	reply := protocol.Reply(env, protocol.Body{
		Type: protocol.TypeTopologyOk,
		Id:   protocol.IntPtr(e.nextID()),
	})
	return []protocol.Envelope{reply}, false, nil
}

func (e *Engine) handleConsensus(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	ps := e.peerState(env.Src)

	for _, v := range env.Body.SeenAck {
		ps.known[v] = struct{}{}
	}

	novel := false
	for _, v := range env.Body.Seen {
		if _, ok := e.messages[v]; !ok {
			e.messages[v] = struct{}{}
			novel = true
		}
	}

	lastReceived := make(map[int]struct{}, len(env.Body.Seen))
	for _, v := range env.Body.Seen {
		lastReceived[v] = struct{}{}
	}
	ps.lastReceived = lastReceived

	// No synchronous reply: acknowledgement is piggybacked on the next tick.
	return nil, novel, nil
}

// Tick emits one `consensus` envelope per peer that has something to send
// (new values or a pending ack). Peers are iterated in sorted order for
// deterministic per-tick output.
func (e *Engine) Tick() []protocol.Envelope {
	var out []protocol.Envelope
	for _, peer := range e.sortedPeers() {
		ps := e.peerState(peer)

		newForPeer := e.difference(e.messages, ps.known)
		ackForPeer := ps.drainLastReceived()

		if len(newForPeer) == 0 && len(ackForPeer) == 0 {
			continue
		}

		out = append(out, protocol.Envelope{
			Src:  e.nodeID,
			Dest: peer,
			Body: protocol.Body{
				Type:    protocol.TypeConsensus,
				Seen:    newForPeer,
				SeenAck: ackForPeer,
			},
		})
	}
	return out
}

func (e *Engine) sortedPeers() []string {
	peers := make([]string, 0, len(e.peers))
	for p := range e.peers {
		peers = append(peers, p)
	}
	sort.Strings(peers)
	return peers
}

func (e *Engine) difference(set map[int]struct{}, exclude map[int]struct{}) []int {
	var out []int
	for v := range set {
		if _, ok := exclude[v]; !ok {
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func (e *Engine) snapshot() []int {
	out := make([]int, 0, len(e.messages))
	for v := range e.messages {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
