package node

import (
	"fmt"

	"github.com/mcastellin/maelstrom-nodes/internal/protocol"
)

// Handshake blocks reading exactly one envelope, which must be an `init`
// request, replies `init_ok`, and returns the assigned node id and
// cluster roster that seed every workload's constant identity.
func Handshake(dec *protocol.Decoder, enc *protocol.Encoder) (nodeID string, nodeIDs []string, err error) {
	env, err := dec.Next()
	if err != nil {
		return "", nil, err
	}
	if env.Body.Type != protocol.TypeInit {
		return "", nil, fmt.Errorf("expected init request, got %q", env.Body.Type)
	}

	reply := protocol.Reply(env, protocol.Body{Type: protocol.TypeInitOk})
	if err := enc.Encode(reply); err != nil {
		return "", nil, err
	}

	return env.Body.NodeId, env.Body.NodeIds, nil
}
