// Package kv models the external linearizable seq-kv collaborator: its
// node id, the wire shapes of the read/cas requests it accepts, and the
// error codes it may reply with. seq-kv's own implementation is out of
// scope; this package only speaks its envelope contract.
package kv

import "github.com/mcastellin/maelstrom-nodes/internal/protocol"

// NodeID is the well-known id of the sequential KV service.
const NodeID = "seq-kv"

// Re-exported error codes, named for readability at counter-engine call
// sites instead of magic numbers.
const (
	ErrTimeout            = protocol.ErrTimeout
	ErrKeyDoesNotExist    = protocol.ErrKeyDoesNotExist
	ErrKeyAlreadyExists   = protocol.ErrKeyAlreadyExists
	ErrPreconditionFailed = protocol.ErrPreconditionFailed
)

// ReadRequest builds a `read{key}` envelope addressed to seq-kv.
func ReadRequest(src string, msgID int, key string) protocol.Envelope {
	return protocol.Envelope{
		Src:  src,
		Dest: NodeID,
		Body: protocol.Body{
			Type: protocol.TypeRead,
			Id:   protocol.IntPtr(msgID),
			Key:  key,
		},
	}
}

// CasRequest builds a `cas{key, from, to, create_if_not_exists}` envelope
// addressed to seq-kv.
func CasRequest(src string, msgID int, key string, from, to int, createIfNotExists bool) protocol.Envelope {
	return protocol.Envelope{
		Src:  src,
		Dest: NodeID,
		Body: protocol.Body{
			Type:              protocol.TypeCas,
			Id:                protocol.IntPtr(msgID),
			Key:               key,
			From:              protocol.IntPtr(from),
			To:                protocol.IntPtr(to),
			CreateIfNotExists: protocol.BoolPtr(createIfNotExists),
		},
	}
}

// IsFromKV reports whether env originated at the seq-kv node.
func IsFromKV(env protocol.Envelope) bool {
	return env.Src == NodeID
}
