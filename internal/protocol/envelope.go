// Package protocol implements the Maelstrom wire format: newline-delimited
// JSON envelopes exchanged over stdin/stdout between a node, its clients,
// and its peers.
package protocol

import "encoding/json"

// Envelope is one message on the wire: a source, a destination, and a body
// whose shape depends on Body.Type.
type Envelope struct {
	Src  string `json:"src"`
	Dest string `json:"dest"`
	Body Body   `json:"body"`
}

// Body carries the Maelstrom RPC bookkeeping fields (Id/ReplyTo) plus the
// payload fields for whichever Type this body represents. Unused payload
// fields are omitted from the wire via `omitempty` so a request for one
// message type never leaks empty fields belonging to another.
type Body struct {
	Type    string `json:"type"`
	Id      *int   `json:"msg_id,omitempty"`
	ReplyTo *int   `json:"in_reply_to,omitempty"`

	// init
	NodeId  string   `json:"node_id,omitempty"`
	NodeIds []string `json:"node_ids,omitempty"`

	// echo
	Echo string `json:"echo,omitempty"`

	// generate
	GeneratedId string `json:"id,omitempty"`

	// broadcast
	Message  *int  `json:"message,omitempty"`
	Messages []int `json:"messages,omitempty"`

	// topology
	Topology map[string][]string `json:"topology,omitempty"`

	// consensus (peer-to-peer gossip)
	Seen    []int `json:"seen,omitempty"`
	SeenAck []int `json:"seen_ack,omitempty"`

	// counter
	Delta *int `json:"delta,omitempty"`
	Value *int `json:"value,omitempty"`

	// kv: read/cas
	Key               string `json:"key,omitempty"`
	From              *int   `json:"from,omitempty"`
	To                *int   `json:"to,omitempty"`
	CreateIfNotExists *bool  `json:"create_if_not_exists,omitempty"`

	// kv: error
	Code *int   `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

// Reply builds the envelope sent back in response to req: src/dest are
// swapped and in_reply_to is set to the request's msg_id.
func Reply(req Envelope, body Body) Envelope {
	body.ReplyTo = req.Body.Id
	return Envelope{
		Src:  req.Dest,
		Dest: req.Src,
		Body: body,
	}
}

// IntPtr is a convenience constructor used throughout the engines to fill
// the many optional int fields on Body.
func IntPtr(v int) *int { return &v }

// BoolPtr mirrors IntPtr for the one optional bool field on Body.
func BoolPtr(v bool) *bool { return &v }

// MarshalCompact serializes an envelope to a single compact JSON line
// (without the trailing newline the Encoder appends).
func MarshalCompact(env Envelope) ([]byte, error) {
	return json.Marshal(env)
}
