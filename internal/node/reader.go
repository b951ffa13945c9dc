package node

import (
	"errors"
	"io"

	"github.com/mcastellin/maelstrom-nodes/internal/protocol"
)

// reader is the single input-reader worker: it blocks on the decoder,
// pushes EventInput for every envelope, and pushes exactly one EventClose
// when the stream ends, cleanly (Err nil, stdin EOF) or fatally (Err set,
// a malformed line).
type reader struct {
	dec    *protocol.Decoder
	events chan<- Event
}

func newReader(dec *protocol.Decoder, events chan<- Event) *reader {
	return &reader{dec: dec, events: events}
}

func (r *reader) run() {
	for {
		env, err := r.dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.events <- Event{Kind: EventClose}
			} else {
				r.events <- Event{Kind: EventClose, Err: err}
			}
			return
		}
		r.events <- Event{Kind: EventInput, Envelope: env}
	}
}
