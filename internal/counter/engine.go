// Package counter implements the CAS-retry grow-only counter engine: a
// client-facing add/read API backed by a compare-and-swap retry loop
// against the external seq-kv collaborator.
package counter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/kv"
	"github.com/mcastellin/maelstrom-nodes/internal/protocol"
)

// counterKey is the single key this workload maintains in seq-kv.
const counterKey = "COUNTER"

// inflightCAS describes an outstanding compare-and-swap request against
// seq-kv: the exact envelope must be retried verbatim (same msg_id) until
// it is acknowledged or fails.
type inflightCAS struct {
	msgID    int
	old, new int
}

// Engine implements node.Workload for the counter workload.
type Engine struct {
	nodeID string

	delta    int
	value    int
	inflight *inflightCAS

	idCounter int

	logger *zap.Logger
}

// New creates a counter Engine for nodeID.
func New(nodeID string, logger *zap.Logger) *Engine {
	return &Engine{nodeID: nodeID, logger: logger}
}

func (e *Engine) nextID() int {
	id := e.idCounter
	e.idCounter++
	return id
}

// HandleRequest dispatches a client add/read request or a seq-kv reply
// (read_ok/cas_ok/error).
func (e *Engine) HandleRequest(env protocol.Envelope) (outbound []protocol.Envelope, forceTick bool, err error) {
	switch env.Body.Type {
	case protocol.TypeAdd:
		return e.handleAdd(env)
	case protocol.TypeRead:
		return e.handleRead(env)
	case protocol.TypeReadOk, protocol.TypeCasOk, protocol.TypeError:
		if !kv.IsFromKV(env) {
			e.logger.Warn("counter engine received a kv-only reply from a non-kv sender",
				zap.String("type", env.Body.Type), zap.String("src", env.Src))
			return nil, false, nil
		}
		switch env.Body.Type {
		case protocol.TypeReadOk:
			return e.handleReadOk(env)
		case protocol.TypeCasOk:
			return e.handleCasOk(env)
		default:
			return e.handleError(env)
		}
	default:
		e.logger.Warn("counter engine received unrecognized message type", zap.String("type", env.Body.Type))
		return nil, false, nil
	}
}

func (e *Engine) handleAdd(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	d := 0
	if env.Body.Delta != nil {
		d = *env.Body.Delta
	}
	e.delta += d

	reply := protocol.Reply(env, protocol.Body{
		Type: protocol.TypeAddOk,
		Id:   protocol.IntPtr(e.nextID()),
	})
	return []protocol.Envelope{reply}, false, nil
}

func (e *Engine) handleRead(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	reply := protocol.Reply(env, protocol.Body{
		Type:  protocol.TypeReadOk,
		Id:    protocol.IntPtr(e.nextID()),
		Value: protocol.IntPtr(e.value + e.delta),
	})
	// Force-ticking kicks off a fresh CAS cycle so the lower bound this
	// client just read starts converging toward durable truth promptly.
	return []protocol.Envelope{reply}, true, nil
}

func (e *Engine) handleReadOk(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	kvValue := 0
	if env.Body.Value != nil {
		kvValue = *env.Body.Value
	}
	e.value = kvValue + e.delta

	if e.delta <= 0 {
		return nil, false, nil
	}

	old := kvValue
	newVal := kvValue + e.delta
	msgID := e.nextID()
	e.inflight = &inflightCAS{msgID: msgID, old: old, new: newVal}
	e.delta = 0

	return []protocol.Envelope{kv.CasRequest(e.nodeID, msgID, counterKey, old, newVal, false)}, false, nil
}

func (e *Engine) handleCasOk(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	e.inflight = nil
	return nil, false, nil
}

func (e *Engine) handleError(env protocol.Envelope) ([]protocol.Envelope, bool, error) {
	code := protocol.ErrorCode(0)
	if env.Body.Code != nil {
		code = protocol.ErrorCode(*env.Body.Code)
	}

	forceTick := false
	if e.inflight != nil {
		e.delta += e.inflight.new - e.inflight.old
		e.inflight = nil
		forceTick = true
	}

	switch code {
	case kv.ErrKeyDoesNotExist:
		if forceTick {
			// A plain cas failed mid-flight: retry like any other transient
			// error (re-read on the next tick, then CAS). Only a fresh read
			// reporting a missing key bootstraps it.
			return nil, forceTick, nil
		}
		msgID := e.nextID()
		return []protocol.Envelope{kv.CasRequest(e.nodeID, msgID, counterKey, 0, 0, true)}, forceTick, nil

	case kv.ErrPreconditionFailed, kv.ErrTimeout, kv.ErrKeyAlreadyExists:
		// Transient: the next tick re-reads and retries with the fresh
		// value.
		return nil, forceTick, nil

	default:
		return nil, false, fmt.Errorf("counter engine: unhandled kv error code %d", code)
	}
}

// Tick resends the pending CAS with its original msg_id if one is
// outstanding, or else issues a fresh read against seq-kv.
func (e *Engine) Tick() []protocol.Envelope {
	if e.inflight != nil {
		return []protocol.Envelope{
			kv.CasRequest(e.nodeID, e.inflight.msgID, counterKey, e.inflight.old, e.inflight.new, false),
		}
	}

	msgID := e.nextID()
	return []protocol.Envelope{kv.ReadRequest(e.nodeID, msgID, counterKey)}
}
