package counter

import (
	"testing"

	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/kv"
	"github.com/mcastellin/maelstrom-nodes/internal/protocol"
)

func testLogger() *zap.Logger { return zap.NewNop() }

// S5: counter happy path.
func TestCounterHappyPath(t *testing.T) {
	e := New("n1", testLogger())

	out, _, err := e.HandleRequest(protocol.Envelope{
		Src: "c1", Dest: "n1",
		Body: protocol.Body{Type: protocol.TypeAdd, Id: protocol.IntPtr(1), Delta: protocol.IntPtr(10)},
	})
	if err != nil || len(out) != 1 || out[0].Body.Type != protocol.TypeAddOk {
		t.Fatalf("expected add_ok, got %+v, err=%v", out, err)
	}

	tickOut := e.Tick()
	if len(tickOut) != 1 || tickOut[0].Body.Type != protocol.TypeRead || tickOut[0].Dest != kv.NodeID {
		t.Fatalf("expected a read against seq-kv, got %+v", tickOut)
	}

	out, _, err = e.HandleRequest(protocol.Envelope{
		Src: kv.NodeID, Dest: "n1",
		Body: protocol.Body{Type: protocol.TypeReadOk, Value: protocol.IntPtr(0)},
	})
	if err != nil || len(out) != 1 || out[0].Body.Type != protocol.TypeCas {
		t.Fatalf("expected a cas against seq-kv, got %+v, err=%v", out, err)
	}
	if *out[0].Body.From != 0 || *out[0].Body.To != 10 {
		t.Fatalf("expected cas from 0 to 10, got from=%v to=%v", out[0].Body.From, out[0].Body.To)
	}

	_, _, err = e.HandleRequest(protocol.Envelope{
		Src: kv.NodeID, Dest: "n1",
		Body: protocol.Body{Type: protocol.TypeCasOk},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, forceTick, err := e.HandleRequest(protocol.Envelope{
		Src: "c1", Dest: "n1",
		Body: protocol.Body{Type: protocol.TypeRead, Id: protocol.IntPtr(2)},
	})
	if err != nil || !forceTick {
		t.Fatalf("expected read to force-tick, err=%v", err)
	}
	if len(out) != 1 || *out[0].Body.Value != 10 {
		t.Fatalf("expected read_ok value 10, got %+v", out)
	}
}

// S6: counter CAS conflict: no delta is lost across many conflicts.
func TestCounterCASConflictRetriesWithoutLosingDelta(t *testing.T) {
	e := New("n1", testLogger())

	e.HandleRequest(protocol.Envelope{Body: protocol.Body{Type: protocol.TypeAdd, Delta: protocol.IntPtr(5)}})
	e.Tick() // emits read

	out, _, _ := e.HandleRequest(protocol.Envelope{
		Src: kv.NodeID,
		Body: protocol.Body{Type: protocol.TypeReadOk, Value: protocol.IntPtr(100)},
	})
	if *out[0].Body.From != 100 || *out[0].Body.To != 105 {
		t.Fatalf("expected cas from 100 to 105, got %+v", out[0].Body)
	}

	// Conflict: someone else updated the key first.
	code := int(protocol.ErrPreconditionFailed)
	out, forceTick, err := e.HandleRequest(protocol.Envelope{
		Src: kv.NodeID,
		Body: protocol.Body{Type: protocol.TypeError, Code: &code},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !forceTick {
		t.Fatalf("expected a force-tick to retry promptly after a CAS conflict")
	}
	if len(out) != 0 {
		t.Fatalf("expected no immediate kv request on precondition failure, got %+v", out)
	}
	if e.delta != 5 {
		t.Fatalf("expected the staged delta to be restored in full, got %d", e.delta)
	}
	if e.inflight != nil {
		t.Fatalf("expected inflight to be cleared after the error")
	}

	// Next tick re-reads, observes the fresh value, and retries CAS from it.
	tickOut := e.Tick()
	if tickOut[0].Body.Type != protocol.TypeRead {
		t.Fatalf("expected a fresh read after conflict, got %+v", tickOut[0])
	}
	out, _, _ = e.HandleRequest(protocol.Envelope{
		Src: kv.NodeID,
		Body: protocol.Body{Type: protocol.TypeReadOk, Value: protocol.IntPtr(103)},
	})
	if *out[0].Body.From != 103 || *out[0].Body.To != 108 {
		t.Fatalf("expected retried cas from 103 to 108, got %+v", out[0].Body)
	}

	_, _, _ = e.HandleRequest(protocol.Envelope{Src: kv.NodeID, Body: protocol.Body{Type: protocol.TypeCasOk}})

	_, _, err = e.HandleRequest(protocol.Envelope{
		Src: "c1",
		Body: protocol.Body{Type: protocol.TypeRead},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.value+e.delta != 108 {
		t.Fatalf("expected no delta loss across conflicts, got lower bound %d", e.value+e.delta)
	}
}

func TestCounterBootstrapsKeyOnKeyDoesNotExist(t *testing.T) {
	e := New("n1", testLogger())
	e.HandleRequest(protocol.Envelope{Body: protocol.Body{Type: protocol.TypeAdd, Delta: protocol.IntPtr(3)}})
	e.Tick()

	code := int(protocol.ErrKeyDoesNotExist)
	out, forceTick, err := e.HandleRequest(protocol.Envelope{
		Src: kv.NodeID,
		Body: protocol.Body{Type: protocol.TypeError, Code: &code},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forceTick {
		t.Fatalf("expected no force-tick when bootstrapping from a fresh read, got one (no inflight was outstanding)")
	}
	if len(out) != 1 || out[0].Body.Type != protocol.TypeCas {
		t.Fatalf("expected a bootstrap cas, got %+v", out)
	}
	if !*out[0].Body.CreateIfNotExists || *out[0].Body.From != 0 || *out[0].Body.To != 0 {
		t.Fatalf("expected cas{from:0,to:0,create_if_not_exists:true}, got %+v", out[0].Body)
	}
	if e.delta != 3 {
		t.Fatalf("expected delta to remain staged at 3 pending the next read/cas cycle, got %d", e.delta)
	}
}

func TestCounterIgnoresKvOnlyReplyFromNonKvSender(t *testing.T) {
	e := New("n1", testLogger())
	e.HandleRequest(protocol.Envelope{Body: protocol.Body{Type: protocol.TypeAdd, Delta: protocol.IntPtr(7)}})
	e.Tick()

	out, forceTick, err := e.HandleRequest(protocol.Envelope{
		Src:  "c1",
		Body: protocol.Body{Type: protocol.TypeReadOk, Value: protocol.IntPtr(999)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forceTick || len(out) != 0 {
		t.Fatalf("expected a read_ok from a non-kv sender to be ignored, got out=%+v forceTick=%v", out, forceTick)
	}
	if e.value != 0 {
		t.Fatalf("expected spoofed read_ok to leave value untouched, got %d", e.value)
	}
}

func TestCounterFatalOnUnhandledErrorCode(t *testing.T) {
	e := New("n1", testLogger())
	code := int(protocol.ErrCrash)
	_, _, err := e.HandleRequest(protocol.Envelope{
		Src:  kv.NodeID,
		Body: protocol.Body{Type: protocol.TypeError, Code: &code},
	})
	if err == nil {
		t.Fatalf("expected an unhandled kv error code to be fatal")
	}
}
