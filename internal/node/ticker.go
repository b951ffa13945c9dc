package node

import "time"

// Ticker periodically emits EventTick onto events, and additionally fires
// immediately whenever ForceTick is signalled, coalescing any further
// signals received in the same window via a bounded capacity-1 lossy
// channel.
//
// Shutdown sends a reply channel and blocks for the acknowledgement.
type Ticker struct {
	interval time.Duration
	events   chan<- Event

	forceCh  chan struct{}
	shutdown chan chan error
}

// NewTicker creates a Ticker that emits onto events every interval, or
// immediately on ForceTick.
func NewTicker(interval time.Duration, events chan<- Event) *Ticker {
	return &Ticker{
		interval: interval,
		events:   events,
		forceCh:  make(chan struct{}, 1),
		shutdown: make(chan chan error),
	}
}

// ForceTick requests an immediate tick, short-circuiting the current sleep.
// It never blocks: if a force-tick is already pending, this one is dropped
// (coalesced), matching the toggle's documented lossy-channel contract.
func (t *Ticker) ForceTick() {
	select {
	case t.forceCh <- struct{}{}:
	default:
	}
}

// Run drives the periodic/forced tick loop until Shutdown is called. It
// sleeps from the last wake time (via timer.Reset), never accumulating
// drift from an absolute start.
func (t *Ticker) Run() {
	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case errCh := <-t.shutdown:
			errCh <- nil
			return

		case <-timer.C:
			t.drainForce()
			if !t.emit() {
				return
			}
			timer.Reset(t.interval)

		case <-t.forceCh:
			t.drainForce()
			if !t.emit() {
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(t.interval)
		}
	}
}

// drainForce empties any force-tick signals that arrived while we were
// already about to fire, so a burst of signals in one window produces
// exactly one extra tick.
func (t *Ticker) drainForce() {
	for {
		select {
		case <-t.forceCh:
		default:
			return
		}
	}
}

// emit sends one EventTick, also watching t.shutdown so a send that would
// otherwise block forever on a handler that has already returned from its
// event range loop instead observes the shutdown request and returns
// false. The caller must stop its own loop in that case; emit itself acks
// the shutdown since it owns the only place the blocking send happens.
func (t *Ticker) emit() bool {
	select {
	case t.events <- Event{Kind: EventTick}:
		return true
	case errCh := <-t.shutdown:
		errCh <- nil
		return false
	}
}

// Shutdown stops the ticker goroutine and waits for its acknowledgement.
func (t *Ticker) Shutdown() error {
	errCh := make(chan error)
	t.shutdown <- errCh
	return <-errCh
}
