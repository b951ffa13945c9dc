package node

import (
	"time"

	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/protocol"
)

// Options configures the shared event loop.
type Options struct {
	// TickTime is the ticker's periodic interval (TICK_TIME).
	TickTime time.Duration
	// ForceTickEnabled toggles whether force ticks requested by
	// HandleRequest actually short-circuit the ticker's sleep (FORCE_TICK). When
	// false, the node falls back to purely periodic gossip.
	ForceTickEnabled bool
}

// Run wires the input reader, ticker, and handler together over one event
// queue and drives workload until stdin closes or a fatal error occurs.
// It returns nil on clean shutdown (stdin EOF) and a non-nil error on any
// fatal protocol/IO failure, for the caller to log and exit non-zero.
func Run(dec *protocol.Decoder, enc *protocol.Encoder, workload Workload, opts Options, logger *zap.Logger) error {
	events := make(chan Event)

	r := newReader(dec, events)
	go r.run()

	ticker := NewTicker(opts.TickTime, events)
	go ticker.Run()
	defer func() {
		if err := ticker.Shutdown(); err != nil {
			logger.Warn("ticker shutdown reported an error", zap.Error(err))
		}
	}()

	forceTick := func() {
		if opts.ForceTickEnabled {
			ticker.ForceTick()
		}
	}

	for ev := range events {
		switch ev.Kind {
		case EventClose:
			if ev.Err != nil {
				logger.Error("input stream closed with error", zap.Error(ev.Err))
				return ev.Err
			}
			logger.Debug("input stream closed cleanly, shutting down")
			return nil

		case EventTick:
			for _, out := range workload.Tick() {
				if err := enc.Encode(out); err != nil {
					logger.Error("failed writing tick output", zap.Error(err))
					return err
				}
			}

		case EventInput:
			outbound, wantsForceTick, err := workload.HandleRequest(ev.Envelope)
			if err != nil {
				logger.Error("failed handling request", zap.Error(err))
				return err
			}
			for _, out := range outbound {
				if err := enc.Encode(out); err != nil {
					logger.Error("failed writing response", zap.Error(err))
					return err
				}
			}
			if wantsForceTick {
				forceTick()
			}
		}
	}

	return nil
}
