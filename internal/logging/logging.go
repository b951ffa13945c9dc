// Package logging builds the structured logger every binary in this repo
// shares: JSON to stderr (stdout is reserved for the envelope protocol),
// tagged with a component and a per-process instance id.
package logging

import (
	"os"

	"github.com/rs/xid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style zap.Logger writing to stderr, tagged with
// component and a freshly generated instance id. The instance id lets a
// harness operator distinguish log lines from a restarted process even
// before the init handshake assigns a node id.
func New(component string) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		zapcore.DebugLevel,
	)

	logger := zap.New(core)
	return logger.With(
		zap.String("component", component),
		zap.String("instance", xid.New().String()),
	)
}

// WithNodeID returns a child logger tagged with the node id learned from
// the init handshake. node.Bootstrap does this once, right after
// node.Handshake returns.
func WithNodeID(logger *zap.Logger, nodeID string) *zap.Logger {
	return logger.With(zap.String("node_id", nodeID))
}
