package node

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/config"
	"github.com/mcastellin/maelstrom-nodes/internal/logging"
	"github.com/mcastellin/maelstrom-nodes/internal/protocol"
)

// Factory builds a workload's Engine once the init handshake has assigned
// this process its node id and roster.
type Factory func(nodeID string, nodeIDs []string, logger *zap.Logger) Workload

// Bootstrap is the shared binary entrypoint every cmd/<workload>/main.go
// calls: build the logger, read stdin/write stdout, perform the init
// handshake, load TICK_TIME/FORCE_TICK, construct the workload, and drive
// the event loop to completion. It exits the process via zap.Fatal on any
// fatal error.
func Bootstrap(component string, defaultTickTime time.Duration, factory Factory) {
	logger := logging.New(component)
	defer logger.Sync()

	dec := protocol.NewDecoder(os.Stdin)
	enc := protocol.NewEncoder(os.Stdout)

	nodeID, nodeIDs, err := Handshake(dec, enc)
	if err != nil {
		logger.Fatal("init handshake failed", zap.Error(err))
	}
	logger = logging.WithNodeID(logger, nodeID)

	cfg := config.Load(defaultTickTime)
	logger.Info("node starting",
		zap.Strings("roster", nodeIDs),
		zap.Duration("tick_time", cfg.TickTime),
		zap.Bool("force_tick", cfg.ForceTick),
	)

	workload := factory(nodeID, nodeIDs, logger)

	if err := Run(dec, enc, workload, Options{TickTime: cfg.TickTime, ForceTickEnabled: cfg.ForceTick}, logger); err != nil {
		logger.Fatal("node run failed", zap.Error(err))
	}
}
