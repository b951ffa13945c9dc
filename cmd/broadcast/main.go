// Command broadcast is the anti-entropy gossip workload node. It
// replicates a growing set of integers across the cluster under message
// loss and network partitions.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/broadcast"
	"github.com/mcastellin/maelstrom-nodes/internal/node"
)

const defaultTickTime = 300 * time.Millisecond

var rootCmd = &cobra.Command{
	Use:          "broadcast",
	Short:        "Maelstrom broadcast workload node (anti-entropy gossip)",
	Long:         "broadcast maintains a grow-only set of integers and gossips with its peers on every tick, piggybacking acknowledgements so state converges under message loss and partitions. It takes no flags; the harness drives it entirely over stdin/stdout.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		node.Bootstrap("broadcast", defaultTickTime, func(nodeID string, nodeIDs []string, logger *zap.Logger) node.Workload {
			return broadcast.New(nodeID, nodeIDs, logger)
		})
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
