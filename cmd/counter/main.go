// Command counter is the grow-only counter workload node: it accumulates
// client `add` deltas locally and durably commits them to the external
// seq-kv collaborator via a compare-and-swap retry loop.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/counter"
	"github.com/mcastellin/maelstrom-nodes/internal/node"
)

const defaultTickTime = 200 * time.Millisecond

var rootCmd = &cobra.Command{
	Use:          "counter",
	Short:        "Maelstrom grow-only counter workload node",
	Long:         "counter accepts client add/read requests, accumulating deltas locally and reconciling them against the seq-kv collaborator with a compare-and-swap retry loop driven by ticks. It takes no flags; the harness drives it entirely over stdin/stdout.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		node.Bootstrap("counter", defaultTickTime, func(nodeID string, nodeIDs []string, logger *zap.Logger) node.Workload {
			return counter.New(nodeID, logger)
		})
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
