// Command unique-ids is the trivial Maelstrom unique-id-generation
// workload node: it replies generate_ok with "<node_id>/<n>".
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/node"
	"github.com/mcastellin/maelstrom-nodes/internal/uniqueid"
)

const defaultTickTime = 300 * time.Millisecond

var rootCmd = &cobra.Command{
	Use:          "unique-ids",
	Short:        "Maelstrom unique-id generation workload node",
	Long:         "unique-ids replies generate_ok with an id built from this node's assigned id and a node-local monotonic counter, guaranteeing cluster-wide uniqueness. It takes no flags; the harness drives it entirely over stdin/stdout.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		node.Bootstrap("unique-ids", defaultTickTime, func(nodeID string, nodeIDs []string, logger *zap.Logger) node.Workload {
			return uniqueid.New(nodeID)
		})
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
