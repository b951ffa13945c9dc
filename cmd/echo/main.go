// Command echo is the trivial Maelstrom echo workload node: it replies
// echo_ok with the same string it was sent.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcastellin/maelstrom-nodes/internal/echo"
	"github.com/mcastellin/maelstrom-nodes/internal/node"
)

const defaultTickTime = 300 * time.Millisecond

var rootCmd = &cobra.Command{
	Use:          "echo",
	Short:        "Maelstrom echo workload node",
	Long:         "echo reads newline-delimited JSON envelopes from stdin and replies echo_ok with an identical payload. It takes no flags; the harness drives it entirely over stdin/stdout.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		node.Bootstrap("echo", defaultTickTime, func(nodeID string, nodeIDs []string, logger *zap.Logger) node.Workload {
			return echo.New()
		})
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
