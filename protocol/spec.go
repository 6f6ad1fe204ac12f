package protocol

import (
	"github.com/spf13/cobra"

	"github.com/streamzip/tap-hubspot/utils/logger"
)

// specCmd represents the spec command
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "spec command",
	Run: func(_ *cobra.Command, _ []string) {
		logger.LogSpec(connector.Spec())
	},
}
