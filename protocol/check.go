package protocol

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streamzip/tap-hubspot/types"
	"github.com/streamzip/tap-hubspot/utils"
	"github.com/streamzip/tap-hubspot/utils/logger"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check command",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "not-set" {
			return fmt.Errorf("no connector config provided")
		}
		return utils.UnmarshalFile(configPath, connector.GetConfigRef(), true)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		err := connector.Setup(cmd.Context())

		// log success
		status, message := types.ConnectionSucceed, ""
		if err != nil {
			status, message = types.ConnectionFailed, err.Error()
		}
		logger.LogConnectionStatus(status, message)
	},
}
