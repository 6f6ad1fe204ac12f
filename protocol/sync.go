package protocol

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/streamzip/tap-hubspot/types"
	"github.com/streamzip/tap-hubspot/utils"
	"github.com/streamzip/tap-hubspot/utils/logger"
)

// syncCmd represents the sync command which runs the full extraction
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "sync command",
	Long:  `Sync runs every stream sequentially, resuming from the state file when one is provided`,
	Example: `
// First run:
tap-hubspot sync --config path/to/config.json

// Resuming:
tap-hubspot sync --config path/to/config.json --state path/to/state.json
`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "not-set" {
			return fmt.Errorf("no connector config provided")
		}
		if err := utils.UnmarshalFile(configPath, connector.GetConfigRef(), true); err != nil {
			return err
		}

		state = types.NewState()
		if statePath != "" {
			if _, err := os.Stat(statePath); err == nil {
				if err := utils.UnmarshalFile(statePath, state, false); err != nil {
					return err
				}
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		connector.SetupState(state)
		writer := logger.Writer{}
		connector.SetupWriter(writer)

		if err := connector.Setup(cmd.Context()); err != nil {
			return err
		}

		start := time.Now()
		err := connector.Sync(cmd.Context())
		if err != nil {
			err = fmt.Errorf("sync failed: %s", err)
		}

		// a failed run still flushes whatever watermarks were reached, so
		// the next run resumes from the failure point
		if !state.IsZero() {
			if flushErr := writer.State(state); flushErr != nil {
				err = multierror.Append(err, fmt.Errorf("failed to flush final state: %s", flushErr)).ErrorOrNil()
			}
		}
		if err != nil {
			return err
		}

		logger.Infof("sync completed in %s", time.Since(start).String())
		return nil
	},
}
