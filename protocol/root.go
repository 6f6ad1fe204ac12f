package protocol

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamzip/tap-hubspot/constants"
	"github.com/streamzip/tap-hubspot/types"
	"github.com/streamzip/tap-hubspot/utils"
	"github.com/streamzip/tap-hubspot/utils/logger"
)

var (
	configPath string
	statePath  string
	state      *types.State

	commands  = []*cobra.Command{}
	connector Driver
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tap-hubspot",
	Short: "root command",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// run-scoped paths live in viper so lower layers never touch flags
		viper.SetDefault(constants.ConfigFolder, os.TempDir())
		viper.SetDefault(constants.StatePath, filepath.Join(os.TempDir(), "state.json"))
		if configPath != "not-set" {
			configFolder := filepath.Dir(configPath)
			statePathEnv := utils.Ternary(statePath == "", filepath.Join(configFolder, "state.json"), statePath).(string)
			viper.Set(constants.ConfigFolder, configFolder)
			viper.Set(constants.StatePath, statePathEnv)
		}

		// logger uses CONFIG_FOLDER
		logger.Init()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		if ok := utils.IsValidSubcommand(commands, args[0]); !ok {
			return fmt.Errorf("'%s' is an invalid command. Use 'tap-hubspot --help' to display usage guide", args[0])
		}

		return nil
	},
}

// CreateRootCommand wires the driver into the subcommands and returns the
// executable root.
func CreateRootCommand(driver Driver) *cobra.Command {
	RootCmd.AddCommand(commands...)
	connector = driver

	return RootCmd
}

func init() {
	commands = append(commands, specCmd, checkCmd, syncCmd)
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "", "not-set", "(Required) Config for connector")
	RootCmd.PersistentFlags().StringVarP(&statePath, "state", "", "", "(Optional) State for connector")
	// Disable Cobra CLI's built-in usage and error handling
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
}
